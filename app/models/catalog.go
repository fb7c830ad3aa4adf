package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a membership package offered at checkout.
type Product struct {
	ID           string                      `gorm:"primaryKey;type:varchar(64)" json:"id" validate:"required,max=64"`
	Name         string                      `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Price        int64                       `gorm:"not null" json:"price" validate:"gte=0"`
	Duration     string                      `gorm:"type:varchar(50)" json:"duration" validate:"max=50"`
	Description  string                      `gorm:"type:text" json:"description"`
	MonthlyPrice *int64                      `json:"monthly_price"`
	SavingsText  string                      `gorm:"type:varchar(150)" json:"savings_text"`
	PromoText    string                      `gorm:"type:varchar(150)" json:"promo_text"`
	IsBestSeller bool                        `gorm:"default:false" json:"is_best_seller"`
	Features     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"features"`
	SortOrder    int                         `gorm:"default:0;index" json:"sort_order"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Voucher struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Code          string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required,max=50"`
	DiscountType  string    `gorm:"type:varchar(20);not null" json:"discount_type" validate:"oneof=percentage fixed"`
	DiscountValue int64     `gorm:"not null" json:"discount_value" validate:"gt=0"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Grinder is a reference listing row with display ranges.
type Grinder struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Type   string `gorm:"type:varchar(100)" json:"type" validate:"max=100"`
	Coarse string `gorm:"type:varchar(100)" json:"coarse" validate:"max=100"`
	Medium string `gorm:"type:varchar(100)" json:"medium" validate:"max=100"`
	Fine   string `gorm:"type:varchar(100)" json:"fine" validate:"max=100"`
}

type Dripper struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Brand string `gorm:"type:varchar(100)" json:"brand" validate:"max=100"`
	Type  string `gorm:"type:varchar(150)" json:"type" validate:"max=150"`
}

type BankAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BankName      string    `gorm:"type:varchar(100);not null" json:"bank_name" validate:"required,max=100"`
	AccountNumber string    `gorm:"type:varchar(50);not null" json:"account_number" validate:"required,max=50"`
	AccountHolder string    `gorm:"type:varchar(150);not null" json:"account_holder" validate:"required,max=150"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
