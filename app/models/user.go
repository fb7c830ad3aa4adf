package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	ROLE_MEMBER = "member"
	ROLE_ADMIN  = "admin"
)

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"username" validate:"required,min=3,max=200"`
	Email             string     `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email,max=200"`
	Password          string     `gorm:"type:text;not null" json:"-"`
	Name              string     `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Phone             string     `gorm:"type:varchar(40)" json:"phone" validate:"max=40"`
	Role              string     `gorm:"type:varchar(20);default:'member'" json:"role" validate:"oneof=member admin"`
	Plan              *string    `gorm:"type:varchar(150)" json:"plan"`
	SubscriptionStart *time.Time `gorm:"type:timestamptz" json:"subscription_start"`
	SubscriptionEnd   *time.Time `gorm:"type:timestamptz" json:"subscription_end"`
	LastLoginAt       *time.Time `gorm:"type:timestamptz" json:"last_login_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// PlanName returns the plan or an empty string.
func (u *User) PlanName() string {
	if u.Plan == nil {
		return ""
	}
	return *u.Plan
}

// SetPlan stores plan, mapping an empty string to NULL.
func (u *User) SetPlan(plan string) {
	plan = strings.TrimSpace(plan)
	if plan == "" {
		u.Plan = nil
		return
	}
	u.Plan = &plan
}

func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}
