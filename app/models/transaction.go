package models

import "time"

const (
	PaymentManual   = "manual"
	PaymentMidtrans = "midtrans"
	PaymentXendit   = "xendit"
)

const (
	TxStatusPending        = "pending"
	TxStatusPendingPayment = "pending_payment"
	TxStatusSuccess        = "success"
	TxStatusManualSuccess  = "manual_success"
	TxStatusChallenge      = "challenge"
	TxStatusFailed         = "failed"
	TxStatusSettlement     = "settlement"
	TxStatusCapture        = "capture"
)

// PaidStatuses count towards revenue.
var PaidStatuses = []string{TxStatusSuccess, TxStatusSettlement, TxStatusCapture, TxStatusManualSuccess}

// OpenStatuses are awaiting payment or verification.
var OpenStatuses = []string{TxStatusPending, TxStatusPendingPayment}

// Transaction is one purchase attempt. Amount is the nominal price after
// discount; TransferAmount adds the manual reconciliation code.
type Transaction struct {
	ID             string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CustomerName   string    `gorm:"type:varchar(150)" json:"customer_name"`
	Email          string    `gorm:"type:varchar(200);index" json:"email"`
	Phone          string    `gorm:"type:varchar(40)" json:"phone"`
	PackageName    string    `gorm:"type:varchar(150)" json:"package_name"`
	PackageID      string    `gorm:"type:varchar(64)" json:"package_id"`
	Amount         int64     `gorm:"not null" json:"amount"`
	Discount       int64     `gorm:"not null;default:0" json:"discount"`
	VoucherCode    *string   `gorm:"type:varchar(50)" json:"voucher_code"`
	Status         string    `gorm:"type:varchar(30);index;not null" json:"status"`
	PaymentMethod  string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	UniqueCode     *int      `json:"unique_code"`
	TransferAmount *int64    `json:"transfer_amount"`
	ProofImage     *string   `gorm:"type:text" json:"proof_image"`
	Token          *string   `gorm:"type:varchar(255)" json:"token"`
	PaymentURL     *string   `gorm:"type:text" json:"payment_url"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Transaction) IsManual() bool {
	return t.PaymentMethod == PaymentManual
}
