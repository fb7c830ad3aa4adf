package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brewlogic/BrewLogic/app/models"
)

// Quote is the price of one package after at most one voucher.
type Quote struct {
	Subtotal    int64  `json:"subtotal"`
	Discount    int64  `json:"discount"`
	FinalTotal  int64  `json:"final_total"`
	VoucherCode string `json:"voucher_code,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// ApplyVoucher prices subtotal with v. A nil voucher means no discount.
// Percentage discounts are rounded to whole rupiah; the final total never
// drops below zero.
func ApplyVoucher(subtotal int64, v *models.Voucher) Quote {
	q := Quote{Subtotal: subtotal, FinalTotal: subtotal}
	if v == nil {
		return q
	}

	switch v.DiscountType {
	case models.DiscountPercentage:
		q.Discount = decimal.NewFromInt(v.DiscountValue).
			Div(hundred).
			Mul(decimal.NewFromInt(subtotal)).
			Round(0).
			IntPart()
	case models.DiscountFixed:
		q.Discount = v.DiscountValue
	}
	q.VoucherCode = v.Code

	q.FinalTotal = subtotal - q.Discount
	if q.FinalTotal < 0 {
		q.FinalTotal = 0
	}
	return q
}

// NormalizeVoucherCode trims and upper-cases a code.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
