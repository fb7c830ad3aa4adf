package payment

import (
	"context"
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

// Charge is one hosted-payment request.
type Charge struct {
	OrderID     string
	Amount      int64
	Description string
	Customer    Customer
}

// Redirect points the buyer to the provider's payment page.
type Redirect struct {
	Token       string
	RedirectURL string
}

// Gateway creates hosted payments.
type Gateway interface {
	Name() string
	CreatePayment(ctx context.Context, charge Charge) (*Redirect, error)
}

type snapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// MidtransGateway creates Snap transactions.
type MidtransGateway struct {
	api snapAPI
}

// NewMidtransGateway returns a Snap gateway for the given server key.
func NewMidtransGateway(serverKey string, production bool) (*MidtransGateway, error) {
	if strings.TrimSpace(serverKey) == "" {
		return nil, errors.New("Midtrans Server Key not found")
	}
	var c snap.Client
	if production {
		c.New(serverKey, midtrans.Production)
	} else {
		c.New(serverKey, midtrans.Sandbox)
	}
	return &MidtransGateway{api: &c}, nil
}

func (g *MidtransGateway) Name() string { return "midtrans" }

func (g *MidtransGateway) CreatePayment(ctx context.Context, charge Charge) (*Redirect, error) {
	_ = ctx
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  charge.OrderID,
			GrossAmt: charge.Amount,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: charge.Customer.Name,
			Email: charge.Customer.Email,
			Phone: charge.Customer.Phone,
		},
	}
	if charge.Description != "" {
		req.Items = &[]midtrans.ItemDetails{{
			ID:    charge.OrderID,
			Name:  truncate(charge.Description, 50),
			Price: charge.Amount,
			Qty:   1,
		}}
	}

	resp, merr := g.api.CreateTransaction(req)
	if merr != nil {
		msg := merr.Message
		if msg == "" {
			msg = "Failed to create Midtrans Transaction"
		}
		return nil, &apperror.PaymentGatewayError{Provider: g.Name(), Message: msg, Err: merr}
	}
	if resp == nil || resp.Token == "" {
		return nil, &apperror.PaymentGatewayError{Provider: g.Name(), Message: "empty snap token"}
	}
	return &Redirect{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
