package payment

import (
	"context"
	"errors"
	"strings"

	xendit "github.com/xendit/xendit-go/v6"
	"github.com/xendit/xendit-go/v6/invoice"

	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

type createInvoiceFunc func(ctx context.Context, req invoice.CreateInvoiceRequest) (*invoice.Invoice, error)

// XenditGateway creates Xendit invoices through the Invoice API.
type XenditGateway struct {
	createInvoice createInvoiceFunc
}

// NewXenditGateway returns an invoice gateway for the given secret key.
func NewXenditGateway(secretKey string) (*XenditGateway, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("Xendit Secret Key not found")
	}
	client := xendit.NewClient(secretKey)
	return &XenditGateway{
		createInvoice: func(ctx context.Context, req invoice.CreateInvoiceRequest) (*invoice.Invoice, error) {
			inv, _, sdkErr := client.InvoiceApi.CreateInvoice(ctx).CreateInvoiceRequest(req).Execute()
			if sdkErr != nil {
				return nil, sdkErr
			}
			return inv, nil
		},
	}, nil
}

func (g *XenditGateway) Name() string { return "xendit" }

func (g *XenditGateway) CreatePayment(ctx context.Context, charge Charge) (*Redirect, error) {
	req := invoice.NewCreateInvoiceRequest(charge.OrderID, float64(charge.Amount))
	if charge.Description != "" {
		req.SetDescription(charge.Description)
	}
	if charge.Customer.Email != "" {
		req.SetPayerEmail(charge.Customer.Email)
	}

	customer := invoice.NewCustomerObject()
	if charge.Customer.Name != "" {
		customer.SetGivenNames(charge.Customer.Name)
	}
	if charge.Customer.Email != "" {
		customer.SetEmail(charge.Customer.Email)
	}
	if charge.Customer.Phone != "" {
		customer.SetMobileNumber(charge.Customer.Phone)
	}
	req.SetCustomer(*customer)

	inv, err := g.createInvoice(ctx, *req)
	if err != nil {
		return nil, &apperror.PaymentGatewayError{Provider: g.Name(), Message: err.Error()}
	}
	if inv == nil || inv.GetInvoiceUrl() == "" {
		return nil, &apperror.PaymentGatewayError{Provider: g.Name(), Message: "Payment URL not found"}
	}
	return &Redirect{Token: inv.GetId(), RedirectURL: inv.GetInvoiceUrl()}, nil
}
