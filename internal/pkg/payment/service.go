package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

// ErrInvalidMethod is the message for an unsupported payment method.
const ErrInvalidMethod = "Metode pembayaran tidak valid"

// Manual transfers add a code in this range to the amount so admins can
// match bank statements.
const (
	MinUniqueCode = 100
	MaxUniqueCode = 999
)

// RandomUniqueCode returns a reconciliation code in [MinUniqueCode, MaxUniqueCode].
func RandomUniqueCode() int {
	return MinUniqueCode + rand.IntN(MaxUniqueCode-MinUniqueCode+1)
}

// TransactionStore persists transactions.
type TransactionStore interface {
	Create(tx *models.Transaction) error
}

// GatewayFactory resolves a gateway for method under settings.
type GatewayFactory func(method string, settings Settings) (Gateway, error)

// Request is the create-transaction body.
type Request struct {
	Name          string `json:"name" validate:"required,max=150"`
	Email         string `json:"email" validate:"required,max=200"`
	Phone         string `json:"phone" validate:"required,max=40"`
	Total         int64  `json:"total" validate:"gte=0"`
	Discount      int64  `json:"discount" validate:"gte=0"`
	VoucherCode   string `json:"voucherCode" validate:"max=50"`
	PackageName   string `json:"packageName" validate:"required,max=150"`
	PackageID     string `json:"packageId" validate:"max=64"`
	PaymentMethod string `json:"paymentMethod"`
	// UniqueCode is only used for manual transfers; zero lets the server pick.
	UniqueCode    int    `json:"uniqueCode"`
	ProofImage    string `json:"proofImage"`
}

// Result is what the buyer needs to finish paying.
type Result struct {
	OrderID        string `json:"order_id"`
	IsManual       bool   `json:"is_manual"`
	RedirectURL    string `json:"redirect_url,omitempty"`
	Token          string `json:"token,omitempty"`
	UniqueCode     int    `json:"unique_code,omitempty"`
	TransferAmount int64  `json:"transfer_amount,omitempty"`
}

// Service creates transactions for manual transfers and hosted gateways.
type Service struct {
	store      TransactionStore
	config     ConfigStore
	gateways   GatewayFactory
	validate   *validator.Validate
	uniqueCode func() int
	now        func() time.Time
}

func NewService(store TransactionStore, config ConfigStore) *Service {
	return &Service{
		store:    store,
		config:   config,
		gateways:   DefaultGateways,
		validate:   validator.New(),
		uniqueCode: RandomUniqueCode,
		now:        time.Now,
	}
}

// WithGateways replaces the gateway factory.
func (s *Service) WithGateways(f GatewayFactory) *Service {
	s.gateways = f
	return s
}

// DefaultGateways builds Midtrans or Xendit gateways from the active keys.
func DefaultGateways(method string, settings Settings) (Gateway, error) {
	keys := settings.Active()
	switch method {
	case models.PaymentMidtrans:
		return NewMidtransGateway(keys.Midtrans.ServerKey, settings.IsProduction)
	case models.PaymentXendit:
		return NewXenditGateway(keys.Xendit.SecretKey)
	default:
		return nil, apperror.Invalid("paymentMethod", ErrInvalidMethod)
	}
}

// OrderID returns ORDER-<unix millis>.
func OrderID(now time.Time) string {
	return fmt.Sprintf("ORDER-%d", now.UnixMilli())
}

// NormalizeMethod maps an empty method to midtrans and rejects unknown ones.
func NormalizeMethod(method string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(method))
	switch m {
	case "":
		return models.PaymentMidtrans, nil
	case models.PaymentManual, models.PaymentMidtrans, models.PaymentXendit:
		return m, nil
	default:
		return "", apperror.Invalid("paymentMethod", ErrInvalidMethod)
	}
}

// CreateTransaction records a purchase. Manual transfers are stored as
// pending with their reconciliation code; gateway methods call the provider
// first and store its token and payment URL.
func (s *Service) CreateTransaction(ctx context.Context, req Request) (*Result, error) {
	method, err := NormalizeMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.FromValidator(err)
	}
	code := req.UniqueCode
	if method == models.PaymentManual {
		if code == 0 {
			code = s.uniqueCode()
		}
		if code < MinUniqueCode || code > MaxUniqueCode {
			return nil, apperror.Invalid("uniqueCode", fmt.Sprintf("Kode unik harus antara %d dan %d", MinUniqueCode, MaxUniqueCode))
		}
	}

	orderID := OrderID(s.now())
	tx := &models.Transaction{
		ID:            orderID,
		CustomerName:  req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PackageName:   req.PackageName,
		PackageID:     req.PackageID,
		Amount:        req.Total,
		Discount:      req.Discount,
		Status:        models.TxStatusPending,
		PaymentMethod: method,
	}
	if req.VoucherCode != "" {
		voucher := req.VoucherCode
		tx.VoucherCode = &voucher
	}

	if method == models.PaymentManual {
		transfer := req.Total + int64(code)
		tx.UniqueCode = &code
		tx.TransferAmount = &transfer
		if req.ProofImage != "" {
			proof := req.ProofImage
			tx.ProofImage = &proof
		}
		if err := s.store.Create(tx); err != nil {
			return nil, apperror.External("datastore", err)
		}
		log.Infof("[Payment] manual transaction %s created for %s", orderID, req.Email)
		return &Result{OrderID: orderID, IsManual: true, UniqueCode: code, TransferAmount: transfer}, nil
	}

	gw, err := s.gateways(method, LoadSettings(s.config))
	if err != nil {
		if apperror.IsValidation(err) {
			return nil, err
		}
		return nil, &apperror.PaymentGatewayError{Provider: method, Message: err.Error(), Err: err}
	}
	redirect, err := gw.CreatePayment(ctx, Charge{
		OrderID:     orderID,
		Amount:      req.Total,
		Description: req.PackageName,
		Customer:    Customer{Name: req.Name, Email: req.Email, Phone: req.Phone},
	})
	if err != nil {
		log.Warnf("[Payment] %s rejected order %s: %v", gw.Name(), orderID, err)
		return nil, err
	}

	token := redirect.Token
	url := redirect.RedirectURL
	tx.Token = &token
	tx.PaymentURL = &url
	if err := s.store.Create(tx); err != nil {
		return nil, apperror.External("datastore", err)
	}
	log.Infof("[Payment] %s transaction %s created for %s", gw.Name(), orderID, req.Email)
	return &Result{OrderID: orderID, RedirectURL: url, Token: token}, nil
}

// WebhookSecrets returns the Midtrans server key and Xendit callback token
// used to verify pushes.
func (s *Service) WebhookSecrets() (midtransServerKey, xenditCallbackToken string) {
	keys := LoadSettings(s.config).Active()
	return keys.Midtrans.ServerKey, keys.Xendit.CallbackToken
}
