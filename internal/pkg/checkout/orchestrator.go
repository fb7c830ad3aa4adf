// Package checkout runs one purchase attempt: register or reuse the buyer's
// account, upload the transfer proof for manual payments and create the
// transaction.
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/account"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
	"github.com/brewlogic/BrewLogic/internal/pkg/payment"
	"github.com/brewlogic/BrewLogic/internal/pkg/upload"
)

type State string

const (
	StateFormEntry            State = "form_entry"
	StateSubmitting           State = "submitting"
	StateManualPendingSuccess State = "manual_pending_success"
	StateGatewayRedirect      State = "gateway_redirect"
	StateFailed               State = "failed"
)

const (
	msgIdentityRequired = "Harap lengkapi semua data diri termasuk password."
	msgProofRequired    = "Mohon upload bukti transfer terlebih dahulu."
	msgUnknownPackage   = "Paket tidak ditemukan"
	msgUnknownVoucher   = "Kode voucher tidak valid"
)

type Registrar interface {
	Register(ctx context.Context, req account.RegisterRequest) (*models.User, error)
}

type Uploader interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

type TransactionCreator interface {
	CreateTransaction(ctx context.Context, req payment.Request) (*payment.Result, error)
}

type ProductLookup interface {
	GetByID(id string) (*models.Product, error)
}

type VoucherLookup interface {
	GetActiveByCode(code string) (*models.Voucher, error)
}

// Deps wires the orchestrator's collaborators.
type Deps struct {
	Accounts Registrar
	Proofs   Uploader
	Payments TransactionCreator
	Products ProductLookup
	Vouchers VoucherLookup
	// Bucket receives proof images. Empty means the uploader's default.
	Bucket string
}

type Orchestrator struct {
	deps       Deps
	uniqueCode func() int
	now        func() time.Time
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{deps: deps, uniqueCode: payment.RandomUniqueCode, now: time.Now}
}

// Proof is the uploaded transfer receipt.
type Proof struct {
	Filename string
	Data     []byte
}

// Input is what the checkout form collects.
type Input struct {
	Name          string
	Email         string
	Phone         string
	Password      string
	PaymentMethod string
	PackageID     string
	VoucherCode   string
	Proof         *Proof
}

// Outcome is the terminal state of a successful attempt.
type Outcome struct {
	State          State  `json:"state"`
	OrderID        string `json:"order_id"`
	PackageName    string `json:"package_name"`
	Quote          Quote  `json:"quote"`
	UniqueCode     int    `json:"unique_code,omitempty"`
	TransferAmount int64  `json:"transfer_amount,omitempty"`
	ProofURL       string `json:"proof_url,omitempty"`
	RedirectURL    string `json:"redirect_url,omitempty"`
	Token          string `json:"token,omitempty"`
}

type prepared struct {
	in     Input
	method string
	proof  []byte
}

// Checkout runs one attempt. Local validation happens before any
// collaborator is called; after that the first failing step ends the
// attempt and nothing is retried.
func (o *Orchestrator) Checkout(ctx context.Context, in Input) (*Outcome, error) {
	p, err := o.validate(in)
	if err != nil {
		return nil, err
	}

	product, err := o.deps.Products.GetByID(p.in.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Invalid("package_id", msgUnknownPackage)
		}
		return nil, apperror.External("datastore", err)
	}
	quote, err := o.Quote(product.Price, p.in.VoucherCode)
	if err != nil {
		return nil, err
	}

	plan := product.Name
	if p.method == models.PaymentManual {
		plan = billing.PendingPlan(product.Name)
	}
	if err := o.register(ctx, p.in, plan); err != nil {
		return nil, err
	}

	out := &Outcome{PackageName: product.Name, Quote: quote}
	uniqueCode := 0
	if p.method == models.PaymentManual {
		name := upload.ProofObjectName(p.in.Email, o.now())
		url, err := o.deps.Proofs.Upload(ctx, o.deps.Bucket, name, p.proof, "image/jpeg")
		if err != nil {
			log.Warnf("[Checkout] proof upload for %s failed: %v", p.in.Email, err)
			return nil, apperror.External("object storage", err)
		}
		out.ProofURL = url
		uniqueCode = o.uniqueCode()
	}

	res, err := o.deps.Payments.CreateTransaction(ctx, payment.Request{
		Name:          p.in.Name,
		Email:         p.in.Email,
		Phone:         p.in.Phone,
		Total:         quote.FinalTotal,
		Discount:      quote.Discount,
		VoucherCode:   quote.VoucherCode,
		PackageName:   product.Name,
		PackageID:     product.ID,
		PaymentMethod: p.method,
		UniqueCode:    uniqueCode,
		ProofImage:    out.ProofURL,
	})
	if err != nil {
		log.Warnf("[Checkout] transaction for %s failed: %v", p.in.Email, err)
		return nil, err
	}

	out.OrderID = res.OrderID
	if res.IsManual {
		out.State = StateManualPendingSuccess
		out.UniqueCode = res.UniqueCode
		out.TransferAmount = res.TransferAmount
	} else {
		out.State = StateGatewayRedirect
		out.RedirectURL = res.RedirectURL
		out.Token = res.Token
	}
	log.Infof("[Checkout] order %s for %s ended in %s", out.OrderID, p.in.Email, out.State)
	return out, nil
}

// Quote prices subtotal with the voucher named by code. An empty code means
// no voucher; an unknown or inactive one is a validation error.
func (o *Orchestrator) Quote(subtotal int64, code string) (Quote, error) {
	code = NormalizeVoucherCode(code)
	if code == "" {
		return ApplyVoucher(subtotal, nil), nil
	}
	v, err := o.deps.Vouchers.GetActiveByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplyVoucher(subtotal, nil), apperror.Invalid("voucher_code", msgUnknownVoucher)
		}
		return Quote{}, apperror.External("datastore", err)
	}
	return ApplyVoucher(subtotal, v), nil
}

func (o *Orchestrator) validate(in Input) (*prepared, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.PackageID = strings.TrimSpace(in.PackageID)
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return nil, apperror.Invalid("", msgIdentityRequired)
	}
	if in.PackageID == "" {
		return nil, apperror.Invalid("package_id", msgUnknownPackage)
	}

	method, err := payment.NormalizeMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	p := &prepared{in: in, method: method}
	if method != models.PaymentManual {
		return p, nil
	}

	if in.Proof == nil || len(in.Proof.Data) == 0 {
		return nil, apperror.Invalid("proof", msgProofRequired)
	}
	head := in.Proof.Data
	if len(head) > 512 {
		head = head[:512]
	}
	if _, err := upload.ValidateImageBySniff(in.Proof.Filename, head); err != nil {
		return nil, apperror.Invalid("proof", err.Error())
	}
	p.proof, err = upload.NormalizeProofImage(in.Proof.Data)
	if err != nil {
		return nil, apperror.Invalid("proof", "Bukti transfer tidak dapat dibaca")
	}
	return p, nil
}

// Existing customers may buy again, so a taken username is not an error.
func (o *Orchestrator) register(ctx context.Context, in Input, plan string) error {
	_, err := o.deps.Accounts.Register(ctx, account.RegisterRequest{
		Username: in.Email,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     models.ROLE_MEMBER,
		Plan:     plan,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperror.ErrDuplicateUser):
		log.Infof("[Checkout] %s already registered, continuing", in.Email)
		return nil
	case apperror.IsValidation(err), errors.As(err, new(*apperror.ExternalServiceError)):
		return err
	default:
		return apperror.External("datastore", err)
	}
}
