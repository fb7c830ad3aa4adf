package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/checkout"
	"github.com/brewlogic/BrewLogic/internal/pkg/payment"
)

const (
	maxProofUpload    = 10 << 20
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 10 * time.Minute
)

// CheckoutRunner runs one purchase attempt.
type CheckoutRunner interface {
	Checkout(ctx context.Context, in checkout.Input) (*checkout.Outcome, error)
}

// TransactionService creates transactions and updates their status.
type TransactionService interface {
	CreateTransaction(ctx context.Context, req payment.Request) (*payment.Result, error)
}

// StatusUpdater writes a transaction status without touching plans.
type StatusUpdater interface {
	UpdateTransactionStatus(ctx context.Context, txID, status string) error
}

// IdempotencyStore claims a key once for a TTL. Delete releases a claim so
// a failed attempt can be retried with the same key.
type IdempotencyStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// CheckoutController serves the purchase endpoints.
type CheckoutController struct {
	runner   CheckoutRunner
	payments TransactionService
	statuses StatusUpdater
	claims   IdempotencyStore
	secrets  WebhookSecrets
}

func NewCheckoutController(runner CheckoutRunner, payments TransactionService, statuses StatusUpdater, claims IdempotencyStore) *CheckoutController {
	return &CheckoutController{runner: runner, payments: payments, statuses: statuses, claims: claims}
}

// WithWebhookSecrets makes HandleTransactionSuccess defer paid statuses to
// the verified webhook whenever a provider secret is configured.
func (cc *CheckoutController) WithWebhookSecrets(s WebhookSecrets) *CheckoutController {
	cc.secrets = s
	return cc
}

type transactionSuccessRequest struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
}

// HandleCheckout serves POST /api/checkout (multipart form).
func (cc *CheckoutController) HandleCheckout(c *fiber.Ctx) error {
	return cc.idempotent(c, "checkout", cc.checkout)
}

func (cc *CheckoutController) checkout(c *fiber.Ctx) error {
	in := checkout.Input{
		Name:          c.FormValue("name"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		Password:      c.FormValue("password"),
		PaymentMethod: c.FormValue("payment_method"),
		PackageID:     c.FormValue("package_id"),
		VoucherCode:   c.FormValue("voucher_code"),
	}
	if fh, err := c.FormFile("proof"); err == nil && fh != nil {
		data, name, err := readFormFile(c, "proof", maxProofUpload)
		if err != nil {
			return respondError(c, err)
		}
		in.Proof = &checkout.Proof{Filename: name, Data: data}
	}

	out, err := cc.runner.Checkout(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"state":           out.State,
		"order_id":        out.OrderID,
		"package_name":    out.PackageName,
		"final_total":     out.Quote.FinalTotal,
		"discount":        out.Quote.Discount,
		"unique_code":     out.UniqueCode,
		"transfer_amount": out.TransferAmount,
		"redirect_url":    out.RedirectURL,
		"token":           out.Token,
		"is_manual":       out.State == checkout.StateManualPendingSuccess,
	})
}

// HandleCreateTransaction serves POST /api/create-transaction.
func (cc *CheckoutController) HandleCreateTransaction(c *fiber.Ctx) error {
	return cc.idempotent(c, "transaction", cc.createTransaction)
}

func (cc *CheckoutController) createTransaction(c *fiber.Ctx) error {
	var req payment.Request
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	res, err := cc.payments.CreateTransaction(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	if res.IsManual {
		return c.JSON(fiber.Map{"success": true, "order_id": res.OrderID, "is_manual": true, "transfer_amount": res.TransferAmount})
	}
	return c.JSON(fiber.Map{"redirect_url": res.RedirectURL, "token": res.Token, "order_id": res.OrderID, "is_manual": false})
}

// HandleTransactionSuccess serves POST /api/transaction-success. It records
// the status the payment page reported; plans are only granted by the
// webhook or an admin. The call is unauthenticated, so once a webhook
// secret is configured paid statuses are left to the verified webhook.
func (cc *CheckoutController) HandleTransactionSuccess(c *fiber.Ctx) error {
	var req transactionSuccessRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return respondError(c, apperror.Invalid("order_id", "is required"))
	}
	status := req.TransactionStatus
	switch status {
	case "", models.TxStatusSuccess, models.TxStatusPending, models.TxStatusSettlement, models.TxStatusCapture:
	default:
		return respondError(c, apperror.Invalid("transaction_status", "unsupported status"))
	}
	if status != models.TxStatusPending && cc.webhookVerified() {
		log.Infof("[Checkout] status %q for %s left to the payment webhook", status, req.OrderID)
		return c.JSON(fiber.Map{"success": true, "ignored": true})
	}
	if err := cc.statuses.UpdateTransactionStatus(c.UserContext(), req.OrderID, status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (cc *CheckoutController) webhookVerified() bool {
	if cc.secrets == nil {
		return false
	}
	serverKey, callbackToken := cc.secrets.WebhookSecrets()
	return serverKey != "" || callbackToken != ""
}

// idempotent runs handler under the request's Idempotency-Key. A failed
// attempt releases the key so the client can retry with it.
func (cc *CheckoutController) idempotent(c *fiber.Ctx, scope string, handler fiber.Handler) error {
	key, ok := cc.claim(c, scope)
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Permintaan yang sama sedang diproses", "code": "duplicate_request"})
	}
	err := handler(c)
	if key != "" && (err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest) {
		if derr := cc.claims.Delete(c.UserContext(), key); derr != nil {
			log.Warnf("[Checkout] releasing idempotency key failed: %v", derr)
		}
	}
	return err
}

// claim reserves the request's idempotency key and returns the stored key,
// or "" when nothing was claimed. Requests without a key, or when the store
// is unavailable, always proceed.
func (cc *CheckoutController) claim(c *fiber.Ctx, scope string) (string, bool) {
	header := strings.TrimSpace(c.Get(idempotencyHeader))
	if header == "" || cc.claims == nil {
		return "", true
	}
	key := "idem:" + scope + ":" + header
	ok, err := cc.claims.SetNX(c.UserContext(), key, time.Now().Unix(), idempotencyTTL)
	if err != nil {
		log.Warnf("[Checkout] idempotency store unavailable: %v", err)
		return "", true
	}
	if !ok {
		return "", false
	}
	return key, true
}
