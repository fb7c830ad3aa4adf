package controllers

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
)

type fakeWebhookBilling struct {
	events   map[string]*models.PaymentWebhookEvent
	applied  []*billing.Notification
	applyErr error
}

func newFakeWebhookBilling() *fakeWebhookBilling {
	return &fakeWebhookBilling{events: map[string]*models.PaymentWebhookEvent{}}
}

func (f *fakeWebhookBilling) RecordWebhookEvent(_ context.Context, in billing.WebhookEventInput) (bool, *models.PaymentWebhookEvent, error) {
	key := in.Provider + "|" + in.ProviderEventID
	if e, ok := f.events[key]; ok {
		return false, e, nil
	}
	e := &models.PaymentWebhookEvent{ID: uint(len(f.events) + 1), Provider: in.Provider, ProviderEventID: in.ProviderEventID, SignatureValid: in.SignatureValid}
	f.events[key] = e
	return true, e, nil
}

func (f *fakeWebhookBilling) MarkWebhookProcessed(_ context.Context, id uint, processingErr error) error {
	for _, e := range f.events {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.ProcessingError = ""
			if processingErr != nil {
				e.ProcessingError = processingErr.Error()
			}
		}
	}
	return nil
}

func (f *fakeWebhookBilling) ApplyNotification(_ context.Context, n *billing.Notification) error {
	f.applied = append(f.applied, n)
	return f.applyErr
}

type staticSecrets struct{ serverKey, callbackToken string }

func (s staticSecrets) WebhookSecrets() (string, string) { return s.serverKey, s.callbackToken }

func midtransSignature(orderID, statusCode, gross, key string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + gross + key))
	return hex.EncodeToString(sum[:])
}

func newWebhookApp(b *fakeWebhookBilling, secrets staticSecrets) *fiber.App {
	wc := NewWebhookController(b, secrets)
	app := fiber.New()
	app.Post("/api/webhooks/notification", wc.HandleNotification)
	return app
}

func TestWebhookMidtransSettlement(t *testing.T) {
	b := newFakeWebhookBilling()
	app := newWebhookApp(b, staticSecrets{serverKey: "SB-key"})
	payload := fiber.Map{
		"order_id":           "ORDER-1",
		"transaction_id":     "tx-1",
		"transaction_status": "settlement",
		"status_code":        "200",
		"gross_amount":       "100000.00",
		"signature_key":      midtransSignature("ORDER-1", "200", "100000.00", "SB-key"),
	}

	resp, body := doJSON(t, app, "POST", "/api/webhooks/notification", payload, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["received"])
	require.Len(t, b.applied, 1)
	assert.Equal(t, models.TxStatusSuccess, b.applied[0].Status)

	// A redelivery of a processed event is acknowledged but not applied.
	resp, body = doJSON(t, app, "POST", "/api/webhooks/notification", payload, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["duplicate"])
	assert.Len(t, b.applied, 1)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	b := newFakeWebhookBilling()
	app := newWebhookApp(b, staticSecrets{serverKey: "SB-key"})

	resp, _ := doJSON(t, app, "POST", "/api/webhooks/notification", fiber.Map{
		"order_id": "ORDER-1", "transaction_status": "settlement", "status_code": "200",
		"gross_amount": "1.00", "signature_key": "deadbeef",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, b.events)
	assert.Empty(t, b.applied)
}

func TestWebhookXenditCallbackToken(t *testing.T) {
	b := newFakeWebhookBilling()
	app := newWebhookApp(b, staticSecrets{callbackToken: "xnd-token"})
	payload := fiber.Map{"id": "inv-1", "external_id": "ORDER-2", "status": "PAID"}

	resp, _ := doJSON(t, app, "POST", "/api/webhooks/notification", payload, map[string]string{"x-callback-token": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/webhooks/notification", payload, map[string]string{"x-callback-token": "xnd-token"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, b.applied, 1)
	assert.Equal(t, "ORDER-2", b.applied[0].OrderID)
	assert.Equal(t, billing.ProviderXendit, b.applied[0].Provider)
}

func TestWebhookUnknownPayload(t *testing.T) {
	app := newWebhookApp(newFakeWebhookBilling(), staticSecrets{})

	resp, body := doJSON(t, app, "POST", "/api/webhooks/notification", fiber.Map{"hello": "world"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown Payload", body["error"])
}

func TestWebhookFailedProcessingIsRetried(t *testing.T) {
	b := newFakeWebhookBilling()
	b.applyErr = errors.New("db timeout")
	app := newWebhookApp(b, staticSecrets{})
	payload := fiber.Map{"order_id": "ORDER-3", "transaction_id": "tx-3", "transaction_status": "settlement"}

	resp, _ := doJSON(t, app, "POST", "/api/webhooks/notification", payload, nil)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	b.applyErr = nil
	resp, body := doJSON(t, app, "POST", "/api/webhooks/notification", payload, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, body["duplicate"])
	assert.Len(t, b.applied, 2)
}

func TestWebhookUnknownOrderIsAcknowledged(t *testing.T) {
	b := newFakeWebhookBilling()
	b.applyErr = apperror.ErrNotFound
	app := newWebhookApp(b, staticSecrets{})

	resp, body := doJSON(t, app, "POST", "/api/webhooks/notification", fiber.Map{"order_id": "ORDER-X", "transaction_status": "expire"}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["received"])
}
