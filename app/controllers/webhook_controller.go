package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
)

// WebhookProcessor records gateway pushes and applies them.
type WebhookProcessor interface {
	RecordWebhookEvent(ctx context.Context, in billing.WebhookEventInput) (bool, *models.PaymentWebhookEvent, error)
	MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error
	ApplyNotification(ctx context.Context, n *billing.Notification) error
}

// WebhookSecrets returns the keys used to authenticate pushes.
type WebhookSecrets interface {
	WebhookSecrets() (midtransServerKey, xenditCallbackToken string)
}

type WebhookController struct {
	billing WebhookProcessor
	secrets WebhookSecrets
}

func NewWebhookController(b WebhookProcessor, secrets WebhookSecrets) *WebhookController {
	return &WebhookController{billing: b, secrets: secrets}
}

// HandleNotification serves POST /api/webhooks/notification for Midtrans
// and Xendit pushes. Each event is applied at most once.
func (wc *WebhookController) HandleNotification(c *fiber.Ctx) error {
	body := c.Body()
	n, err := billing.ParseNotification(body)
	if err != nil {
		log.Warnf("[Webhook] unknown payload: %.200s", string(body))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown Payload"})
	}

	valid, checked := wc.verify(c, n)
	if checked && !valid {
		log.Warnf("[Webhook] %s signature mismatch for order %s", n.Provider, n.OrderID)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid signature"})
	}

	ctx := c.UserContext()
	created, event, err := wc.billing.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        n.Provider,
		ProviderEventID: n.EventID,
		OrderID:         n.OrderID,
		EventType:       n.ProviderStatus,
		PayloadJSON:     n.RawPayload,
		SignatureValid:  valid,
	})
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	if !created && event.ProcessedAt != nil && event.ProcessingError == "" {
		log.Infof("[Webhook] duplicate %s event %s ignored", n.Provider, n.EventID)
		return c.JSON(fiber.Map{"received": true, "duplicate": true})
	}

	applyErr := wc.billing.ApplyNotification(ctx, n)
	if errors.Is(applyErr, apperror.ErrNotFound) {
		log.Warnf("[Webhook] order %s not found", n.OrderID)
	}
	if err := wc.billing.MarkWebhookProcessed(ctx, event.ID, applyErr); err != nil {
		log.Errorf("[Webhook] could not mark event %d processed: %v", event.ID, err)
	}
	if applyErr != nil && !errors.Is(applyErr, apperror.ErrNotFound) {
		return respondError(c, apperror.External("datastore", applyErr))
	}
	return c.JSON(fiber.Map{"received": true})
}

// verify reports whether the push carried valid credentials and whether a
// secret was configured to check them against.
func (wc *WebhookController) verify(c *fiber.Ctx, n *billing.Notification) (valid, checked bool) {
	serverKey, callbackToken := wc.secrets.WebhookSecrets()
	switch n.Provider {
	case billing.ProviderMidtrans:
		if serverKey == "" {
			return false, false
		}
		return billing.VerifyMidtransSignature(n, serverKey), true
	case billing.ProviderXendit:
		if callbackToken == "" {
			return false, false
		}
		return billing.VerifyXenditCallbackToken(c.Get("x-callback-token"), callbackToken), true
	}
	return false, false
}
