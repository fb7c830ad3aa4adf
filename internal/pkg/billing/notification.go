package billing

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/brewlogic/BrewLogic/app/models"
)

// ErrUnknownPayload is returned for pushes that match no known gateway.
var ErrUnknownPayload = errors.New("unknown payload")

type midtransPayload struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

type xenditPayload struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// ParseNotification detects the gateway from the payload shape. Midtrans
// pushes carry transaction_status and order_id; Xendit invoice callbacks
// carry external_id and status.
func ParseNotification(body []byte) (*Notification, error) {
	var m midtransPayload
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, ErrUnknownPayload
	}
	if m.TransactionStatus != "" && m.OrderID != "" {
		return &Notification{
			Provider:       ProviderMidtrans,
			OrderID:        m.OrderID,
			EventID:        eventID(m.TransactionID, m.TransactionStatus),
			ProviderStatus: m.TransactionStatus,
			Status:         MidtransStatus(m.TransactionStatus, m.FraudStatus),
			StatusCode:     m.StatusCode,
			GrossAmount:    m.GrossAmount,
			Signature:      m.SignatureKey,
			RawPayload:     string(body),
		}, nil
	}

	var x xenditPayload
	if err := json.Unmarshal(body, &x); err != nil {
		return nil, ErrUnknownPayload
	}
	if x.ExternalID != "" && x.Status != "" {
		return &Notification{
			Provider:       ProviderXendit,
			OrderID:        x.ExternalID,
			EventID:        eventID(x.ID, x.Status),
			ProviderStatus: x.Status,
			Status:         XenditStatus(x.Status),
			RawPayload:     string(body),
		}, nil
	}
	return nil, ErrUnknownPayload
}

// MidtransStatus maps a Midtrans transaction status to a local status.
func MidtransStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return models.TxStatusChallenge
		}
		return models.TxStatusSuccess
	case "settlement":
		return models.TxStatusSuccess
	case "deny", "cancel", "expire":
		return models.TxStatusFailed
	default:
		return models.TxStatusPending
	}
}

// XenditStatus maps a Xendit invoice status to a local status.
func XenditStatus(status string) string {
	switch strings.ToUpper(status) {
	case "PAID", "SETTLED":
		return models.TxStatusSuccess
	case "EXPIRED":
		return models.TxStatusFailed
	default:
		return models.TxStatusPending
	}
}

// An empty id leaves deduplication to the payload hash.
func eventID(id, status string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return id + ":" + status
}
