package billing

const (
	ProviderMidtrans = "midtrans"
	ProviderXendit   = "xendit"
)

// Notification is the provider-agnostic shape of a payment status push.
type Notification struct {
	Provider       string
	OrderID        string
	EventID        string
	ProviderStatus string
	// Status is the local transaction status the push maps to.
	Status      string
	StatusCode  string
	GrossAmount string
	Signature   string
	RawPayload  string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	OrderID         string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
