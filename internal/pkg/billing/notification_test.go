package billing

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/brewlogic/BrewLogic/app/models"
)

func TestMidtransStatus(t *testing.T) {
	tests := []struct {
		status string
		fraud  string
		want   string
	}{
		{status: "capture", fraud: "accept", want: models.TxStatusSuccess},
		{status: "capture", fraud: "challenge", want: models.TxStatusChallenge},
		{status: "settlement", want: models.TxStatusSuccess},
		{status: "deny", want: models.TxStatusFailed},
		{status: "cancel", want: models.TxStatusFailed},
		{status: "expire", want: models.TxStatusFailed},
		{status: "pending", want: models.TxStatusPending},
		{status: "refund", want: models.TxStatusPending},
	}

	for _, tt := range tests {
		if got := MidtransStatus(tt.status, tt.fraud); got != tt.want {
			t.Fatalf("MidtransStatus(%q, %q) = %q, want %q", tt.status, tt.fraud, got, tt.want)
		}
	}
}

func TestXenditStatus(t *testing.T) {
	tests := map[string]string{
		"PAID":    models.TxStatusSuccess,
		"SETTLED": models.TxStatusSuccess,
		"EXPIRED": models.TxStatusFailed,
		"PENDING": models.TxStatusPending,
	}
	for in, want := range tests {
		if got := XenditStatus(in); got != want {
			t.Fatalf("XenditStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseNotificationMidtrans(t *testing.T) {
	body := []byte(`{"order_id":"ORDER-1","transaction_id":"abc","transaction_status":"settlement","status_code":"200","gross_amount":"90000.00","signature_key":"sig"}`)
	n, err := ParseNotification(body)
	if err != nil {
		t.Fatalf("ParseNotification: %v", err)
	}
	if n.Provider != ProviderMidtrans || n.OrderID != "ORDER-1" || n.Status != models.TxStatusSuccess {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.EventID != "abc:settlement" {
		t.Fatalf("unexpected event id %q", n.EventID)
	}
}

func TestParseNotificationXendit(t *testing.T) {
	body := []byte(`{"id":"inv_1","external_id":"ORDER-2","status":"PAID","amount":150000}`)
	n, err := ParseNotification(body)
	if err != nil {
		t.Fatalf("ParseNotification: %v", err)
	}
	if n.Provider != ProviderXendit || n.OrderID != "ORDER-2" || n.Status != models.TxStatusSuccess {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestParseNotificationUnknown(t *testing.T) {
	for _, body := range []string{`{"hello":"world"}`, `not json`, `{"order_id":"x"}`} {
		if _, err := ParseNotification([]byte(body)); !errors.Is(err, ErrUnknownPayload) {
			t.Fatalf("expected ErrUnknownPayload for %s, got %v", body, err)
		}
	}
}

func TestVerifyMidtransSignature(t *testing.T) {
	n := &Notification{OrderID: "ORDER-1", StatusCode: "200", GrossAmount: "90000.00"}
	sum := sha512.Sum512([]byte("ORDER-1" + "200" + "90000.00" + "server-key"))
	n.Signature = hex.EncodeToString(sum[:])

	if !VerifyMidtransSignature(n, "server-key") {
		t.Fatalf("expected signature to validate")
	}
	if VerifyMidtransSignature(n, "other-key") {
		t.Fatalf("expected wrong key to fail")
	}
	n.Signature = ""
	if VerifyMidtransSignature(n, "server-key") {
		t.Fatalf("expected empty signature to fail")
	}
}

func TestVerifyXenditCallbackToken(t *testing.T) {
	if !VerifyXenditCallbackToken("tok", "tok") {
		t.Fatalf("expected matching token to validate")
	}
	if VerifyXenditCallbackToken("tok", "other") || VerifyXenditCallbackToken("", "") {
		t.Fatalf("expected mismatched or empty token to fail")
	}
}
