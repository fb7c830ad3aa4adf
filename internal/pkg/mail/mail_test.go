package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlogic/BrewLogic/app/models"
)

func TestEmailJSSend(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	s := NewEmailJS(&Config{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", PrivateKey: "priv", URL: srv.URL})
	err := s.Send(context.Background(), Message{ToEmail: "ana@example.com", Subject: "Reset Password OTP", Body: "Kode OTP Anda adalah: 123456"})
	require.NoError(t, err)

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "priv", got.AccessToken)
	assert.Equal(t, "User", got.TemplateParams["to_name"])
	assert.Equal(t, "ana@example.com", got.TemplateParams["to_email"])
	assert.Equal(t, "Kode OTP Anda adalah: 123456", got.TemplateParams["message"])
}

func TestEmailJSSendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("API calls are disabled for non-browser applications"))
	}))
	defer srv.Close()

	s := NewEmailJS(&Config{URL: srv.URL})
	err := s.Send(context.Background(), Message{ToEmail: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
}

func TestEmailJSRequiresRecipient(t *testing.T) {
	s := NewEmailJS(&Config{URL: "http://127.0.0.1:1"})
	assert.Error(t, s.Send(context.Background(), Message{}))
}

type captureSender struct {
	msgs []Message
}

func (c *captureSender) Send(ctx context.Context, msg Message) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestPlanNotifier(t *testing.T) {
	sender := &captureSender{}
	end := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	u := &models.User{Username: "budi", Name: "Budi", SubscriptionEnd: &end}
	u.SetPlan("Pro Brewer")

	require.NoError(t, PlanNotifier{Sender: sender}.PlanActivated(context.Background(), u))
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "budi", sender.msgs[0].ToEmail)
	assert.Contains(t, sender.msgs[0].Body, "Pro Brewer")
	assert.Contains(t, sender.msgs[0].Body, "05 Jan 2026")
}

func TestDisabledSender(t *testing.T) {
	err := Disabled{}.Send(context.Background(), Message{ToEmail: "ana@brew.id"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
