package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return out
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperror.Invalid("email", "is required"), fiber.StatusBadRequest, "validation_error"},
		{"duplicate", apperror.ErrDuplicateUser, fiber.StatusBadRequest, "duplicate_user"},
		{"not found", apperror.ErrNotFound, fiber.StatusNotFound, "not_found"},
		{"unauthorized", apperror.ErrUnauthorized, fiber.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperror.ErrForbidden, fiber.StatusForbidden, "forbidden"},
		{"gateway", &apperror.PaymentGatewayError{Provider: "xendit", Message: "declined"}, fiber.StatusBadGateway, "payment_gateway_error"},
		{"external", apperror.External("email", errors.New("smtp down")), fiber.StatusBadGateway, "external_service_error"},
		{"other", errors.New("boom"), fiber.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })

			resp, body := doJSON(t, app, "GET", "/", nil, nil)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRespondErrorDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/field", func(c *fiber.Ctx) error { return respondError(c, apperror.Invalid("email", "is required")) })
	app.Get("/gateway", func(c *fiber.Ctx) error {
		return respondError(c, &apperror.PaymentGatewayError{Provider: "midtrans", Message: "server key rejected"})
	})

	_, body := doJSON(t, app, "GET", "/field", nil, nil)
	assert.Equal(t, "email", body["field"])
	assert.Equal(t, "is required", body["error"])

	_, body = doJSON(t, app, "GET", "/gateway", nil, nil)
	assert.Equal(t, "midtrans", body["provider"])
	assert.Equal(t, "server key rejected", body["error"])
}
