package billing

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// VerifyMidtransSignature checks signature_key, the hex SHA-512 of
// order_id + status_code + gross_amount + server key.
func VerifyMidtransSignature(n *Notification, serverKey string) bool {
	sig := strings.ToLower(strings.TrimSpace(n.Signature))
	key := strings.TrimSpace(serverKey)
	if sig == "" || key == "" {
		return false
	}
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + key))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(sig)) == 1
}

// VerifyXenditCallbackToken compares the x-callback-token header with the
// configured verification token.
func VerifyXenditCallbackToken(header, token string) bool {
	h := strings.TrimSpace(header)
	t := strings.TrimSpace(token)
	if h == "" || t == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h), []byte(t)) == 1
}
