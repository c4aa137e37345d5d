package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body,
// keyed with the Retell API key.
const SignatureHeader = "X-Retell-Signature"

// Sign computes the hex HMAC-SHA256 of body under key.
func Sign(body []byte, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against the exact bytes received on the
// wire. Comparison is constant-time. A missing key or signature never
// verifies.
func VerifySignature(body []byte, key, signature string) bool {
	if key == "" || signature == "" {
		return false
	}
	expected := Sign(body, key)
	return hmac.Equal([]byte(expected), []byte(signature))
}
