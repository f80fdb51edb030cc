package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ComputeSignature produces the base64 HMAC-SHA256 digest of the raw
// webhook body under the shared gateway secret.
func ComputeSignature(secret string, rawBody []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares the presented signature against the expected
// digest in constant time.
func VerifySignature(secret string, rawBody []byte, signature string) bool {
	expected := ComputeSignature(secret, rawBody)
	return hmac.Equal([]byte(expected), []byte(signature))
}
