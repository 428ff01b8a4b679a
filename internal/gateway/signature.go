package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ValidSignature reports whether signature is the HMAC-SHA256 hex digest of
// "gatewayOrderID|gatewayPaymentID" under the key secret. Comparison is
// constant time.
func ValidSignature(gatewayOrderID, gatewayPaymentID, signature, keySecret string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
