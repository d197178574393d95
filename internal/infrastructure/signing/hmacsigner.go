// Package signing implements request authentication for relayer
// submissions.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	appsigning "lunaspay/internal/application/bridge/signing"
)

// HMACSigner produces an HMAC-SHA256 signature over the canonical message:
// unix timestamp, HTTP method, request path and raw body concatenated in
// that order with no separator. The relayer recomputes the same message
// to verify.
type HMACSigner struct {
	secret []byte
}

func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

var _ appsigning.Signer = (*HMACSigner)(nil)

func (s *HMACSigner) Sign(timestamp time.Time, method, path string, body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(strconv.FormatInt(timestamp.Unix(), 10)))
	mac.Write([]byte(method))
	mac.Write([]byte(path))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature in constant time.
func (s *HMACSigner) Verify(signature string, timestamp time.Time, method, path string, body []byte) bool {
	expected := s.Sign(timestamp, method, path, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
