// Package signing defines the request authentication collaborator for
// relayer submissions.
package signing

import "time"

// Signer authenticates a relayer submission. The canonical message is the
// unix timestamp, the HTTP method, the request path and the raw body,
// concatenated in that order with no separator.
type Signer interface {
	Sign(timestamp time.Time, method, path string, body []byte) string
}
