package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Header names used by the identity provider's webhook delivery
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// DefaultTolerance bounds the allowed clock skew between the provider and us
const DefaultTolerance = 5 * time.Minute

var (
	ErrMissingHeaders    = errors.New("webhook headers are missing")
	ErrInvalidTimestamp  = errors.New("webhook timestamp is invalid")
	ErrTimestampTooOld   = errors.New("webhook timestamp outside of tolerance")
	ErrInvalidSignature  = errors.New("webhook signature verification failed")
	ErrInvalidSecret     = errors.New("webhook signing secret is invalid")
	ErrNoUsableSignature = errors.New("no v1 signature found in header")
)

// Verifier checks provider webhook signatures. The signed content is
// "<id>.<timestamp>.<payload>" and the signature is a base64 HMAC-SHA256
// under the shared signing secret.
type Verifier struct {
	key       []byte
	tolerance time.Duration
}

// NewVerifier builds a Verifier from a signing secret. Secrets are issued
// with a "whsec_" prefix followed by the base64-encoded key.
func NewVerifier(secret string, tolerance time.Duration) (*Verifier, error) {
	if secret == "" {
		return nil, ErrInvalidSecret
	}

	encoded := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}

	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	return &Verifier{key: key, tolerance: tolerance}, nil
}

// Verify checks the signature headers against the raw payload at time now.
func (v *Verifier) Verify(id, timestamp, signatureHeader string, payload []byte, now time.Time) error {
	if id == "" || timestamp == "" || signatureHeader == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}

	sent := time.Unix(ts, 0)
	if now.Sub(sent) > v.tolerance || sent.Sub(now) > v.tolerance {
		return ErrTimestampTooOld
	}

	expected := v.sign(id, timestamp, payload)

	// The header may carry several space-delimited signatures during secret
	// rotation, each prefixed with its scheme version.
	found := false
	for _, part := range strings.Fields(signatureHeader) {
		version, sig, ok := strings.Cut(part, ",")
		if !ok || version != "v1" {
			continue
		}
		found = true
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}

	if !found {
		return ErrNoUsableSignature
	}
	return ErrInvalidSignature
}

// Sign produces a "v1,<sig>" header value for the given message. Used by
// tests and local delivery tooling.
func (v *Verifier) Sign(id, timestamp string, payload []byte) string {
	return "v1," + v.sign(id, timestamp, payload)
}

func (v *Verifier) sign(id, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
