package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"time"
)

// Signer signs byte payloads with a key derived from a secret and a salt and
// verifies them against a maximum age. It is safe for concurrent use.
type Signer struct {
	key []byte
	now func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithTimeFunc overrides the clock used for timestamping and age checks.
func WithTimeFunc(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Signer. The salt namespaces the derived key so that values
// signed for different purposes under the same secret never cross-verify.
func New(secret, salt string, opts ...Option) *Signer {
	kdf := hmac.New(sha256.New, []byte(secret))
	kdf.Write([]byte(salt))

	s := &Signer{
		key: kdf.Sum(nil),
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sign wraps payload into a timestamped token.
func (s *Signer) Sign(payload []byte) string {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(s.now().Unix()))

	body := base64.RawURLEncoding.EncodeToString(payload) +
		"." + base64.RawURLEncoding.EncodeToString(ts[:])

	return body + "." + base64.RawURLEncoding.EncodeToString(s.mac(body))
}

// Unsign verifies token and returns the wrapped payload. It fails with
// ErrBadSignature on any malformation or signature mismatch and with
// ErrTokenExpired when the embedded timestamp is older than maxAge.
func (s *Signer) Unsign(token string, maxAge time.Duration) ([]byte, error) {
	i := strings.LastIndexByte(token, '.')
	if i < 0 {
		return nil, ErrBadSignature
	}
	body, sigEnc := token[:i], token[i+1:]

	sig, err := base64.RawURLEncoding.DecodeString(sigEnc)
	if err != nil {
		return nil, ErrBadSignature
	}

	if subtle.ConstantTimeCompare(sig, s.mac(body)) != 1 {
		return nil, ErrBadSignature
	}

	// Signature is good, the parts are trusted from here on.
	parts := strings.SplitN(body, ".", 2)
	if len(parts) != 2 {
		return nil, ErrBadSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrBadSignature
	}

	tsRaw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil || len(tsRaw) != 8 {
		return nil, ErrBadSignature
	}

	signedAt := time.Unix(int64(binary.BigEndian.Uint64(tsRaw)), 0)
	if s.now().Sub(signedAt) > maxAge {
		return nil, ErrTokenExpired
	}

	return payload, nil
}

func (s *Signer) mac(body string) []byte {
	m := hmac.New(sha256.New, s.key)
	m.Write([]byte(body))
	return m.Sum(nil)
}
