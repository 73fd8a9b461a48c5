package session

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// NewCSRFToken generates a fresh unscoped CSRF token, stores it under
// CSRFTokenKey and returns it. Any previously issued token stops validating.
func (s *Session) NewCSRFToken() string {
	token := randomToken()
	s.Set(CSRFTokenKey, token)
	return token
}

// GetCSRFToken returns the session's unscoped CSRF token, generating one on
// first use. Repeat calls return the same token.
func (s *Session) GetCSRFToken() string {
	if token, ok := s.data[CSRFTokenKey].(string); ok {
		return token
	}
	return s.NewCSRFToken()
}

// HasCSRFToken reports whether a token exists without generating one.
func (s *Session) HasCSRFToken() bool {
	_, ok := s.data[CSRFTokenKey]
	return ok
}

// GetScopedCSRFToken derives a CSRF token bound to both a usage scope and
// this session's identifier:
//
//	HMAC-SHA512(key=HMAC-SHA512(key=unscoped, msg=scope) as hex, msg=sessionID)
//
// A token leaked for one scope cannot authenticate another, and no scoped
// token is portable across sessions.
func (s *Session) GetScopedCSRFToken(scope string) string {
	inner := hmac.New(sha512.New, []byte(s.GetCSRFToken()))
	inner.Write([]byte(scope))
	scoped := hex.EncodeToString(inner.Sum(nil))

	outer := hmac.New(sha512.New, []byte(scoped))
	outer.Write([]byte(s.ID()))
	return hex.EncodeToString(outer.Sum(nil))
}
