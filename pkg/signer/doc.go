// Package signer provides timestamped, HMAC-signed tokens for wrapping small
// opaque payloads such as session identifiers.
//
// The signing key is derived from an application secret and a salt string, so
// tokens minted for one purpose ("session") never verify against tokens
// minted for another purpose under the same secret.
//
// Token format: base64url(payload).base64url(timestamp).base64url(signature)
//
// Unsign enforces a caller-supplied maximum age against the embedded
// timestamp. Both a cryptographic mismatch and an aged-out timestamp report
// through ErrBadSignature: ErrTokenExpired wraps it, so callers that only
// care about "is this token trustworthy" can test a single sentinel.
//
// # Usage
//
//	s := signer.New("super-secret", "session")
//
//	token := s.Sign([]byte(sessionID))
//
//	payload, err := s.Unsign(token, 12*time.Hour)
//	if errors.Is(err, signer.ErrBadSignature) {
//	    // treat as absent
//	}
package signer
