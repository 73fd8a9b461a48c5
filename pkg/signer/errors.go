package signer

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSignature indicates the token is malformed, tampered with, or
	// signed with a different key.
	ErrBadSignature = errors.New("signer.bad_signature")

	// ErrTokenExpired indicates the signature verified but the embedded
	// timestamp is older than the allowed maximum age. It wraps
	// ErrBadSignature so both failure modes match a single sentinel.
	ErrTokenExpired = fmt.Errorf("%w: timestamp beyond max age", ErrBadSignature)
)
