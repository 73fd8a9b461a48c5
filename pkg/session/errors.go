package session

import "errors"

var (
	// ErrNoSecret indicates the Manager was constructed without a signing
	// secret.
	ErrNoSecret = errors.New("session.no_secret")

	// ErrStoreUnavailable indicates the backing store could not be reached.
	// This is the one failure the package does not absorb.
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrAccessNotPermitted indicates a handler read the session without
	// opting in via UsesSession.
	ErrAccessNotPermitted = errors.New("session.access_not_permitted")

	// ErrNotInRequest indicates the context carries no session scope at all,
	// i.e. the Manager middleware is not installed.
	ErrNotInRequest = errors.New("session.not_in_request")
)
