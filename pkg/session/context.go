package session

import "context"

// requestScope tags the session's availability for the current request.
// Access starts out forbidden and is granted by UsesSession, so a handler
// that forgets to opt in fails loudly instead of silently reading state.
type requestScope struct {
	session   *Session
	permitted bool
}

type scopeContextKey struct{}

func newContext(ctx context.Context, scope *requestScope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, scope)
}

func scopeFromContext(ctx context.Context) (*requestScope, bool) {
	scope, ok := ctx.Value(scopeContextKey{}).(*requestScope)
	return scope, ok
}

// FromContext returns the request's session. It fails with ErrNotInRequest
// when the Manager middleware is not installed and with ErrAccessNotPermitted
// when the handler has not opted in via UsesSession.
func FromContext(ctx context.Context) (*Session, error) {
	scope, ok := scopeFromContext(ctx)
	if !ok {
		return nil, ErrNotInRequest
	}
	if !scope.permitted {
		return nil, ErrAccessNotPermitted
	}
	return scope.session, nil
}

// MustFromContext is FromContext for handlers that have opted in; it panics
// on misuse so the mistake surfaces during development.
func MustFromContext(ctx context.Context) *Session {
	sess, err := FromContext(ctx)
	if err != nil {
		panic("session: handlers must opt in with UsesSession before touching the session: " + err.Error())
	}
	return sess
}
