package session

import (
	"bytes"
	"net/http"
)

// Middleware loads the session before the handler runs and finalizes it after
// the handler returns. The response body is buffered until the session is
// saved so that cookies can still be set after the handler has written.
//
// If the handler panics nothing is persisted. Store unavailability turns into
// a 503; it is the one failure with no fail-open substitute.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Load(r)
		if err != nil {
			m.log.ErrorContext(r.Context(), "session load failed", "error", err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		scope := &requestScope{session: sess}
		buf := &bufferedWriter{w: w}

		next.ServeHTTP(buf, r.WithContext(newContext(r.Context(), scope)))

		if err := m.Save(w, r, sess); err != nil {
			m.log.ErrorContext(r.Context(), "session save failed", "error", err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		buf.flush()
	})
}

// UsesSession grants the wrapped handler access to the request's session and
// adds a Vary: Cookie header, since the response now depends on it. Handlers
// that skip this wrapper get ErrAccessNotPermitted from FromContext.
func UsesSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if scope, ok := scopeFromContext(r.Context()); ok {
			scope.permitted = true
		}
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}

// bufferedWriter delays the status line and body until flush so headers stay
// mutable for the save step.
type bufferedWriter struct {
	w      http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (b *bufferedWriter) Header() http.Header {
	return b.w.Header()
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) flush() {
	if b.status != 0 {
		b.w.WriteHeader(b.status)
	}
	_, _ = b.w.Write(b.body.Bytes())
}
