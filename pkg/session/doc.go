// Package session implements server-side sessions for web applications: an
// opaque, signed identifier travels in a cookie while the session data itself
// lives in a fast key-value store.
//
// A Manager orchestrates the life-cycle. On the way in it unsigns the cookie,
// fetches the record from the Store and decodes it; on the way out it
// persists dirty sessions with a TTL and re-issues the signed cookie, or
// deletes invalidated ones. Every failure that originates from untrusted
// input (missing cookie, tampered or aged-out signature, missing store
// entry, corrupt payload) degrades to a fresh empty session instead of an
// error. Only store unavailability surfaces to the caller.
//
//	┌────────┐  signed cookie  ┌─────────────┐
//	│ Client │ ──────────────► │   Manager   │
//	└────────┘                 └─────────────┘
//	                            │ unsign / sign (pkg/signer)
//	                            │ encode / decode (pkg/codec)
//	                            ▼
//	                           ┌───────┐
//	                           │ Store │ (redis, memory)
//	                           └───────┘
//
// Expiry is enforced twice with the same 12-hour lifetime: the signed
// cookie's timestamp is checked at unsign time and the store entry carries
// its own TTL. Either aging out invalidates the session on its own.
//
// # Usage
//
//	manager, _ := session.New(cfg.Secret,
//	    session.WithStore(session.NewRedisStore(client)),
//	)
//
//	mux.Handle("/", manager.Middleware(session.UsesSession(handler)))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    sess.Set("counter", 1)
//	}
//
// Handlers reach their session through the request context. Access is opt-in:
// FromContext fails with ErrAccessNotPermitted unless the handler is wrapped
// with UsesSession, which also adds a Vary: Cookie header. The failure is a
// programmer-misuse signal meant to surface during development, not a runtime
// condition to handle.
//
// # Concurrency
//
// A Session is confined to one request and needs no locking. The Manager is
// stateless between calls and safe for concurrent use. Two in-flight requests
// sharing one cookie race on the whole record: the later save wins. That is
// an accepted limitation, not a bug.
package session
