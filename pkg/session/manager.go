package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/initforge/sessionkit/pkg/codec"
	"github.com/initforge/sessionkit/pkg/signer"
)

// signerSalt namespaces session tokens away from any other value the
// application signs with the same secret.
const signerSalt = "session"

// Manager orchestrates the session life-cycle. It is the only component that
// touches the signer, the store and the codec, holds no per-session state
// between calls and is safe for concurrent use.
type Manager struct {
	store  Store
	signer *signer.Signer
	config Config
	log    *slog.Logger
	now    func() time.Time
}

// New creates a Manager keyed with secret. Without a WithStore option it
// falls back to an in-memory store, which is only suitable for tests and
// single-process development.
func New(secret string, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	m := &Manager{
		config: DefaultConfig(),
		log:    slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	m.config.Secret = secret

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(0)
	}

	m.signer = signer.New(secret, signerSalt, signer.WithTimeFunc(m.now))

	return m, nil
}

// NewFromConfig creates a Manager from a Config, typically one populated from
// the environment.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	return New(cfg.Secret, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Load resolves the request's cookie to a session. Every untrusted-input
// failure (no cookie, bad or aged-out signature, missing store entry,
// corrupt payload) yields a brand-new empty session. The only returned
// error is store unavailability, for which no local fallback exists.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil {
		return NewSession(), nil
	}

	raw, err := m.signer.Unsign(cookie.Value, m.config.Lifetime)
	if err != nil || len(raw) == 0 {
		return NewSession(), nil
	}
	id := string(raw)

	blob, found, err := m.store.Get(r.Context(), m.storeKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return NewSession(), nil
	}

	data, err := codec.Unmarshal(blob)
	if err != nil {
		return NewSession(), nil
	}

	return restoreSession(data, id), nil
}

// Save finalizes sess onto the response. Invoked once per request after
// handling completes.
//
// An invalidated session has its store entry deleted and its identifier
// reset; the cookie is cleared only when no mutation followed the
// invalidation. A dirty session is encoded, written with the configured
// lifetime as TTL and announced through a signed cookie carrying the same
// max-age. Both branches may fire on one response, e.g. a logout that
// immediately stores fresh state under a new identifier.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	ctx := r.Context()

	if sess.Invalidated() {
		key := m.storeKey(sess.ID())
		if err := m.store.Delete(ctx, key); err != nil {
			return err
		}
		sess.resetID()

		m.log.DebugContext(ctx, "session deleted", slog.String("key", key))

		if !sess.ShouldSave() {
			m.clearCookie(w)
		}
	}

	if sess.ShouldSave() {
		blob, err := codec.Marshal(sess.data)
		if err != nil {
			return err
		}

		key := m.storeKey(sess.ID())
		if err := m.store.Set(ctx, key, blob, m.config.Lifetime); err != nil {
			return err
		}

		http.SetCookie(w, &http.Cookie{
			Name:     m.config.CookieName,
			Value:    m.signer.Sign([]byte(sess.ID())),
			Path:     "/",
			MaxAge:   int(m.config.Lifetime.Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})

		m.log.DebugContext(ctx, "session persisted",
			slog.String("key", key),
			slog.Duration("ttl", m.config.Lifetime))
	}

	return nil
}

func (m *Manager) storeKey(id string) string {
	return m.config.Namespace + "/session/data/" + id
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
