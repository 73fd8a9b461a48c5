package session

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Reserved data keys. They live in the same map as application data so they
// survive the encode/decode round trip like any other entry.
const (
	// CSRFTokenKey holds the unscoped CSRF seed token.
	CSRFTokenKey = "_csrf_token"

	// FlashKeyPrefix namespaces the flash-message queues. The default queue
	// is stored under the prefix itself, named queues under
	// "<prefix>.<name>".
	FlashKeyPrefix = "_flash_messages"
)

// Session is one visitor's state for the duration of a single request. It
// wraps a private map rather than exposing one so that every mutation flows
// through the dirty-marking hook.
type Session struct {
	data        map[string]any
	id          string
	dirty       bool
	isNew       bool
	createdAt   time.Time
	invalidated bool
}

// NewSession returns a brand-new empty session.
func NewSession() *Session {
	return &Session{
		data:      make(map[string]any),
		isNew:     true,
		createdAt: time.Now(),
	}
}

// restoreSession rebuilds a session from a decoded store record and its
// verified identifier.
func restoreSession(data map[string]any, id string) *Session {
	if data == nil {
		data = make(map[string]any)
	}
	return &Session{
		data:      data,
		id:        id,
		createdAt: time.Now(),
	}
}

// ID returns the session identifier, generating a cryptographically random
// one on first read. Once generated it is fixed for the session's lifetime
// (until an invalidation-triggered reset).
func (s *Session) ID() string {
	if s.id == "" {
		s.id = randomToken()
	}
	return s.id
}

// resetID clears the identifier so a later save mints a fresh one. Used after
// an invalidated session's store entry has been deleted.
func (s *Session) resetID() {
	s.id = ""
}

// IsNew reports whether the session has no persisted predecessor.
func (s *Session) IsNew() bool {
	return s.isNew
}

// CreatedAt returns the construction time, reset on invalidation.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Invalidated reports whether Invalidate has been called.
func (s *Session) Invalidated() bool {
	return s.invalidated
}

// Changed marks the session dirty. Callers that mutate nested structures in
// place must call it themselves; every method mutator does so automatically.
func (s *Session) Changed() {
	s.dirty = true
}

// ShouldSave reports whether the session carries unsaved mutations.
func (s *Session) ShouldSave() bool {
	return s.dirty
}

// Invalidate empties the session and marks it for deletion from the store.
// It does not mark the session dirty: an invalidation alone deletes the
// record and clears the cookie, only explicit mutation afterwards triggers a
// rewrite.
func (s *Session) Invalidate() {
	s.data = make(map[string]any)
	s.isNew = true
	s.createdAt = time.Now()
	s.invalidated = true
	s.dirty = false
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString returns the string stored under key.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetInt returns the integer stored under key. Decoded records carry int64,
// fresh sessions whatever the handler put in.
func (s *Session) GetInt(key string) (int, bool) {
	v, ok := s.data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// GetBool returns the boolean stored under key.
func (s *Session) GetBool(key string) (bool, bool) {
	v, ok := s.data[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Set stores value under key. Always marks the session dirty, even when the
// value is unchanged.
func (s *Session) Set(key string, value any) {
	s.Changed()
	s.data[key] = value
}

// Delete removes key. Always marks the session dirty, even when the key was
// absent.
func (s *Session) Delete(key string) {
	s.Changed()
	delete(s.data, key)
}

// Pop removes key and returns the value it held.
func (s *Session) Pop(key string) (any, bool) {
	s.Changed()
	v, ok := s.data[key]
	delete(s.data, key)
	return v, ok
}

// Clear removes every entry.
func (s *Session) Clear() {
	s.Changed()
	s.data = make(map[string]any)
}

// Len returns the number of stored entries, reserved keys included.
func (s *Session) Len() int {
	return len(s.data)
}

// randomToken returns a 256-bit random token in URL-safe base64.
func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
