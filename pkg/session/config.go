package session

import "time"

// Config holds session configuration.
type Config struct {
	// Secret keys the identifier signer. Required.
	Secret string `env:"SESSION_SECRET,required"`

	// CookieName carries the signed identifier (default: "session_id").
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// Lifetime bounds both the signed cookie's age and the store record's
	// TTL (default: 12h).
	Lifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"12h"`

	// Namespace prefixes every store key: "<namespace>/session/data/<id>".
	Namespace string `env:"SESSION_KEY_NAMESPACE" envDefault:"webapp"`
}

// DefaultConfig returns the default session configuration, secret excluded.
func DefaultConfig() Config {
	return Config{
		CookieName: "session_id",
		Lifetime:   12 * time.Hour,
		Namespace:  "webapp",
	}
}
