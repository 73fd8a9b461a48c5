package redis

import "errors"

var (
	// ErrInvalidConnectionURL indicates the redis:// URL could not be parsed.
	ErrInvalidConnectionURL = errors.New("redis.invalid_connection_url")

	// ErrNotReady indicates the server did not answer a ping within the
	// configured retry attempts.
	ErrNotReady = errors.New("redis.not_ready")

	// ErrHealthcheckFailed indicates a readiness probe failed.
	ErrHealthcheckFailed = errors.New("redis.healthcheck_failed")
)
