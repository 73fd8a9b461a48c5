// Package redis establishes the connection to the Redis instance that backs
// session storage.
//
// Connect parses a redis:// URL, pings the server and retries a configurable
// number of times before giving up, so an application can start while its
// store is still coming up. Healthcheck returns a probe suitable for
// readiness endpoints.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
package redis
