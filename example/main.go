// Demo application: Redis-backed sessions behind a chi router.
//
// Run a local Redis, export SESSION_SECRET and REDIS_URL (or put them in a
// .env file) and start the server. "/" counts visits, "/flash" queues a
// one-time message that "/" consumes, "/form" renders a scoped CSRF token and
// "/logout" invalidates the session.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/initforge/sessionkit/pkg/config"
	"github.com/initforge/sessionkit/pkg/redis"
	"github.com/initforge/sessionkit/pkg/session"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var sessCfg session.Config
	config.MustLoad(&sessCfg)

	var redisCfg redis.Config
	config.MustLoad(&redisCfg)

	client, err := redis.Connect(context.Background(), redisCfg)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	manager, err := session.NewFromConfig(sessCfg,
		session.WithStore(session.NewRedisStore(client)),
		session.WithLogger(log),
	)
	if err != nil {
		log.Error("session manager init failed", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(manager.Middleware)

	r.Group(func(r chi.Router) {
		r.Use(session.UsesSession)

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			sess := session.MustFromContext(req.Context())

			count, _ := sess.GetInt("counter")
			count++
			sess.Set("counter", count)

			for _, msg := range sess.PopFlash("") {
				fmt.Fprintf(w, "notice: %v\n", msg)
			}
			fmt.Fprintf(w, "visit %d\n", count)
		})

		r.Get("/flash", func(w http.ResponseWriter, req *http.Request) {
			sess := session.MustFromContext(req.Context())
			sess.Flash("welcome back", session.WithoutDuplicates())
			http.Redirect(w, req, "/", http.StatusSeeOther)
		})

		r.Get("/form", func(w http.ResponseWriter, req *http.Request) {
			sess := session.MustFromContext(req.Context())
			fmt.Fprintf(w, "csrf token for this form: %s\n", sess.GetScopedCSRFToken("demo-form"))
		})

		r.Get("/logout", func(w http.ResponseWriter, req *http.Request) {
			sess := session.MustFromContext(req.Context())
			sess.Invalidate()
			fmt.Fprintln(w, "logged out")
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := redis.Healthcheck(client)(req.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	log.Info("listening", "addr", ":8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
