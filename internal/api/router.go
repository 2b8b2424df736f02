package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lhcpl/passdesk/internal/auth"
	"github.com/lhcpl/passdesk/internal/metrics"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps holds all dependencies for the API router.
type RouterDeps struct {
	Users          UserDirectory
	Credentials    CredentialStore
	Auth           *auth.Service
	Metrics        *metrics.Metrics
	DB             Pinger
	AllowedOrigins []string
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(secureHeaders)
	r.Use(corsMiddleware(deps.AllowedOrigins))
	r.Use(observeRequests(deps.Metrics))

	admin := newAdminHandler(deps.Users, deps.Credentials, deps.Auth, deps.Metrics)
	authh := newAuthHandler(deps.Users, deps.Auth, deps.Metrics)

	// Liveness banner; the mobile client pings this at startup.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Password Manager API is running"})
	})

	r.Get("/health", healthHandler(deps.DB))
	r.Get("/metrics", deps.Metrics.Handler())
	r.Get("/.well-known/passdesk.json", WellKnownHandler)

	// Admin section.
	r.Route("/admin", func(ar chi.Router) {
		ar.Post("/login", admin.Login)

		ar.Group(func(gr chi.Router) {
			gr.Use(auth.RequireRole(deps.Auth, auth.RoleAdmin))

			gr.Post("/create-user", admin.CreateUser)
			gr.Get("/users", admin.ListUsers)
			gr.Delete("/users/{id}", admin.DeleteUser)
			gr.Get("/organization-credentials", admin.GetOrganizationCredentials)
			gr.Put("/organization-credentials", admin.UpdateOrganizationCredential)
		})
	})

	// User section.
	r.Route("/auth", func(ur chi.Router) {
		ur.Post("/login", authh.Login)

		ur.Group(func(gr chi.Router) {
			gr.Use(auth.RequireAuth(deps.Auth))
			gr.Get("/me", authh.Me)
		})
	})

	return r
}

// healthHandler reports process and database health.
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "database": "connected"}
		code := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				status["status"] = "degraded"
				status["database"] = "unreachable"
				code = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, code, status)
	}
}

// observeRequests logs each request through slog and records HTTP metrics
// against the chi route pattern.
func observeRequests(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			elapsed := time.Since(start)

			m.ObserveHTTPRequest(r.Method, pattern, ww.Status(), elapsed.Seconds())
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", elapsed.Milliseconds(),
				"bytes", ww.BytesWritten(),
				"request_id", RequestIDFromContext(r.Context()),
			)
		})
	}
}
