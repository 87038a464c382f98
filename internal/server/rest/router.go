// Package rest serves the authentication API over HTTP/JSON using chi.
package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AuthService is the business logic behind the routes; *services.AuthService satisfies it.
type AuthService interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResponse, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	Profile(claims *auth.Claims) *services.ProfileResponse
	AdminDashboard(claims *auth.Claims) (*services.DashboardResponse, error)
}

// RequestObserver records handled requests; *metrics.Registry satisfies it.
type RequestObserver interface {
	ObserveRequest(transport, operation, code string, elapsed time.Duration)
}

type handlers struct {
	svc    AuthService
	logger logging.Logger
}

// NewRouter builds the route tree. metricsHandler may be nil, in which case
// /metrics is not mounted.
func NewRouter(svc AuthService, obs RequestObserver, metricsHandler http.Handler, logger logging.Logger) http.Handler {
	h := &handlers{svc: svc, logger: logger.With("module", "rest")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if obs != nil {
		r.Use(observe(obs))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(svc))
			r.Get("/user/profile", h.profile)
			r.With(RequireRole(models.RoleAdmin)).Get("/admin/dashboard", h.adminDashboard)
		})
	})

	return r
}

func observe(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			obs.ObserveRequest("http", route, strconv.Itoa(status), time.Since(start))
		})
	}
}
