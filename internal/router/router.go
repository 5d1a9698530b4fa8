package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lifeline-dev/lifeline/internal/middleware"
	"github.com/lifeline-dev/lifeline/internal/middleware/metrics"
	"github.com/lifeline-dev/lifeline/internal/setup"
)

// New wires every surface route. Login POSTs sit behind the per-IP rate
// limiter; dashboards and workflow actions sit behind the matching session
// guard.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	// Pages render inline styles only; no scripts beyond the dashboard widget.
	csp := "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"
	r.Use(middleware.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, csp))

	// Double-submit CSRF: every page response carries the token cookie, every
	// form POST must echo it back.
	r.Use(middleware.GenerateCSRFToken(deps.Config.Public.SecureCookies))
	r.Use(middleware.ValidateCSRFToken())

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method("GET", "/metrics", promhttp.Handler())

	// User auth boundary
	r.Get("/", h.SignInPage)
	r.Get("/signin", h.SignInPage)
	r.Get("/signup", h.SignUpPage)
	r.Post("/signup", h.Signup)
	r.Get("/signout", h.Signout)
	r.With(deps.LoginLimiter.Limit).Post("/login", h.Login)

	// Donation offers are open to unauthenticated callers.
	r.Post("/donate", h.Donate)

	// User-only operations
	r.Group(func(r chi.Router) {
		r.Use(authMw.RequireUser())
		r.Get("/UserDashboard", h.UserDashboard)
		r.Post("/request", h.CreateRequest)
	})

	// Hospital auth boundary
	r.Get("/hospital", h.HospitalSignInPage)
	r.Get("/hospitals/signup", h.HospitalSignUpPage)
	r.Post("/hospitals/signup", h.HospitalSignup)
	r.Get("/hospitals/signout", h.HospitalSignout)
	r.With(deps.LoginLimiter.Limit).Post("/hospitals/signin", h.HospitalLogin)

	// Hospital-only operations
	r.Group(func(r chi.Router) {
		r.Use(authMw.RequireHospital())
		r.Get("/hospitals/dashboard", h.HospitalDashboard)
		r.Post("/approve", h.Approve)
		r.Post("/reject", h.Reject)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	return r
}
