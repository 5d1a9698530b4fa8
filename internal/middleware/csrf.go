package middleware

import (
	"context"
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/csrf"
	"github.com/lifeline-dev/lifeline/internal/logger"
)

// Cookie and form field share one name; the double-submit pair must match on
// every state-changing request.
const (
	CSRFCookie    = "csrf_token"
	CSRFFormField = "csrf_token"
)

const csrfKey key = 1

// GenerateCSRFToken issues the per-browser token cookie and exposes the token
// to page handlers through the request context so forms can embed it.
func GenerateCSRFToken(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CSRFCookie)
			var token string

			if err != nil || cookie.Value == "" {
				token, err = csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   86400,
				})
			} else {
				token = cookie.Value
			}

			next.ServeHTTP(w, r.WithContext(ContextWithCSRFToken(r.Context(), token)))
		})
	}
}

// ValidateCSRFToken rejects state-changing requests whose hidden form token
// does not match the token cookie. Safe methods pass through.
func ValidateCSRFToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut &&
				r.Method != http.MethodPatch && r.Method != http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(CSRFCookie)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}

			// Every form in the app is url-encoded; there are no uploads.
			if r.Form == nil {
				if err := r.ParseForm(); err != nil {
					logger.Log.Error("failed to parse form", "error", err)
					http.Error(w, "Invalid form data", http.StatusBadRequest)
					return
				}
			}

			if !csrf.ValidateToken(cookie.Value, r.FormValue(CSRFFormField)) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ContextWithCSRFToken attaches an issued token to the context.
func ContextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfKey, token)
}

// GetCSRFTokenFromContext retrieves the CSRF token issued for this request.
func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfKey).(string)
	return token
}
