package middleware

import (
	"context"
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/domain"
	"github.com/lifeline-dev/lifeline/internal/jwt"
)

// Key to store the session marker in the request context
type key int

const sessionKey key = 0

// Cookie names per identity class. The two sessions are independent: a user
// cookie never satisfies a hospital guard and vice versa.
const (
	UserCookie     = "userToken"
	HospitalCookie = "hospitalToken"
)

// Auth holds dependencies for the session guards.
type Auth struct {
	jwt jwt.Service
}

func NewAuth(jwtService jwt.Service) *Auth {
	return &Auth{jwt: jwtService}
}

// RequireUser guards user-only operations. Unauthenticated callers are
// redirected to the user sign-in boundary.
func (a *Auth) RequireUser() func(http.Handler) http.Handler {
	return a.require(UserCookie, domain.SessionUser, "/signin")
}

// RequireHospital guards hospital-only operations, redirecting to the
// hospital sign-in boundary.
func (a *Auth) RequireHospital() func(http.Handler) http.Handler {
	return a.require(HospitalCookie, domain.SessionHospital, "/hospital")
}

func (a *Auth) require(cookieName string, kind domain.SessionKind, signinPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				http.Redirect(w, r, signinPath, http.StatusSeeOther)
				return
			}

			session, err := a.jwt.DecodeToken(cookie.Value)
			if err != nil || session.Kind != kind {
				// Expired or foreign-kind token: clear it and send to sign-in.
				http.SetCookie(w, &http.Cookie{
					Path:     "/",
					Name:     cookieName,
					Value:    "",
					MaxAge:   -1,
					HttpOnly: true,
				})
				http.Redirect(w, r, signinPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), &session)))
		})
	}
}

// ContextWithSession attaches a decoded session to the context.
func ContextWithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext retrieves the session marker from the context.
func GetSessionFromContext(r *http.Request) *domain.Session {
	session, ok := r.Context().Value(sessionKey).(*domain.Session)
	if !ok {
		return nil
	}
	return session
}
