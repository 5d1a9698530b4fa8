package handler

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	internal_errors "github.com/lifeline-dev/lifeline/internal/errors"
	"github.com/lifeline-dev/lifeline/internal/logger"
)

// Flash cookies carry one alert message across a redirect, mirroring the
// alert-then-redirect behavior of classic form apps.
const flashCookieError = "flashError"

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct maps validator failures onto the ValidationError shape
// before any workflow logic runs.
func validateStruct(form any) error {
	if err := validate.Struct(form); err != nil {
		logger.Log.Debug("form validation failed", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing or malformed", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func setFlash(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     name,
		Value:    url.QueryEscape(value),
		MaxAge:   60,
		HttpOnly: true,
	})
}

// popFlash reads and clears a flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
	})
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return value
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	setFlash(w, flashCookieError, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectError turns a taxonomy error into a flash plus redirect. Anything
// without a carried status code is a persistence failure: log the detail,
// show the caller a generic message.
func redirectError(w http.ResponseWriter, r *http.Request, target string, err error) {
	if _, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		redirectWithFlash(w, r, target, err.Error())
		return
	}
	logger.Log.Error("operation failed", "path", r.URL.Path, "error", err)
	redirectWithFlash(w, r, target, "An unexpected error occurred. Please try again later.")
}

func setSessionCookie(w http.ResponseWriter, name, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     name,
		Value:    token,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
