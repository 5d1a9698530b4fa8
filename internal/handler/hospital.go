package handler

import (
	"net/http"
	"strconv"

	"github.com/lifeline-dev/lifeline/internal/middleware"
)

type hospitalLoginForm struct {
	HospitalId int64  `validate:"required,gt=0"`
	Password   string `validate:"required"`
}

type hospitalSignupForm struct {
	Name       string `validate:"required"`
	HospitalId int64  `validate:"required,gt=0"`
	Password   string `validate:"required"`
}

func (h *Handler) HospitalSignInPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "hospital_signin.html", signinPageData{
		Error:     popFlash(w, r, flashCookieError),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	})
}

func (h *Handler) HospitalSignUpPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "hospital_signup.html", signinPageData{
		Error:     popFlash(w, r, flashCookieError),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	})
}

func (h *Handler) HospitalLogin(w http.ResponseWriter, r *http.Request) {
	hospID, err := strconv.ParseInt(r.FormValue("hospID"), 10, 64)
	if err != nil {
		redirectWithFlash(w, r, "/hospital", "Invalid hospital ID or password. Please try again.")
		return
	}
	form := hospitalLoginForm{HospitalId: hospID, Password: r.FormValue("password")}
	if err := validateStruct(&form); err != nil {
		redirectWithFlash(w, r, "/hospital", "Invalid hospital ID or password. Please try again.")
		return
	}

	token, err := h.auth.LoginHospital(form.HospitalId, form.Password)
	if err != nil {
		redirectError(w, r, "/hospital", err)
		return
	}

	setSessionCookie(w, middleware.HospitalCookie, token, int(h.cfg.JwtTTL().Seconds()), h.cfg.Public.SecureCookies)
	http.Redirect(w, r, "/hospitals/dashboard", http.StatusSeeOther)
}

func (h *Handler) HospitalSignup(w http.ResponseWriter, r *http.Request) {
	hospID, err := strconv.ParseInt(r.FormValue("hospID"), 10, 64)
	if err != nil {
		redirectWithFlash(w, r, "/hospitals/signup", "Hospital ID must be a number.")
		return
	}
	form := hospitalSignupForm{
		Name:       r.FormValue("hospName"),
		HospitalId: hospID,
		Password:   r.FormValue("password"),
	}
	if err := validateStruct(&form); err != nil {
		redirectWithFlash(w, r, "/hospitals/signup", "Required fields missing.")
		return
	}

	if err := h.auth.RegisterHospital(form.Name, form.HospitalId, form.Password); err != nil {
		redirectError(w, r, "/hospitals/signup", err)
		return
	}

	http.Redirect(w, r, "/hospital", http.StatusSeeOther)
}

func (h *Handler) HospitalSignout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, middleware.HospitalCookie, h.cfg.Public.SecureCookies)
	http.Redirect(w, r, "/hospital", http.StatusSeeOther)
}
