package handler

import (
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/middleware"
)

type userLoginForm struct {
	Phone    string `validate:"required,len=10,numeric"`
	Password string `validate:"required"`
}

type userSignupForm struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Phone     string `validate:"required,len=10,numeric"`
	Password  string `validate:"required"`
}

type signinPageData struct {
	Error     string
	CSRFToken string
}

func (h *Handler) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "user_signin.html", signinPageData{
		Error:     popFlash(w, r, flashCookieError),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	})
}

func (h *Handler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "user_signup.html", signinPageData{
		Error:     popFlash(w, r, flashCookieError),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form := userLoginForm{
		Phone:    r.FormValue("phoneNumber"),
		Password: r.FormValue("password"),
	}
	if err := validateStruct(&form); err != nil {
		// Same message as a credential mismatch: a malformed phone must not
		// reveal whether any account exists.
		redirectWithFlash(w, r, "/", "Invalid phone number or password. Please try again.")
		return
	}

	token, err := h.auth.LoginUser(form.Phone, form.Password)
	if err != nil {
		redirectError(w, r, "/", err)
		return
	}

	setSessionCookie(w, middleware.UserCookie, token, int(h.cfg.JwtTTL().Seconds()), h.cfg.Public.SecureCookies)
	http.Redirect(w, r, "/UserDashboard", http.StatusSeeOther)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	form := userSignupForm{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Phone:     r.FormValue("phoneNumber"),
		Password:  r.FormValue("password"),
	}
	if err := validateStruct(&form); err != nil {
		redirectWithFlash(w, r, "/signup", "Phone number must be exactly 10 digits.")
		return
	}

	if err := h.auth.RegisterUser(form.FirstName, form.LastName, form.Phone, form.Password); err != nil {
		redirectError(w, r, "/signup", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, middleware.UserCookie, h.cfg.Public.SecureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
