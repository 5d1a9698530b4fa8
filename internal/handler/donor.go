package handler

import (
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/service"
)

type donorForm struct {
	Name       string `validate:"required"`
	BloodGroup string `validate:"required"`
	Location   string `validate:"required"`
	Phone      string `validate:"required,len=10,numeric"`
}

// Donate registers a donation offer. Deliberately open to unauthenticated
// callers; anyone may volunteer.
func (h *Handler) Donate(w http.ResponseWriter, r *http.Request) {
	form := donorForm{
		Name:       r.FormValue("donorName"),
		BloodGroup: r.FormValue("bloodGroup"),
		Location:   r.FormValue("location"),
		Phone:      r.FormValue("phoneNumber"),
	}
	if err := validateStruct(&form); err != nil {
		redirectError(w, r, "/UserDashboard", err)
		return
	}

	err := h.donors.Register(service.DonorInput{
		Name:       form.Name,
		BloodGroup: form.BloodGroup,
		Location:   form.Location,
		Phone:      form.Phone,
	})
	if err != nil {
		redirectError(w, r, "/UserDashboard", err)
		return
	}

	http.Redirect(w, r, "/UserDashboard", http.StatusSeeOther)
}
