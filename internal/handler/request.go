package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/lifeline-dev/lifeline/internal/domain"
	"github.com/lifeline-dev/lifeline/internal/middleware"
	"github.com/lifeline-dev/lifeline/internal/service"
)

type requestForm struct {
	PatientName string `validate:"required"`
	HospitalId  int64  `validate:"required,gt=0"`
	BloodGroup  string `validate:"required"`
	Location    string `validate:"required"`
}

// CreateRequest registers a pending blood request on behalf of the
// authenticated user. The requester phone comes from the session, never
// from the form.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r)
	if session == nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	hospID, err := strconv.ParseInt(r.FormValue("hospitalID"), 10, 64)
	if err != nil {
		redirectWithFlash(w, r, "/UserDashboard", "Invalid Hospital ID. Please enter a valid Hospital ID.")
		return
	}
	form := requestForm{
		PatientName: r.FormValue("patientName"),
		HospitalId:  hospID,
		BloodGroup:  r.FormValue("bloodGroup"),
		Location:    r.FormValue("location"),
	}
	if err := validateStruct(&form); err != nil {
		redirectError(w, r, "/UserDashboard", err)
		return
	}

	_, err = h.requests.Create(session.Phone, service.RequestInput{
		PatientName: form.PatientName,
		HospitalId:  form.HospitalId,
		BloodGroup:  form.BloodGroup,
		Location:    form.Location,
	})
	if err != nil {
		redirectError(w, r, "/UserDashboard", err)
		return
	}

	http.Redirect(w, r, "/UserDashboard", http.StatusSeeOther)
}

// Approve and Reject transition a request on behalf of the authenticated
// hospital; ownership is enforced by the workflow engine.

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusApproved)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusRejected)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status domain.RequestStatus) {
	session := middleware.GetSessionFromContext(r)
	if session == nil {
		http.Redirect(w, r, "/hospital", http.StatusSeeOther)
		return
	}

	requestId, err := uuid.Parse(r.FormValue("requestId"))
	if err != nil {
		redirectWithFlash(w, r, "/hospitals/dashboard", "Invalid request ID.")
		return
	}

	if err := h.requests.SetStatus(requestId, session.HospitalId, status); err != nil {
		redirectError(w, r, "/hospitals/dashboard", err)
		return
	}

	http.Redirect(w, r, "/hospitals/dashboard", http.StatusSeeOther)
}
