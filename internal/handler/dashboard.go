package handler

import (
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/domain"
	"github.com/lifeline-dev/lifeline/internal/middleware"
)

type userDashboardData struct {
	Error           string
	CSRFToken       string
	User            domain.User
	Requests        []domain.Request
	Donors          []domain.Donor
	UserNumber      domain.Phone
	ShowFindSection bool
	Hospitals       []domain.HospitalSummary
}

type hospitalDashboardData struct {
	Error     string
	CSRFToken string
	Queues    domain.RequestQueues
}

// UserDashboard assembles the user view: own requests, matched donors and
// the hospital picker for new requests.
func (h *Handler) UserDashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r)
	if session == nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	user, err := h.auth.User(session.Phone)
	if err != nil {
		redirectError(w, r, "/signin", err)
		return
	}

	requests, err := h.requests.ForRequester(session.Phone)
	if err != nil {
		redirectError(w, r, "/signin", err)
		return
	}

	donors, err := h.requests.MatchingDonors(session.Phone)
	if err != nil {
		redirectError(w, r, "/signin", err)
		return
	}

	hospitals, err := h.auth.Hospitals()
	if err != nil {
		redirectError(w, r, "/signin", err)
		return
	}

	h.renderer.Render(w, "user_dashboard.html", userDashboardData{
		Error:           popFlash(w, r, flashCookieError),
		CSRFToken:       middleware.GetCSRFTokenFromContext(r),
		User:            user,
		Requests:        requests,
		Donors:          donors,
		UserNumber:      session.Phone,
		ShowFindSection: len(donors) > 0 || hasApproved(requests),
		Hospitals:       hospitals,
	})
}

// HospitalDashboard renders the three status buckets scoped to the
// authenticated hospital.
func (h *Handler) HospitalDashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r)
	if session == nil {
		http.Redirect(w, r, "/hospital", http.StatusSeeOther)
		return
	}

	queues, err := h.requests.HospitalQueues(session.HospitalId)
	if err != nil {
		redirectError(w, r, "/hospital", err)
		return
	}

	h.renderer.Render(w, "hospital_dashboard.html", hospitalDashboardData{
		Error:     popFlash(w, r, flashCookieError),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
		Queues:    queues,
	})
}

func hasApproved(requests []domain.Request) bool {
	for _, req := range requests {
		if req.Status == domain.StatusApproved {
			return true
		}
	}
	return false
}
