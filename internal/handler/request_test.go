package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/lifeline-dev/lifeline/internal/domain"
	internal_errors "github.com/lifeline-dev/lifeline/internal/errors"
	"github.com/lifeline-dev/lifeline/internal/middleware"
	"github.com/lifeline-dev/lifeline/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSession(req *http.Request, session domain.Session) *http.Request {
	return req.WithContext(middleware.ContextWithSession(req.Context(), &session))
}

func TestCreateRequest(t *testing.T) {
	userSession := domain.Session{Kind: domain.SessionUser, Phone: "1234567890"}

	t.Run("submits on behalf of the session user", func(t *testing.T) {
		h, deps := newTestHandler()
		var gotPhone domain.Phone
		var gotInput service.RequestInput
		deps.requests.CreateFunc = func(requesterPhone domain.Phone, input service.RequestInput) (domain.Request, error) {
			gotPhone = requesterPhone
			gotInput = input
			return domain.Request{Id: uuid.New()}, nil
		}

		req := withSession(postForm("/request", url.Values{
			"patientName": {"John Doe"},
			"hospitalID":  {"42"},
			"bloodGroup":  {"O+"},
			"location":    {"Springfield"},
		}), userSession)
		rr := httptest.NewRecorder()

		h.CreateRequest(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/UserDashboard", rr.Header().Get("Location"))
		assert.Equal(t, domain.Phone("1234567890"), gotPhone)
		assert.Equal(t, service.RequestInput{
			PatientName: "John Doe",
			HospitalId:  42,
			BloodGroup:  "O+",
			Location:    "Springfield",
		}, gotInput)
	})

	t.Run("non-numeric hospital id is rejected before the workflow", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.requests.CreateFunc = func(requesterPhone domain.Phone, input service.RequestInput) (domain.Request, error) {
			t.Fatal("Create should not be called")
			return domain.Request{}, nil
		}

		req := withSession(postForm("/request", url.Values{
			"patientName": {"John Doe"},
			"hospitalID":  {"abc"},
			"bloodGroup":  {"O+"},
			"location":    {"Springfield"},
		}), userSession)
		rr := httptest.NewRecorder()

		h.CreateRequest(rr, req)

		assert.Equal(t, "/UserDashboard", rr.Header().Get("Location"))
		assert.Equal(t, "Invalid Hospital ID. Please enter a valid Hospital ID.", flashValue(t, rr.Result().Cookies()))
	})

	t.Run("unknown hospital flashes the lookup failure", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.requests.CreateFunc = func(requesterPhone domain.Phone, input service.RequestInput) (domain.Request, error) {
			return domain.Request{}, internal_errors.NotFound("Invalid Hospital ID. Please enter a valid Hospital ID.")
		}

		req := withSession(postForm("/request", url.Values{
			"patientName": {"John Doe"},
			"hospitalID":  {"999"},
			"bloodGroup":  {"O+"},
			"location":    {"Springfield"},
		}), userSession)
		rr := httptest.NewRecorder()

		h.CreateRequest(rr, req)

		assert.Equal(t, "/UserDashboard", rr.Header().Get("Location"))
		assert.Equal(t, "Invalid Hospital ID. Please enter a valid Hospital ID.", flashValue(t, rr.Result().Cookies()))
	})

	t.Run("missing session redirects to sign-in", func(t *testing.T) {
		h, _ := newTestHandler()

		rr := httptest.NewRecorder()
		h.CreateRequest(rr, postForm("/request", url.Values{}))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/signin", rr.Header().Get("Location"))
	})
}

func TestApproveReject(t *testing.T) {
	hospitalSession := domain.Session{Kind: domain.SessionHospital, HospitalId: 42}
	requestId := uuid.New()

	t.Run("approve passes the session hospital to the workflow", func(t *testing.T) {
		h, deps := newTestHandler()
		var gotId uuid.UUID
		var gotHospital domain.HospitalId
		var gotStatus domain.RequestStatus
		deps.requests.SetStatusFunc = func(id uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
			gotId, gotHospital, gotStatus = id, hospitalId, status
			return nil
		}

		req := withSession(postForm("/approve", url.Values{"requestId": {requestId.String()}}), hospitalSession)
		rr := httptest.NewRecorder()

		h.Approve(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/hospitals/dashboard", rr.Header().Get("Location"))
		assert.Equal(t, requestId, gotId)
		assert.Equal(t, domain.HospitalId(42), gotHospital)
		assert.Equal(t, domain.StatusApproved, gotStatus)
	})

	t.Run("reject transitions to the rejected state", func(t *testing.T) {
		h, deps := newTestHandler()
		var gotStatus domain.RequestStatus
		deps.requests.SetStatusFunc = func(id uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
			gotStatus = status
			return nil
		}

		req := withSession(postForm("/reject", url.Values{"requestId": {requestId.String()}}), hospitalSession)
		rr := httptest.NewRecorder()

		h.Reject(rr, req)

		assert.Equal(t, domain.StatusRejected, gotStatus)
	})

	t.Run("malformed request id flashes without a workflow call", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.requests.SetStatusFunc = func(id uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
			t.Fatal("SetStatus should not be called")
			return nil
		}

		req := withSession(postForm("/approve", url.Values{"requestId": {"not-a-uuid"}}), hospitalSession)
		rr := httptest.NewRecorder()

		h.Approve(rr, req)

		assert.Equal(t, "/hospitals/dashboard", rr.Header().Get("Location"))
		assert.Equal(t, "Invalid request ID.", flashValue(t, rr.Result().Cookies()))
	})

	t.Run("foreign hospital gets the ownership refusal", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.requests.SetStatusFunc = func(id uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
			return internal_errors.Forbidden("Request belongs to another hospital")
		}

		req := withSession(postForm("/approve", url.Values{"requestId": {requestId.String()}}), hospitalSession)
		rr := httptest.NewRecorder()

		h.Approve(rr, req)

		assert.Equal(t, "/hospitals/dashboard", rr.Header().Get("Location"))
		assert.Equal(t, "Request belongs to another hospital", flashValue(t, rr.Result().Cookies()))
	})

	t.Run("already resolved flashes the conflict", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.requests.SetStatusFunc = func(id uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
			return internal_errors.Conflict("Request already rejected")
		}

		req := withSession(postForm("/approve", url.Values{"requestId": {requestId.String()}}), hospitalSession)
		rr := httptest.NewRecorder()

		h.Approve(rr, req)

		assert.Equal(t, "Request already rejected", flashValue(t, rr.Result().Cookies()))
	})
}

func TestSetStatusStorageFailure(t *testing.T) {
	h, deps := newTestHandler()
	deps.requests.SetStatusFunc = func(id uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
		return assert.AnError
	}

	req := withSession(postForm("/approve", url.Values{"requestId": {uuid.New().String()}}), domain.Session{Kind: domain.SessionHospital, HospitalId: 42})
	rr := httptest.NewRecorder()

	h.Approve(rr, req)

	// storage failures show a generic message, never the raw error
	flash := flashValue(t, rr.Result().Cookies())
	require.NotEqual(t, assert.AnError.Error(), flash)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", flash)
}
