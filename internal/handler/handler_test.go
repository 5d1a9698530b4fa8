package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lifeline-dev/lifeline/internal/config"
	"github.com/lifeline-dev/lifeline/internal/domain"
	"github.com/lifeline-dev/lifeline/internal/service"
)

type MockAuthService struct {
	RegisterUserFunc     func(firstName, lastName string, phone domain.Phone, password domain.Password) error
	LoginUserFunc        func(phone domain.Phone, password domain.Password) (string, error)
	RegisterHospitalFunc func(name string, hospitalId domain.HospitalId, password domain.Password) error
	LoginHospitalFunc    func(hospitalId domain.HospitalId, password domain.Password) (string, error)
	UserFunc             func(phone domain.Phone) (domain.User, error)
	HospitalsFunc        func() ([]domain.HospitalSummary, error)
}

func (m *MockAuthService) RegisterUser(firstName, lastName string, phone domain.Phone, password domain.Password) error {
	return m.RegisterUserFunc(firstName, lastName, phone, password)
}

func (m *MockAuthService) LoginUser(phone domain.Phone, password domain.Password) (string, error) {
	return m.LoginUserFunc(phone, password)
}

func (m *MockAuthService) RegisterHospital(name string, hospitalId domain.HospitalId, password domain.Password) error {
	return m.RegisterHospitalFunc(name, hospitalId, password)
}

func (m *MockAuthService) LoginHospital(hospitalId domain.HospitalId, password domain.Password) (string, error) {
	return m.LoginHospitalFunc(hospitalId, password)
}

func (m *MockAuthService) User(phone domain.Phone) (domain.User, error) {
	return m.UserFunc(phone)
}

func (m *MockAuthService) Hospitals() ([]domain.HospitalSummary, error) {
	return m.HospitalsFunc()
}

type MockDonorService struct {
	RegisterFunc func(input service.DonorInput) error
}

func (m *MockDonorService) Register(input service.DonorInput) error {
	return m.RegisterFunc(input)
}

type MockRequestService struct {
	CreateFunc         func(requesterPhone domain.Phone, input service.RequestInput) (domain.Request, error)
	ForRequesterFunc   func(phone domain.Phone) ([]domain.Request, error)
	MatchingDonorsFunc func(phone domain.Phone) ([]domain.Donor, error)
	HospitalQueuesFunc func(hospitalId domain.HospitalId) (domain.RequestQueues, error)
	SetStatusFunc      func(requestId uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error
}

func (m *MockRequestService) Create(requesterPhone domain.Phone, input service.RequestInput) (domain.Request, error) {
	return m.CreateFunc(requesterPhone, input)
}

func (m *MockRequestService) ForRequester(phone domain.Phone) ([]domain.Request, error) {
	return m.ForRequesterFunc(phone)
}

func (m *MockRequestService) MatchingDonors(phone domain.Phone) ([]domain.Donor, error) {
	return m.MatchingDonorsFunc(phone)
}

func (m *MockRequestService) HospitalQueues(hospitalId domain.HospitalId) (domain.RequestQueues, error) {
	return m.HospitalQueuesFunc(hospitalId)
}

func (m *MockRequestService) SetStatus(requestId uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
	return m.SetStatusFunc(requestId, hospitalId, status)
}

// recordingRenderer captures the view name and data bag instead of
// executing templates.
type recordingRenderer struct {
	name string
	data any
}

func (r *recordingRenderer) Render(w http.ResponseWriter, name string, data any) {
	r.name = name
	r.data = data
	w.WriteHeader(http.StatusOK)
}

type mockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

func testConfig() *config.Config {
	return &config.Config{
		Public: config.Public{
			JwtTTL:        config.Duration(24 * time.Hour),
			SecureCookies: false,
		},
	}
}

type testDeps struct {
	auth     *MockAuthService
	donors   *MockDonorService
	requests *MockRequestService
	renderer *recordingRenderer
	pinger   *mockPinger
}

func newTestHandler() (*Handler, *testDeps) {
	deps := &testDeps{
		auth:     &MockAuthService{},
		donors:   &MockDonorService{},
		requests: &MockRequestService{},
		renderer: &recordingRenderer{},
		pinger:   &mockPinger{},
	}
	h := New(deps.auth, deps.donors, deps.requests, deps.renderer, deps.pinger, testConfig())
	return h, deps
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
