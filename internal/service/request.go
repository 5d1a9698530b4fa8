package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lifeline-dev/lifeline/internal/domain"
	"github.com/lifeline-dev/lifeline/internal/errors"
	"github.com/lifeline-dev/lifeline/internal/logger"
	"github.com/microcosm-cc/bluemonday"
)

type RequestService interface {
	Create(requesterPhone domain.Phone, input RequestInput) (domain.Request, error)
	ForRequester(phone domain.Phone) ([]domain.Request, error)
	MatchingDonors(phone domain.Phone) ([]domain.Donor, error)
	HospitalQueues(hospitalId domain.HospitalId) (domain.RequestQueues, error)
	SetStatus(requestId uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error
}

type RequestStorage interface {
	SaveRequest(request domain.Request) error
	Request(id uuid.UUID) (domain.Request, error)
	RequestsByRequester(phone domain.Phone) ([]domain.Request, error)
	RequestsByHospitalAndStatus(hospitalId domain.HospitalId, status domain.RequestStatus) ([]domain.Request, error)
	ApprovedBloodGroups(phone domain.Phone) ([]domain.BloodGroup, error)
	UpdateRequestStatus(id uuid.UUID, status domain.RequestStatus) error
}

// HospitalLookup is the slice of the identity store the workflow engine needs
// to verify a request targets an existing hospital.
type HospitalLookup interface {
	HospitalByID(hospitalId domain.HospitalId) (domain.Hospital, error)
}

// RequestInput is the validated input struct for creating a blood request.
// The requester phone is NOT part of it: it always comes from the session.
type RequestInput struct {
	PatientName string
	HospitalId  domain.HospitalId
	BloodGroup  domain.BloodGroup
	Location    string
}

type Request struct {
	storage   RequestStorage
	hospitals HospitalLookup
	donors    DonorStorage
	sanitize  *bluemonday.Policy
}

func NewRequest(storage RequestStorage, hospitals HospitalLookup, donors DonorStorage) *Request {
	return &Request{
		storage:   storage,
		hospitals: hospitals,
		donors:    donors,
		sanitize:  bluemonday.StrictPolicy(),
	}
}

// Create registers a pending blood request. The hospital reference is checked
// before insert; the hospital name stored on the request is taken from the
// identity store, not from the client.
func (s *Request) Create(requesterPhone domain.Phone, input RequestInput) (domain.Request, error) {
	patientName := strings.TrimSpace(s.sanitize.Sanitize(input.PatientName))
	location := strings.TrimSpace(s.sanitize.Sanitize(input.Location))

	if patientName == "" || input.BloodGroup == "" || location == "" {
		return domain.Request{}, errors.Validation("Required fields missing")
	}

	hospital, err := s.hospitals.HospitalByID(input.HospitalId)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Request{}, errors.NotFound("Invalid Hospital ID. Please enter a valid Hospital ID")
		}
		return domain.Request{}, err
	}

	request := domain.Request{
		Id:           uuid.New(),
		PatientName:  patientName,
		Phone:        requesterPhone,
		HospitalName: hospital.Name,
		HospitalId:   hospital.HospitalId,
		BloodGroup:   input.BloodGroup,
		Location:     location,
		Status:       domain.StatusPending,
	}
	if err := s.storage.SaveRequest(request); err != nil {
		return domain.Request{}, err
	}
	return request, nil
}

// ForRequester lists every request the phone has submitted.
func (s *Request) ForRequester(phone domain.Phone) ([]domain.Request, error) {
	return s.storage.RequestsByRequester(phone)
}

// MatchingDonors is the one derived view in the system: donors whose blood
// group matches any approved request of phone, excluding the requester's own
// donor rows. No approved requests means an empty result without touching the
// donor registry.
func (s *Request) MatchingDonors(phone domain.Phone) ([]domain.Donor, error) {
	groups, err := s.storage.ApprovedBloodGroups(phone)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return s.donors.DonorsByBloodGroups(groups, phone)
}

// HospitalQueues returns the three status buckets scoped to hospitalId.
func (s *Request) HospitalQueues(hospitalId domain.HospitalId) (domain.RequestQueues, error) {
	var queues domain.RequestQueues
	var err error

	if queues.Pending, err = s.storage.RequestsByHospitalAndStatus(hospitalId, domain.StatusPending); err != nil {
		return domain.RequestQueues{}, err
	}
	if queues.Approved, err = s.storage.RequestsByHospitalAndStatus(hospitalId, domain.StatusApproved); err != nil {
		return domain.RequestQueues{}, err
	}
	if queues.Rejected, err = s.storage.RequestsByHospitalAndStatus(hospitalId, domain.StatusRejected); err != nil {
		return domain.RequestQueues{}, err
	}
	return queues, nil
}

// SetStatus transitions a request to approved or rejected on behalf of the
// acting hospital. Only the hospital the request references may transition it.
// Repeating the transition a request already took is a no-op; flipping a
// finalized request to a different status is a conflict.
func (s *Request) SetStatus(requestId uuid.UUID, hospitalId domain.HospitalId, status domain.RequestStatus) error {
	if !status.Terminal() {
		return errors.Validation("Requests can only be approved or rejected")
	}

	request, err := s.storage.Request(requestId)
	if err != nil {
		return err
	}

	if request.HospitalId != hospitalId {
		logger.Log.Warn("hospital attempted to act on another hospital's request",
			"request_id", requestId, "owner", request.HospitalId, "actor", hospitalId)
		return errors.Forbidden("Request belongs to a different hospital")
	}

	if request.Status.Terminal() {
		if request.Status == status {
			return nil
		}
		return errors.Conflict(fmt.Sprintf("Request already %s", request.Status))
	}

	return s.storage.UpdateRequestStatus(requestId, status)
}
