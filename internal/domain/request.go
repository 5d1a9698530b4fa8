package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the tri-state approval flag on a blood request.
// The numeric values are part of the stored representation.
type RequestStatus int

const (
	StatusPending  RequestStatus = 0
	StatusApproved RequestStatus = 1
	StatusRejected RequestStatus = -1
)

func (s RequestStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is defined from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is a patient's blood need submitted by a user to a specific
// hospital for validation. Phone always carries the authenticated
// requester's number, never a client-supplied one.
type Request struct {
	Id           uuid.UUID
	PatientName  string
	Phone        Phone
	HospitalName string
	HospitalId   HospitalId
	BloodGroup   BloodGroup
	Location     string
	Status       RequestStatus
	CreatedAt    time.Time
}

// RequestQueues partitions a hospital's requests by status.
type RequestQueues struct {
	Pending  []Request
	Approved []Request
	Rejected []Request
}
