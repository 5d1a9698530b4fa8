package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/lifeline-dev/lifeline/internal/domain"
	internal_errors "github.com/lifeline-dev/lifeline/internal/errors"
)

// SaveRequest inserts a new blood request. The caller (workflow engine) has
// already verified the referenced hospital exists and forced the requester
// phone from the session.
func (s *Storage) SaveRequest(request domain.Request) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.saveRequest(tx, request)
	})
}

// Request fetches a single request by id.
func (s *Storage) Request(id uuid.UUID) (domain.Request, error) {
	return s.request(s.db, id)
}

// RequestsByRequester returns every request submitted by phone, newest first.
func (s *Storage) RequestsByRequester(phone domain.Phone) ([]domain.Request, error) {
	return s.selectRequests(s.db, "WHERE phone_number = $1", phone)
}

// RequestsByHospitalAndStatus returns one status bucket of a hospital's queue.
func (s *Storage) RequestsByHospitalAndStatus(hospitalId domain.HospitalId, status domain.RequestStatus) ([]domain.Request, error) {
	return s.selectRequests(s.db, "WHERE hospital_id = $1 AND validation_status = $2", hospitalId, int(status))
}

// ApprovedBloodGroups returns the distinct blood groups of phone's approved
// requests. Input to the donor-matching view.
func (s *Storage) ApprovedBloodGroups(phone domain.Phone) ([]domain.BloodGroup, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT blood_group FROM requests WHERE phone_number = $1 AND validation_status = $2",
		phone, int(domain.StatusApproved),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved blood groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.BloodGroup
	for rows.Next() {
		var g domain.BloodGroup
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan blood group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blood groups: %w", err)
	}
	return groups, nil
}

// UpdateRequestStatus sets the validation status of an existing request.
func (s *Storage) UpdateRequestStatus(id uuid.UUID, status domain.RequestStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateRequestStatus(tx, id, status)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveRequest(q Querier, request domain.Request) error {
	_, err := q.Exec(`
        INSERT INTO requests(id, patient_name, phone_number, hospital_name, hospital_id, blood_group, location, validation_status)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
		request.Id, request.PatientName, request.Phone, request.HospitalName,
		request.HospitalId, request.BloodGroup, request.Location, int(request.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

func (s *Storage) request(q Querier, id uuid.UUID) (domain.Request, error) {
	var r domain.Request
	var status int
	err := q.QueryRow(`
        SELECT id, patient_name, phone_number, hospital_name, hospital_id, blood_group, location, validation_status, created_at
        FROM requests WHERE id = $1`, id).
		Scan(&r.Id, &r.PatientName, &r.Phone, &r.HospitalName, &r.HospitalId, &r.BloodGroup, &r.Location, &status, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Request{}, &internal_errors.ErrorWithStatusCode{Message: "Request not found", StatusCode: http.StatusNotFound}
		}
		return domain.Request{}, fmt.Errorf("failed to query request: %w", err)
	}
	r.Status = domain.RequestStatus(status)
	return r, nil
}

func (s *Storage) selectRequests(q Querier, where string, args ...any) ([]domain.Request, error) {
	query := `
        SELECT id, patient_name, phone_number, hospital_name, hospital_id, blood_group, location, validation_status, created_at
        FROM requests ` + where + " ORDER BY created_at DESC"
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var r domain.Request
		var status int
		if err := rows.Scan(&r.Id, &r.PatientName, &r.Phone, &r.HospitalName, &r.HospitalId, &r.BloodGroup, &r.Location, &status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		r.Status = domain.RequestStatus(status)
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate request rows: %w", err)
	}
	return requests, nil
}

func (s *Storage) updateRequestStatus(q Querier, id uuid.UUID, status domain.RequestStatus) error {
	result, err := q.Exec("UPDATE requests SET validation_status = $1 WHERE id = $2", int(status), id)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for status update: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Request not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
