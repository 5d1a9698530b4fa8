package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/domain"
	internal_errors "github.com/lifeline-dev/lifeline/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.IdentityStorage interface)
// =========================================================================

// SaveUser creates a new user account. The UNIQUE constraint on phone_number
// is the source of truth for identity uniqueness; a violation surfaces as
// DuplicateIdentity.
func (s *Storage) SaveUser(user domain.User) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// UserByPhone is a public, read-only method to fetch a user by phone number.
func (s *Storage) UserByPhone(phone domain.Phone) (domain.User, error) {
	return s.userByPhone(s.db, phone)
}

// SaveHospital creates a new hospital account, same shape as SaveUser.
func (s *Storage) SaveHospital(hospital domain.Hospital) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveHospital(tx, hospital)
		return err
	})
	return id, err
}

// HospitalByID fetches a hospital by its public numeric identifier.
func (s *Storage) HospitalByID(hospitalId domain.HospitalId) (domain.Hospital, error) {
	return s.hospitalByID(s.db, hospitalId)
}

// Hospitals returns the id+name list the request form offers.
func (s *Storage) Hospitals() ([]domain.HospitalSummary, error) {
	return s.hospitals(s.db)
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (int64, error) {
	var id int64
	err := q.QueryRow("INSERT INTO users(first_name, last_name, phone_number, password_hash) VALUES($1, $2, $3, $4) RETURNING id",
		user.FirstName, user.LastName, user.Phone, user.PassHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Phone number already registered", StatusCode: http.StatusConflict}
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) userByPhone(q Querier, phone domain.Phone) (domain.User, error) {
	var user domain.User
	err := q.QueryRow("SELECT id, first_name, last_name, phone_number, password_hash FROM users WHERE phone_number = $1", phone).
		Scan(&user.Id, &user.FirstName, &user.LastName, &user.Phone, &user.PassHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) saveHospital(q Querier, hospital domain.Hospital) (int64, error) {
	var id int64
	err := q.QueryRow("INSERT INTO hospitals(name, hospital_id, password_hash) VALUES($1, $2, $3) RETURNING id",
		hospital.Name, hospital.HospitalId, hospital.PassHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Hospital ID already registered", StatusCode: http.StatusConflict}
		}
		return -1, fmt.Errorf("failed to insert hospital: %w", err)
	}
	return id, nil
}

func (s *Storage) hospitalByID(q Querier, hospitalId domain.HospitalId) (domain.Hospital, error) {
	var hospital domain.Hospital
	err := q.QueryRow("SELECT id, name, hospital_id, password_hash FROM hospitals WHERE hospital_id = $1", hospitalId).
		Scan(&hospital.Id, &hospital.Name, &hospital.HospitalId, &hospital.PassHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hospital{}, &internal_errors.ErrorWithStatusCode{Message: "Hospital not found", StatusCode: http.StatusNotFound}
		}
		return domain.Hospital{}, fmt.Errorf("failed to query hospital: %w", err)
	}
	return hospital, nil
}

func (s *Storage) hospitals(q Querier) ([]domain.HospitalSummary, error) {
	rows, err := q.Query("SELECT hospital_id, name FROM hospitals ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer rows.Close()

	var result []domain.HospitalSummary
	for rows.Next() {
		var h domain.HospitalSummary
		if err := rows.Scan(&h.HospitalId, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan hospital row: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hospital rows: %w", err)
	}
	return result, nil
}
