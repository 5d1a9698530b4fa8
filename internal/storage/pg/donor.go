package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/lifeline-dev/lifeline/internal/domain"
)

// SaveDonor is a pure insert; the same phone may register repeatedly.
func (s *Storage) SaveDonor(donor domain.Donor) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveDonor(tx, donor)
		return err
	})
	return id, err
}

// DonorsByBloodGroups returns donors whose blood group is in groups,
// excluding any donor sharing excludePhone. A requester who is also a donor
// must never be matched to themselves.
func (s *Storage) DonorsByBloodGroups(groups []domain.BloodGroup, excludePhone domain.Phone) ([]domain.Donor, error) {
	return s.donorsByBloodGroups(s.db, groups, excludePhone)
}

func (s *Storage) saveDonor(q Querier, donor domain.Donor) (int64, error) {
	var id int64
	err := q.QueryRow("INSERT INTO donors(donor_name, blood_group, location, phone_number) VALUES($1, $2, $3, $4) RETURNING id",
		donor.Name, donor.BloodGroup, donor.Location, donor.Phone).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert donor: %w", err)
	}
	return id, nil
}

func (s *Storage) donorsByBloodGroups(q Querier, groups []domain.BloodGroup, excludePhone domain.Phone) ([]domain.Donor, error) {
	rows, err := q.Query(`
        SELECT id, donor_name, blood_group, location, phone_number, created_at
        FROM donors
        WHERE blood_group = ANY($1) AND phone_number <> $2
        ORDER BY created_at DESC`,
		pq.Array(groups), excludePhone,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query donors: %w", err)
	}
	defer rows.Close()

	var donors []domain.Donor
	for rows.Next() {
		var d domain.Donor
		if err := rows.Scan(&d.Id, &d.Name, &d.BloodGroup, &d.Location, &d.Phone, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donor row: %w", err)
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate donor rows: %w", err)
	}
	return donors, nil
}
