package service

import (
	"strings"

	"github.com/lifeline-dev/lifeline/internal/domain"
	"github.com/lifeline-dev/lifeline/internal/errors"
	"github.com/microcosm-cc/bluemonday"
)

type DonorService interface {
	Register(input DonorInput) error
}

type DonorStorage interface {
	SaveDonor(donor domain.Donor) (int64, error)
	DonorsByBloodGroups(groups []domain.BloodGroup, excludePhone domain.Phone) ([]domain.Donor, error)
}

// DonorInput is the validated input struct for a donation offer.
type DonorInput struct {
	Name       string
	BloodGroup domain.BloodGroup
	Location   string
	Phone      domain.Phone
}

type Donor struct {
	storage  DonorStorage
	sanitize *bluemonday.Policy
}

func NewDonor(storage DonorStorage) *Donor {
	// Strict policy: donor fields are free text rendered back into pages later.
	return &Donor{storage: storage, sanitize: bluemonday.StrictPolicy()}
}

// Register stores a donation offer. Required-field presence is the only
// validation; duplicates by phone are allowed.
func (d *Donor) Register(input DonorInput) error {
	name := strings.TrimSpace(d.sanitize.Sanitize(input.Name))
	location := strings.TrimSpace(d.sanitize.Sanitize(input.Location))

	if name == "" || input.BloodGroup == "" || location == "" || input.Phone == "" {
		return errors.Validation("Required fields missing")
	}

	_, err := d.storage.SaveDonor(domain.Donor{
		Name:       name,
		BloodGroup: input.BloodGroup,
		Location:   location,
		Phone:      input.Phone,
	})
	return err
}
