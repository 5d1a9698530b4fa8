package domain

import "time"

// Donor is a self-registered potential blood supplier. No uniqueness is
// enforced: the same phone may register several offers.
type Donor struct {
	Id         int64
	Name       string
	BloodGroup BloodGroup
	Location   string
	Phone      Phone
	CreatedAt  time.Time
}
