package domain

type (
	Phone      = string
	Password   = string
	BloodGroup = string

	HospitalId = int64
)
