package domain

// User is an individual account identified by a 10-digit phone number.
// Created at signup, never updated or deleted.
type User struct {
	Id        int64
	FirstName string
	LastName  string
	Phone     Phone
	PassHash  string
}

// Hospital is the second identity class. HospitalId is the public numeric
// identifier hospitals log in with and requests reference; Id is the row key.
type Hospital struct {
	Id         int64
	Name       string
	HospitalId HospitalId
	PassHash   string
}

// HospitalSummary is what the request form needs to offer a hospital picker.
type HospitalSummary struct {
	HospitalId HospitalId
	Name       string
}
