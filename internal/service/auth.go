package service

import (
	"net/http"

	"github.com/lifeline-dev/lifeline/internal/domain"
	"github.com/lifeline-dev/lifeline/internal/errors"
	"github.com/lifeline-dev/lifeline/internal/jwt"
	"github.com/lifeline-dev/lifeline/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	RegisterUser(firstName, lastName string, phone domain.Phone, password domain.Password) error
	LoginUser(phone domain.Phone, password domain.Password) (string, error)
	RegisterHospital(name string, hospitalId domain.HospitalId, password domain.Password) error
	LoginHospital(hospitalId domain.HospitalId, password domain.Password) (string, error)
	User(phone domain.Phone) (domain.User, error)
	Hospitals() ([]domain.HospitalSummary, error)
}

type IdentityStorage interface {
	SaveUser(user domain.User) (int64, error)
	UserByPhone(phone domain.Phone) (domain.User, error)
	SaveHospital(hospital domain.Hospital) (int64, error)
	HospitalByID(hospitalId domain.HospitalId) (domain.Hospital, error)
	Hospitals() ([]domain.HospitalSummary, error)
}

// Credential failure messages match the form-validation messages exactly so
// callers cannot tell a malformed identifier from an unknown one.
const (
	userCredentialsMsg     = "Invalid phone number or password. Please try again."
	hospitalCredentialsMsg = "Invalid hospital ID or password. Please try again."
)

type Auth struct {
	storage IdentityStorage
	jwt     jwt.Service
}

func NewAuth(storage IdentityStorage, jwt jwt.Service) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// RegisterUser creates a user account. Phone must be exactly 10 digits.
// Uniqueness is enforced by the storage constraint, not a prior read, so
// concurrent signups with the same phone cannot both succeed.
func (a *Auth) RegisterUser(firstName, lastName string, phone domain.Phone, password domain.Password) error {
	if !validPhone(phone) {
		return errors.Validation("Phone number must be exactly 10 digits")
	}
	if firstName == "" || lastName == "" || password == "" {
		return errors.Validation("Required fields missing")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	_, err = a.storage.SaveUser(domain.User{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		PassHash:  string(passHash),
	})
	return err
}

// LoginUser checks credentials and returns a signed user session marker.
// Unknown phone and wrong password are indistinguishable to the caller.
func (a *Auth) LoginUser(phone domain.Phone, password domain.Password) (string, error) {
	user, err := a.storage.UserByPhone(phone)
	if err != nil {
		// to not leak existing users
		if e, ok := err.(*errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusNotFound {
			return "", errors.InvalidCredentials(userCredentialsMsg)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		logger.Log.Warn("password verification failed", "phone", phone)
		return "", errors.InvalidCredentials(userCredentialsMsg)
	}

	token, err := a.jwt.NewToken(domain.Session{Kind: domain.SessionUser, Phone: user.Phone})
	if err != nil {
		logger.Log.Error("failed to create session token", "phone", phone, "error", err)
		return "", err
	}
	return token, nil
}

// RegisterHospital creates a hospital account keyed by its numeric ID.
func (a *Auth) RegisterHospital(name string, hospitalId domain.HospitalId, password domain.Password) error {
	if name == "" || password == "" {
		return errors.Validation("Required fields missing")
	}
	if hospitalId <= 0 {
		return errors.Validation("Hospital ID must be a positive number")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	_, err = a.storage.SaveHospital(domain.Hospital{
		Name:       name,
		HospitalId: hospitalId,
		PassHash:   string(passHash),
	})
	return err
}

// LoginHospital mirrors LoginUser for the hospital identity class.
func (a *Auth) LoginHospital(hospitalId domain.HospitalId, password domain.Password) (string, error) {
	hospital, err := a.storage.HospitalByID(hospitalId)
	if err != nil {
		if e, ok := err.(*errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusNotFound {
			return "", errors.InvalidCredentials(hospitalCredentialsMsg)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hospital.PassHash), []byte(password)); err != nil {
		logger.Log.Warn("password verification failed", "hospital_id", hospitalId)
		return "", errors.InvalidCredentials(hospitalCredentialsMsg)
	}

	token, err := a.jwt.NewToken(domain.Session{Kind: domain.SessionHospital, HospitalId: hospital.HospitalId})
	if err != nil {
		logger.Log.Error("failed to create session token", "hospital_id", hospitalId, "error", err)
		return "", err
	}
	return token, nil
}

// User fetches the account behind an authenticated session marker.
func (a *Auth) User(phone domain.Phone) (domain.User, error) {
	return a.storage.UserByPhone(phone)
}

// Hospitals exposes the hospital picker list for the request form.
func (a *Auth) Hospitals() ([]domain.HospitalSummary, error) {
	return a.storage.Hospitals()
}

func validPhone(phone domain.Phone) bool {
	if len(phone) != 10 {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
