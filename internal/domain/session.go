package domain

// SessionKind distinguishes the two independent identity classes.
// A user session and a hospital session are not interchangeable.
type SessionKind string

const (
	SessionUser     SessionKind = "user"
	SessionHospital SessionKind = "hospital"
)

// Session is the typed per-caller authentication marker carried in the
// request context. Exactly one of Phone/HospitalId is meaningful,
// depending on Kind.
type Session struct {
	Kind       SessionKind
	Phone      Phone      // set when Kind == SessionUser
	HospitalId HospitalId // set when Kind == SessionHospital
}
