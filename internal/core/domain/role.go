package domain

// Role is the identity class that decides which portal affordances are shown.
type Role string

const (
	RoleAnonymous     Role = "anonymous"
	RolePatient       Role = "patient"
	RoleLoggedPatient Role = "loggedPatient"
	RoleDoctor        Role = "doctor"
	RoleAdmin         Role = "admin"
)

// Storage keys, kept identical to the browser-local keys of the legacy portal.
const (
	KeyToken = "token"
	KeyRole  = "userRole"
)

// ParseRole maps a stored value to a Role. Unknown and empty values are anonymous.
func ParseRole(s string) Role {
	switch r := Role(s); r {
	case RolePatient, RoleLoggedPatient, RoleDoctor, RoleAdmin:
		return r
	default:
		return RoleAnonymous
	}
}

// Known reports whether s names one of the five roles exactly.
func Known(s string) bool {
	return s == string(RoleAnonymous) || ParseRole(s) != RoleAnonymous
}

// Privileged reports whether the role must carry a token.
func (r Role) Privileged() bool {
	return r == RoleLoggedPatient || r == RoleDoctor || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

// Session is the per-tab state: who is using the portal and with which credential.
type Session struct {
	Role  Role   `json:"role"`
	Token string `json:"-"`
}

// Anonymous is the reset state.
func Anonymous() Session {
	return Session{Role: RoleAnonymous}
}

// Valid reports whether the session invariant holds: privileged roles carry a token.
func (s Session) Valid() bool {
	return !s.Role.Privileged() || s.Token != ""
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Generation identifies one version of a session; every mutation produces a new one.
type Generation uint64
