package domain

// Action is a UI affordance enabled for a layout variant.
type Action string

const (
	ActionAdminLogin          Action = "adminLogin"
	ActionDoctorLogin         Action = "doctorLogin"
	ActionPatientLogin        Action = "patientLogin"
	ActionPatientSignup       Action = "patientSignup"
	ActionBookNowPromptsLogin Action = "bookNowPromptsLogin"
	ActionBookNowOpensOverlay Action = "bookNowOpensOverlay"
	ActionViewAppointments    Action = "viewAppointments"
	ActionHome                Action = "home"
	ActionAddDoctor           Action = "addDoctor"
	ActionDeleteDoctor        Action = "deleteDoctor"
	ActionLogout              Action = "logout"
	ActionLogoutPatient       Action = "logoutPatient"
)

// Canonical navigation targets per role.
const (
	PathLanding                = "/"
	PathAdminDashboard         = "/admin/adminDashboard"
	PathDoctorDashboard        = "/doctor/doctorDashboard"
	PathPatientDashboard       = "/pages/patientDashboard.html"
	PathLoggedPatientDashboard = "/pages/loggedPatientDashboard.html"
	PathPatientAppointments    = "/pages/patientAppointments.html"
)

// NoticeSessionExpired is shown when a privileged role is found without a token.
const NoticeSessionExpired = "Session expired or invalid login. Please log in again."

// Layout describes what a page may render for the current session.
type Layout struct {
	Path          string   `json:"path"`
	Variant       Role     `json:"variant"`
	Landing       bool     `json:"landing"`
	Authenticated bool     `json:"authenticated"`
	Actions       []Action `json:"actions"`
	// Redirect is set when the page must not be rendered and the client has to navigate away.
	Redirect string `json:"redirect,omitempty"`
	Notice   string `json:"notice,omitempty"`
}

// Has reports whether the action is enabled.
func (l Layout) Has(a Action) bool {
	for _, x := range l.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// LandingFor returns the canonical page for a role.
func LandingFor(r Role) string {
	switch r {
	case RoleAdmin:
		return PathAdminDashboard
	case RoleDoctor:
		return PathDoctorDashboard
	case RoleLoggedPatient:
		return PathLoggedPatientDashboard
	case RolePatient:
		return PathPatientDashboard
	default:
		return PathLanding
	}
}
