package handler

// errorResponse is the envelope of 4xx/5xx responses raised before any backend call.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// --- Request types ---

// selectRoleRequest carries no token: tokens enter the session only through
// the login endpoints.
type selectRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=anonymous patient loggedPatient doctor admin"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"required,numeric,len=10"`
	Address  string `json:"address"  validate:"required"`
}

type doctorRequest struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"           validate:"required"`
	Specialty      string   `json:"specialty"      validate:"required"`
	Email          string   `json:"email"          validate:"required,email"`
	Password       string   `json:"password"`
	Phone          string   `json:"phone"          validate:"required,numeric,len=10"`
	AvailableTimes []string `json:"availableTimes" validate:"required,min=1"`
}

type bookingRequest struct {
	DoctorID        int64  `json:"doctorId"        validate:"required,gt=0"`
	AppointmentTime string `json:"appointmentTime" validate:"required,datetime=2006-01-02T15:04:05"`
}

type appointmentUpdateRequest struct {
	ID              int64  `json:"id"              validate:"required,gt=0"`
	DoctorID        int64  `json:"doctorId"        validate:"required,gt=0"`
	PatientID       int64  `json:"patientId"`
	AppointmentTime string `json:"appointmentTime" validate:"required,datetime=2006-01-02T15:04:05"`
	Status          int    `json:"status"          validate:"oneof=0 1"`
}

// --- Response types ---

type navigationResponse struct {
	Target string `json:"target"`
}

// resultResponse documents the normalized envelope for swag.
type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}
