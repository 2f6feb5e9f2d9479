package domain

// Appointment statuses as stored by the backend.
const (
	AppointmentScheduled = 0
	AppointmentCompleted = 1
)

// Appointment links a patient to a doctor at a given local time.
// AppointmentTime is kept as the backend's zone-less ISO string (2006-01-02T15:04:05).
type Appointment struct {
	ID              int64    `json:"id,omitempty"`
	Doctor          *Doctor  `json:"doctor,omitempty"`
	Patient         *Patient `json:"patient,omitempty"`
	AppointmentTime string   `json:"appointmentTime"`
	Status          int      `json:"status"`
}

// AppointmentFilter narrows a patient's appointment list.
type AppointmentFilter struct {
	Condition string // e.g. "pending", "consulted"
	Name      string
}
