package ports

import (
	"context"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// BookingInput is what a logged-in patient submits from the booking overlay.
type BookingInput struct {
	DoctorID        int64
	AppointmentTime string
}

// PortalService runs session-aware backend calls for the dashboards.
// Responses that arrive after the session changed are replaced by a failure Result.
type PortalService interface {
	Doctors(ctx context.Context, f domain.DoctorFilter) domain.Result[[]domain.Doctor]
	SaveDoctor(ctx context.Context, sessionID string, doctor *domain.Doctor) (domain.Result[*domain.Doctor], error)
	UpdateDoctor(ctx context.Context, sessionID string, doctor *domain.Doctor) (domain.Result[*domain.Doctor], error)
	DeleteDoctor(ctx context.Context, sessionID, id string) (domain.Result[any], error)
	Availability(ctx context.Context, sessionID, doctorID, date string) (domain.Result[[]string], error)

	Profile(ctx context.Context, sessionID string) (domain.Result[*domain.Patient], error)
	PatientAppointments(ctx context.Context, sessionID string) (domain.Result[[]domain.Appointment], error)
	FilterAppointments(ctx context.Context, sessionID string, f domain.AppointmentFilter) (domain.Result[[]domain.Appointment], error)
	DoctorAppointments(ctx context.Context, sessionID, date, patientName string) (domain.Result[[]domain.Appointment], error)
	BookAppointment(ctx context.Context, sessionID string, in BookingInput) (domain.Result[any], error)
	UpdateAppointment(ctx context.Context, sessionID string, appt *domain.Appointment) (domain.Result[any], error)
}
