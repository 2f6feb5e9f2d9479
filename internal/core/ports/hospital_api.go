package ports

import (
	"context"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// HospitalAPI is the hospital REST backend as seen by the portal.
// Every method returns a normalized Result and never fails with a Go error.
type HospitalAPI interface {
	GetDoctors(ctx context.Context) domain.Result[[]domain.Doctor]
	FilterDoctors(ctx context.Context, f domain.DoctorFilter) domain.Result[[]domain.Doctor]
	SaveDoctor(ctx context.Context, doctor *domain.Doctor, token string) domain.Result[*domain.Doctor]
	UpdateDoctor(ctx context.Context, doctor *domain.Doctor, token string) domain.Result[*domain.Doctor]
	DeleteDoctor(ctx context.Context, id, token string) domain.Result[any]
	DoctorAvailability(ctx context.Context, user domain.Role, doctorID, date, token string) domain.Result[[]string]

	AdminLogin(ctx context.Context, creds domain.AdminCredentials) domain.Result[*domain.Credential]
	DoctorLogin(ctx context.Context, creds domain.Login) domain.Result[*domain.Credential]
	PatientLogin(ctx context.Context, creds domain.Login) domain.Result[*domain.Credential]
	PatientSignup(ctx context.Context, patient *domain.Patient) domain.Result[any]

	GetPatientData(ctx context.Context, token string) domain.Result[*domain.Patient]
	GetPatientAppointments(ctx context.Context, id string, user domain.Role, token string) domain.Result[[]domain.Appointment]
	FilterAppointments(ctx context.Context, f domain.AppointmentFilter, token string) domain.Result[[]domain.Appointment]
	DoctorAppointments(ctx context.Context, date, patientName, token string) domain.Result[[]domain.Appointment]
	BookAppointment(ctx context.Context, appt *domain.Appointment, token string) domain.Result[any]
	UpdateAppointment(ctx context.Context, appt *domain.Appointment, token string) domain.Result[any]
}
