package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/infrastructure/db/memory"
)

// stubAPI implements ports.HospitalAPI; unset functions fail the call.
type stubAPI struct {
	adminLoginFn   func(ctx context.Context, creds domain.AdminCredentials) domain.Result[*domain.Credential]
	patientLoginFn func(ctx context.Context, creds domain.Login) domain.Result[*domain.Credential]
	deleteDoctorFn func(ctx context.Context, id, token string) domain.Result[any]
	patientDataFn  func(ctx context.Context, token string) domain.Result[*domain.Patient]
	patientApptsFn func(ctx context.Context, id string, user domain.Role, token string) domain.Result[[]domain.Appointment]
	bookFn         func(ctx context.Context, appt *domain.Appointment, token string) domain.Result[any]
	getDoctorsFn   func(ctx context.Context) domain.Result[[]domain.Doctor]
	filterFn       func(ctx context.Context, f domain.DoctorFilter) domain.Result[[]domain.Doctor]
}

func notStubbed[T any]() domain.Result[T] { return domain.Fail[T]("not stubbed") }

func (s *stubAPI) GetDoctors(ctx context.Context) domain.Result[[]domain.Doctor] {
	if s.getDoctorsFn == nil {
		return notStubbed[[]domain.Doctor]()
	}
	return s.getDoctorsFn(ctx)
}

func (s *stubAPI) FilterDoctors(ctx context.Context, f domain.DoctorFilter) domain.Result[[]domain.Doctor] {
	if s.filterFn == nil {
		return notStubbed[[]domain.Doctor]()
	}
	return s.filterFn(ctx, f)
}

func (s *stubAPI) SaveDoctor(context.Context, *domain.Doctor, string) domain.Result[*domain.Doctor] {
	return notStubbed[*domain.Doctor]()
}

func (s *stubAPI) UpdateDoctor(context.Context, *domain.Doctor, string) domain.Result[*domain.Doctor] {
	return notStubbed[*domain.Doctor]()
}

func (s *stubAPI) DeleteDoctor(ctx context.Context, id, token string) domain.Result[any] {
	if s.deleteDoctorFn == nil {
		return notStubbed[any]()
	}
	return s.deleteDoctorFn(ctx, id, token)
}

func (s *stubAPI) DoctorAvailability(context.Context, domain.Role, string, string, string) domain.Result[[]string] {
	return notStubbed[[]string]()
}

func (s *stubAPI) AdminLogin(ctx context.Context, creds domain.AdminCredentials) domain.Result[*domain.Credential] {
	if s.adminLoginFn == nil {
		return notStubbed[*domain.Credential]()
	}
	return s.adminLoginFn(ctx, creds)
}

func (s *stubAPI) DoctorLogin(context.Context, domain.Login) domain.Result[*domain.Credential] {
	return notStubbed[*domain.Credential]()
}

func (s *stubAPI) PatientLogin(ctx context.Context, creds domain.Login) domain.Result[*domain.Credential] {
	if s.patientLoginFn == nil {
		return notStubbed[*domain.Credential]()
	}
	return s.patientLoginFn(ctx, creds)
}

func (s *stubAPI) PatientSignup(context.Context, *domain.Patient) domain.Result[any] {
	return domain.OK[any](nil, "Signup successful.")
}

func (s *stubAPI) GetPatientData(ctx context.Context, token string) domain.Result[*domain.Patient] {
	if s.patientDataFn == nil {
		return notStubbed[*domain.Patient]()
	}
	return s.patientDataFn(ctx, token)
}

func (s *stubAPI) GetPatientAppointments(ctx context.Context, id string, user domain.Role, token string) domain.Result[[]domain.Appointment] {
	if s.patientApptsFn == nil {
		return notStubbed[[]domain.Appointment]()
	}
	return s.patientApptsFn(ctx, id, user, token)
}

func (s *stubAPI) FilterAppointments(context.Context, domain.AppointmentFilter, string) domain.Result[[]domain.Appointment] {
	return notStubbed[[]domain.Appointment]()
}

func (s *stubAPI) DoctorAppointments(context.Context, string, string, string) domain.Result[[]domain.Appointment] {
	return notStubbed[[]domain.Appointment]()
}

func (s *stubAPI) BookAppointment(ctx context.Context, appt *domain.Appointment, token string) domain.Result[any] {
	if s.bookFn == nil {
		return notStubbed[any]()
	}
	return s.bookFn(ctx, appt, token)
}

func (s *stubAPI) UpdateAppointment(context.Context, *domain.Appointment, string) domain.Result[any] {
	return notStubbed[any]()
}

func newTestStore() *SessionStore {
	return NewSessionStore(memory.NewSessionRepository(0), 0, zerolog.Nop())
}

func signedToken(exp time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})
	s, _ := tok.SignedString([]byte("test-secret"))
	return s
}
