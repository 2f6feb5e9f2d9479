package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
	"github.com/hospitalcms/portal/internal/observability/metrics"
)

// MsgStaleResponse replaces a backend response that arrived after the session changed.
const MsgStaleResponse = "Session changed while the request was in flight."

// PortalService runs dashboard calls with the session's token and discards
// responses that belong to an older view generation.
type PortalService struct {
	api      ports.HospitalAPI
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewPortalService returns a PortalService.
func NewPortalService(api ports.HospitalAPI, sessions ports.SessionStore, log zerolog.Logger) *PortalService {
	return &PortalService{api: api, sessions: sessions, log: log}
}

// Doctors lists all doctors, or the filtered subset when any criterion is set.
func (s *PortalService) Doctors(ctx context.Context, f domain.DoctorFilter) domain.Result[[]domain.Doctor] {
	if f.Empty() {
		return s.api.GetDoctors(ctx)
	}
	return s.api.FilterDoctors(ctx, f)
}

func (s *PortalService) SaveDoctor(ctx context.Context, sessionID string, doctor *domain.Doctor) (domain.Result[*domain.Doctor], error) {
	return guarded(ctx, s, sessionID, "save_doctor", func(token string) domain.Result[*domain.Doctor] {
		return s.api.SaveDoctor(ctx, doctor, token)
	})
}

func (s *PortalService) UpdateDoctor(ctx context.Context, sessionID string, doctor *domain.Doctor) (domain.Result[*domain.Doctor], error) {
	return guarded(ctx, s, sessionID, "update_doctor", func(token string) domain.Result[*domain.Doctor] {
		return s.api.UpdateDoctor(ctx, doctor, token)
	})
}

func (s *PortalService) DeleteDoctor(ctx context.Context, sessionID, id string) (domain.Result[any], error) {
	return guarded(ctx, s, sessionID, "delete_doctor", func(token string) domain.Result[any] {
		return s.api.DeleteDoctor(ctx, id, token)
	})
}

// Availability returns a doctor's free slots on date, checked with the caller's role.
func (s *PortalService) Availability(ctx context.Context, sessionID, doctorID, date string) (domain.Result[[]string], error) {
	role, err := s.sessions.Role(ctx, sessionID)
	if err != nil {
		return domain.Result[[]string]{}, err
	}
	return guarded(ctx, s, sessionID, "doctor_availability", func(token string) domain.Result[[]string] {
		return s.api.DoctorAvailability(ctx, role, doctorID, date, token)
	})
}

// Profile returns the logged-in patient's record.
func (s *PortalService) Profile(ctx context.Context, sessionID string) (domain.Result[*domain.Patient], error) {
	return guarded(ctx, s, sessionID, "patient_profile", func(token string) domain.Result[*domain.Patient] {
		return s.api.GetPatientData(ctx, token)
	})
}

// PatientAppointments resolves the patient id from the profile, then lists its appointments.
func (s *PortalService) PatientAppointments(ctx context.Context, sessionID string) (domain.Result[[]domain.Appointment], error) {
	return guarded(ctx, s, sessionID, "patient_appointments", func(token string) domain.Result[[]domain.Appointment] {
		profile := s.api.GetPatientData(ctx, token)
		if !profile.Success || profile.Data == nil {
			return domain.Fail[[]domain.Appointment](profile.Message)
		}
		id := strconv.FormatInt(profile.Data.ID, 10)
		return s.api.GetPatientAppointments(ctx, id, domain.RolePatient, token)
	})
}

func (s *PortalService) FilterAppointments(ctx context.Context, sessionID string, f domain.AppointmentFilter) (domain.Result[[]domain.Appointment], error) {
	return guarded(ctx, s, sessionID, "filter_appointments", func(token string) domain.Result[[]domain.Appointment] {
		return s.api.FilterAppointments(ctx, f, token)
	})
}

// DoctorAppointments lists the calling doctor's appointments on date.
func (s *PortalService) DoctorAppointments(ctx context.Context, sessionID, date, patientName string) (domain.Result[[]domain.Appointment], error) {
	return guarded(ctx, s, sessionID, "doctor_appointments", func(token string) domain.Result[[]domain.Appointment] {
		return s.api.DoctorAppointments(ctx, date, patientName, token)
	})
}

// BookAppointment books a slot for the logged-in patient with the given doctor.
func (s *PortalService) BookAppointment(ctx context.Context, sessionID string, in ports.BookingInput) (domain.Result[any], error) {
	return guarded(ctx, s, sessionID, "book_appointment", func(token string) domain.Result[any] {
		profile := s.api.GetPatientData(ctx, token)
		if !profile.Success || profile.Data == nil {
			return domain.Fail[any](profile.Message)
		}
		appt := &domain.Appointment{
			Doctor:          &domain.Doctor{ID: in.DoctorID},
			Patient:         &domain.Patient{ID: profile.Data.ID},
			AppointmentTime: in.AppointmentTime,
			Status:          domain.AppointmentScheduled,
		}
		return s.api.BookAppointment(ctx, appt, token)
	})
}

func (s *PortalService) UpdateAppointment(ctx context.Context, sessionID string, appt *domain.Appointment) (domain.Result[any], error) {
	return guarded(ctx, s, sessionID, "update_appointment", func(token string) domain.Result[any] {
		return s.api.UpdateAppointment(ctx, appt, token)
	})
}

// guarded calls fn with the session's current token and drops its result if
// the session was mutated before fn returned. Only mutations made by this
// process are seen; a logout handled by another replica sharing the session
// store does not mark the call stale.
func guarded[T any](ctx context.Context, s *PortalService, sessionID, op string, fn func(token string) domain.Result[T]) (domain.Result[T], error) {
	gen := s.sessions.Snapshot(sessionID)
	token, err := s.sessions.Token(ctx, sessionID)
	if err != nil {
		return domain.Result[T]{}, err
	}

	res := fn(token)

	if s.sessions.Stale(sessionID, gen) {
		metrics.StaleResponsesTotal.WithLabelValues(op).Inc()
		s.log.Info().Str("operation", op).Msg("discarding response from an older session generation")
		return domain.Fail[T](MsgStaleResponse), nil
	}
	return res, nil
}
