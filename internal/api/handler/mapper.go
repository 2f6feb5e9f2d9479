package handler

import (
	"strings"

	"github.com/hospitalcms/portal/internal/core/domain"
)

func toPatient(req signupRequest) *domain.Patient {
	return &domain.Patient{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Phone:    req.Phone,
		Address:  strings.TrimSpace(req.Address),
	}
}

func toDoctor(req doctorRequest) *domain.Doctor {
	return &domain.Doctor{
		ID:             req.ID,
		Name:           strings.TrimSpace(req.Name),
		Specialty:      strings.TrimSpace(req.Specialty),
		Email:          strings.TrimSpace(req.Email),
		Password:       req.Password,
		Phone:          req.Phone,
		AvailableTimes: req.AvailableTimes,
	}
}

func toAppointment(req appointmentUpdateRequest) *domain.Appointment {
	appt := &domain.Appointment{
		ID:              req.ID,
		Doctor:          &domain.Doctor{ID: req.DoctorID},
		AppointmentTime: req.AppointmentTime,
		Status:          req.Status,
	}
	if req.PatientID != 0 {
		appt.Patient = &domain.Patient{ID: req.PatientID}
	}
	return appt
}

// withoutSecrets strips passwords before a record leaves the portal.
func withoutSecrets(d *domain.Doctor) *domain.Doctor {
	if d == nil {
		return nil
	}
	out := *d
	out.Password = ""
	return &out
}

func patientWithoutSecrets(p *domain.Patient) *domain.Patient {
	if p == nil {
		return nil
	}
	out := *p
	out.Password = ""
	return &out
}

func doctorsWithoutSecrets(ds []domain.Doctor) []domain.Doctor {
	if ds == nil {
		return nil
	}
	out := make([]domain.Doctor, len(ds))
	for i, d := range ds {
		d.Password = ""
		out[i] = d
	}
	return out
}

func appointmentsWithoutSecrets(as []domain.Appointment) []domain.Appointment {
	if as == nil {
		return nil
	}
	out := make([]domain.Appointment, len(as))
	for i, a := range as {
		a.Doctor = withoutSecrets(a.Doctor)
		a.Patient = patientWithoutSecrets(a.Patient)
		out[i] = a
	}
	return out
}
