package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// DoctorAppointments lists the calling doctor's appointments on date,
// optionally narrowed by patient name.
func (c *Client) DoctorAppointments(ctx context.Context, date, patientName, token string) domain.Result[[]domain.Appointment] {
	const op = "doctor_appointments"
	date = strings.TrimSpace(date)
	if date == "" {
		return reject[[]domain.Appointment](c, op, "Date is required.")
	}
	if token == "" {
		return reject[[]domain.Appointment](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/appointments/{date}/{name}/{token}",
		method:   http.MethodGet,
		segments: []string{"appointments", url.PathEscape(date), placeholder(patientName)},
		token:    token,
		label:    "Fetching appointments",
		verb:     "fetching appointments",
		okMsg:    "Appointments loaded.",
	}, decodeList[domain.Appointment]("appointments"))
}

func (c *Client) BookAppointment(ctx context.Context, appt *domain.Appointment, token string) domain.Result[any] {
	const op = "book_appointment"
	if msg := checkAppointment(appt, false); msg != "" {
		return reject[any](c, op, msg)
	}
	if token == "" {
		return reject[any](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/appointments/{token}",
		method:   http.MethodPost,
		segments: []string{"appointments"},
		token:    token,
		body:     appt,
		label:    "Booking",
		verb:     "booking the appointment",
		okMsg:    "Appointment booked successfully.",
	}, noData)
}

func (c *Client) UpdateAppointment(ctx context.Context, appt *domain.Appointment, token string) domain.Result[any] {
	const op = "update_appointment"
	if msg := checkAppointment(appt, true); msg != "" {
		return reject[any](c, op, msg)
	}
	if token == "" {
		return reject[any](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/appointments/{token}",
		method:   http.MethodPut,
		segments: []string{"appointments"},
		token:    token,
		body:     appt,
		label:    "Update",
		verb:     "updating the appointment",
		okMsg:    "Appointment updated successfully.",
	}, noData)
}

func checkAppointment(appt *domain.Appointment, needID bool) string {
	switch {
	case appt == nil:
		return "Appointment details are required."
	case needID && appt.ID == 0:
		return "Appointment ID is required."
	case appt.Doctor == nil || appt.Doctor.ID == 0:
		return "Doctor ID is required."
	case strings.TrimSpace(appt.AppointmentTime) == "":
		return "Appointment time is required."
	}
	return ""
}
