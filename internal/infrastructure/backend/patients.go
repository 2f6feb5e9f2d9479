package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// GetPatientData returns the patient that owns token.
func (c *Client) GetPatientData(ctx context.Context, token string) domain.Result[*domain.Patient] {
	const op = "patient_data"
	if token == "" {
		return reject[*domain.Patient](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/patient/{token}",
		method:   http.MethodGet,
		segments: []string{"patient"},
		token:    token,
		label:    "Fetching patient details",
		verb:     "fetching patient details",
		okMsg:    "Patient details loaded.",
	}, decodeRecord[domain.Patient]("patient"))
}

func (c *Client) GetPatientAppointments(ctx context.Context, id string, user domain.Role, token string) domain.Result[[]domain.Appointment] {
	const op = "patient_appointments"
	id = strings.TrimSpace(id)
	if id == "" {
		return reject[[]domain.Appointment](c, op, "Patient ID is required.")
	}
	if token == "" {
		return reject[[]domain.Appointment](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/patient/{id}/{user}/{token}",
		method:   http.MethodGet,
		segments: []string{"patient", url.PathEscape(id), url.PathEscape(backendRole(user))},
		token:    token,
		label:    "Fetching appointments",
		verb:     "fetching appointments",
		okMsg:    "Appointments loaded.",
	}, decodeList[domain.Appointment]("appointments"))
}

// FilterAppointments narrows the patient's appointments by condition and
// doctor name. Blank criteria are sent as the "null" placeholder.
func (c *Client) FilterAppointments(ctx context.Context, f domain.AppointmentFilter, token string) domain.Result[[]domain.Appointment] {
	const op = "filter_appointments"
	if token == "" {
		return reject[[]domain.Appointment](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/patient/filter/{condition}/{name}/{token}",
		method:   http.MethodGet,
		segments: []string{"patient", "filter", placeholder(f.Condition), placeholder(f.Name)},
		token:    token,
		label:    "Filtering appointments",
		verb:     "filtering appointments",
		okMsg:    "Appointments loaded.",
	}, decodeList[domain.Appointment]("appointments"))
}
