package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// GetDoctors lists every doctor.
func (c *Client) GetDoctors(ctx context.Context) domain.Result[[]domain.Doctor] {
	return execute(ctx, c, call{
		op:       "get_doctors",
		route:    "/doctor",
		method:   http.MethodGet,
		segments: []string{"doctor"},
		label:    "Fetching doctors",
		verb:     "fetching doctors",
		okMsg:    "Doctors loaded.",
	}, decodeList[domain.Doctor]("doctors"))
}

// FilterDoctors searches doctors by name, time of day and specialty.
// Blank criteria are sent as the "null" placeholder.
func (c *Client) FilterDoctors(ctx context.Context, f domain.DoctorFilter) domain.Result[[]domain.Doctor] {
	return execute(ctx, c, call{
		op:       "filter_doctors",
		route:    "/doctor/filter/{name}/{time}/{specialty}",
		method:   http.MethodGet,
		segments: []string{"doctor", "filter", placeholder(f.Name), placeholder(f.Time), placeholder(f.Specialty)},
		label:    "Filtering doctors",
		verb:     "filtering doctors",
		okMsg:    "Doctors loaded.",
	}, decodeList[domain.Doctor]("doctors"))
}

func (c *Client) SaveDoctor(ctx context.Context, doctor *domain.Doctor, token string) domain.Result[*domain.Doctor] {
	const op = "save_doctor"
	if doctor == nil {
		return reject[*domain.Doctor](c, op, "Doctor payload is required.")
	}
	if token == "" {
		return reject[*domain.Doctor](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/doctor/save/{token}",
		method:   http.MethodPost,
		segments: []string{"doctor", "save"},
		token:    token,
		body:     doctor,
		label:    "Save",
		verb:     "saving the doctor",
		okMsg:    "Doctor added successfully.",
	}, echoDoctor(doctor))
}

func (c *Client) UpdateDoctor(ctx context.Context, doctor *domain.Doctor, token string) domain.Result[*domain.Doctor] {
	const op = "update_doctor"
	if doctor == nil {
		return reject[*domain.Doctor](c, op, "Doctor payload is required.")
	}
	if doctor.ID == 0 {
		return reject[*domain.Doctor](c, op, "Doctor ID is required.")
	}
	if token == "" {
		return reject[*domain.Doctor](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/doctor/update/{token}",
		method:   http.MethodPut,
		segments: []string{"doctor", "update"},
		token:    token,
		body:     doctor,
		label:    "Update",
		verb:     "updating the doctor",
		okMsg:    "Doctor updated successfully.",
	}, echoDoctor(doctor))
}

// DeleteDoctor removes a doctor. A blank id or token fails without a request.
func (c *Client) DeleteDoctor(ctx context.Context, id, token string) domain.Result[any] {
	const op = "delete_doctor"
	id = strings.TrimSpace(id)
	if id == "" {
		return reject[any](c, op, "Doctor ID is required.")
	}
	if token == "" {
		return reject[any](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/doctor/delete/{id}/{token}",
		method:   http.MethodDelete,
		segments: []string{"doctor", "delete", url.PathEscape(id)},
		token:    token,
		label:    "Delete",
		verb:     "deleting the doctor",
		okMsg:    "Doctor deleted successfully.",
	}, noData)
}

// DoctorAvailability lists the free slots of a doctor on date, as seen by user.
func (c *Client) DoctorAvailability(ctx context.Context, user domain.Role, doctorID, date, token string) domain.Result[[]string] {
	const op = "doctor_availability"
	doctorID, date = strings.TrimSpace(doctorID), strings.TrimSpace(date)
	switch {
	case doctorID == "":
		return reject[[]string](c, op, "Doctor ID is required.")
	case date == "":
		return reject[[]string](c, op, "Date is required.")
	case token == "":
		return reject[[]string](c, op, msgMissingToken)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/doctor/availability/{user}/{id}/{date}/{token}",
		method:   http.MethodGet,
		segments: []string{"doctor", "availability", url.PathEscape(backendRole(user)), url.PathEscape(doctorID), url.PathEscape(date)},
		token:    token,
		label:    "Fetching availability",
		verb:     "fetching availability",
		okMsg:    "Availability loaded.",
	}, decodeList[string]("availability"))
}

// echoDoctor returns the backend's doctor record when one is sent back,
// otherwise the submitted one.
func echoDoctor(sent *domain.Doctor) func(response) (*domain.Doctor, error) {
	return func(r response) (*domain.Doctor, error) {
		if _, ok := r.fields["doctor"]; !ok {
			return sent, nil
		}
		return decodeRecord[domain.Doctor]("doctor")(r)
	}
}
