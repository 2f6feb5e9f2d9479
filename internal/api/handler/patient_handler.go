package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// PatientHandler serves the logged-in patient's dashboard data and bookings.
type PatientHandler struct {
	portal ports.PortalService
}

func NewPatientHandler(portal ports.PortalService) *PatientHandler {
	return &PatientHandler{portal: portal}
}

// Profile handles GET /v1/patient/profile.
//
// @Summary      Current patient's profile
// @Tags         patient
// @Produce      json
// @Success      200  {object}  resultResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/patient/profile [get]
func (h *PatientHandler) Profile(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	res, err := h.portal.Profile(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	res.Data = patientWithoutSecrets(res.Data)
	return c.JSON(http.StatusOK, res)
}

// Appointments handles GET /v1/patient/appointments.
//
// @Summary      Current patient's appointments
// @Tags         patient
// @Produce      json
// @Success      200  {object}  resultResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/patient/appointments [get]
func (h *PatientHandler) Appointments(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	res, err := h.portal.PatientAppointments(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	res.Data = appointmentsWithoutSecrets(res.Data)
	return c.JSON(http.StatusOK, res)
}

// FilterAppointments handles GET /v1/patient/appointments/filter.
//
// @Summary      Filter the current patient's appointments
// @Tags         patient
// @Produce      json
// @Param        condition  query     string  false  "pending or consulted"
// @Param        name       query     string  false  "Doctor name"
// @Success      200        {object}  resultResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/patient/appointments/filter [get]
func (h *PatientHandler) FilterAppointments(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	res, err := h.portal.FilterAppointments(c.Request().Context(), sid, domain.AppointmentFilter{
		Condition: c.QueryParam("condition"),
		Name:      c.QueryParam("name"),
	})
	if err != nil {
		return err
	}
	res.Data = appointmentsWithoutSecrets(res.Data)
	return c.JSON(http.StatusOK, res)
}

// Book handles POST /v1/appointments.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Doctor and slot"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/appointments [post]
func (h *PatientHandler) Book(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.portal.BookAppointment(c.Request().Context(), sid, ports.BookingInput{
		DoctorID:        req.DoctorID,
		AppointmentTime: req.AppointmentTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateAppointment handles PUT /v1/appointments.
//
// @Summary      Reschedule an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      appointmentUpdateRequest  true  "Appointment"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/appointments [put]
func (h *PatientHandler) UpdateAppointment(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req appointmentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.portal.UpdateAppointment(c.Request().Context(), sid, toAppointment(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
