package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// DoctorHandler serves the doctor directory and the admin doctor management.
type DoctorHandler struct {
	portal ports.PortalService
}

func NewDoctorHandler(portal ports.PortalService) *DoctorHandler {
	return &DoctorHandler{portal: portal}
}

// List handles GET /v1/doctors.
//
// @Summary      List or filter doctors
// @Description  Without query parameters every doctor is returned. Blank criteria match everything.
// @Tags         doctors
// @Produce      json
// @Param        name       query     string  false  "Doctor name"
// @Param        time       query     string  false  "AM or PM"
// @Param        specialty  query     string  false  "Specialty"
// @Success      200        {object}  resultResponse
// @Router       /v1/doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	res := h.portal.Doctors(c.Request().Context(), domain.DoctorFilter{
		Name:      c.QueryParam("name"),
		Time:      c.QueryParam("time"),
		Specialty: c.QueryParam("specialty"),
	})
	res.Data = doctorsWithoutSecrets(res.Data)
	return c.JSON(http.StatusOK, res)
}

// Create handles POST /v1/doctors.
//
// @Summary      Add a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Param        body  body      doctorRequest  true  "Doctor"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	sid, req, err := h.bindDoctor(c)
	if err != nil {
		return err
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	res, err := h.portal.SaveDoctor(c.Request().Context(), sid, toDoctor(req))
	if err != nil {
		return err
	}
	res.Data = withoutSecrets(res.Data)
	return c.JSON(http.StatusOK, res)
}

// Update handles PUT /v1/doctors.
//
// @Summary      Update a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Param        body  body      doctorRequest  true  "Doctor, id required"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/doctors [put]
func (h *DoctorHandler) Update(c echo.Context) error {
	sid, req, err := h.bindDoctor(c)
	if err != nil {
		return err
	}
	res, err := h.portal.UpdateDoctor(c.Request().Context(), sid, toDoctor(req))
	if err != nil {
		return err
	}
	res.Data = withoutSecrets(res.Data)
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /v1/doctors/:id.
//
// @Summary      Delete a doctor
// @Tags         doctors
// @Produce      json
// @Param        id   path      string  true  "Doctor id"
// @Success      200  {object}  resultResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/doctors/{id} [delete]
func (h *DoctorHandler) Delete(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	res, err := h.portal.DeleteDoctor(c.Request().Context(), sid, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Availability handles GET /v1/doctors/:id/availability.
//
// @Summary      Free slots of a doctor on a date
// @Tags         doctors
// @Produce      json
// @Param        id    path      string  true  "Doctor id"
// @Param        date  query     string  true  "Date, YYYY-MM-DD"
// @Success      200   {object}  resultResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/doctors/{id}/availability [get]
func (h *DoctorHandler) Availability(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	res, err := h.portal.Availability(c.Request().Context(), sid, c.Param("id"), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// DoctorAppointments handles GET /v1/doctor/appointments.
//
// @Summary      Calling doctor's appointments on a date
// @Tags         appointments
// @Produce      json
// @Param        date         query     string  true   "Date, YYYY-MM-DD"
// @Param        patientName  query     string  false  "Patient name"
// @Success      200          {object}  resultResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /v1/doctor/appointments [get]
func (h *DoctorHandler) DoctorAppointments(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	res, err := h.portal.DoctorAppointments(c.Request().Context(), sid, c.QueryParam("date"), c.QueryParam("patientName"))
	if err != nil {
		return err
	}
	res.Data = appointmentsWithoutSecrets(res.Data)
	return c.JSON(http.StatusOK, res)
}

func (h *DoctorHandler) bindDoctor(c echo.Context) (string, doctorRequest, error) {
	var req doctorRequest
	sid, err := sessionID(c)
	if err != nil {
		return "", req, err
	}
	if err := c.Bind(&req); err != nil {
		return "", req, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return "", req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return sid, req, nil
}
