package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// AuthHandler handles the login and signup endpoints.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// AdminLogin handles POST /v1/auth/admin.
//
// @Summary      Admin login
// @Description  On success the session becomes admin and data.target names the dashboard.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Credentials"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/admin [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.service.AdminLogin(c.Request().Context(), sid, domain.AdminCredentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// DoctorLogin handles POST /v1/auth/doctor.
//
// @Summary      Doctor login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/doctor [post]
func (h *AuthHandler) DoctorLogin(c echo.Context) error {
	return h.emailLogin(c, h.service.DoctorLogin)
}

// PatientLogin handles POST /v1/auth/patient.
//
// @Summary      Patient login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/patient [post]
func (h *AuthHandler) PatientLogin(c echo.Context) error {
	return h.emailLogin(c, h.service.PatientLogin)
}

type emailLoginFunc func(ctx context.Context, sessionID string, creds domain.Login) (domain.Result[*domain.Navigation], error)

func (h *AuthHandler) emailLogin(c echo.Context, login emailLoginFunc) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := login(c.Request().Context(), sid, domain.Login{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Signup handles POST /v1/auth/patient/signup.
//
// @Summary      Patient signup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Patient details"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/patient/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, h.service.PatientSignup(c.Request().Context(), toPatient(req)))
}
