package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/hospitalcms/portal/docs"
	"github.com/hospitalcms/portal/internal/api/handler"
	"github.com/hospitalcms/portal/internal/api/middleware"
	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Sessions ports.SessionStore
	Router   ports.RoleRouter
	Auth     ports.AuthService
	Portal   ports.PortalService
	Health   map[string]handler.Pinger
	Session  middleware.SessionConfig
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics())

	// --- Ops (no session) ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1", middleware.Session(d.Session))

	// --- Session and layout ---
	sessions := handler.NewSessionHandler(d.Router, d.Sessions)
	v1.GET("/layout", sessions.Layout)
	v1.POST("/session/role", sessions.SelectRole)
	v1.POST("/session/logout", sessions.Logout)
	v1.GET("/session/home", sessions.Home)

	// --- Auth ---
	auth := handler.NewAuthHandler(d.Auth)
	v1.POST("/auth/admin", auth.AdminLogin)
	v1.POST("/auth/doctor", auth.DoctorLogin)
	v1.POST("/auth/patient", auth.PatientLogin)
	v1.POST("/auth/patient/signup", auth.Signup)

	// --- Doctors ---
	adminOnly := middleware.RBAC(d.Sessions, domain.RoleAdmin)
	patients := middleware.RBAC(d.Sessions, domain.RolePatient, domain.RoleLoggedPatient)
	loggedPatient := middleware.RBAC(d.Sessions, domain.RoleLoggedPatient)
	doctorOnly := middleware.RBAC(d.Sessions, domain.RoleDoctor)

	doctors := handler.NewDoctorHandler(d.Portal)
	v1.GET("/doctors", doctors.List)
	v1.POST("/doctors", doctors.Create, adminOnly)
	v1.PUT("/doctors", doctors.Update, adminOnly)
	v1.DELETE("/doctors/:id", doctors.Delete, adminOnly)
	v1.GET("/doctors/:id/availability", doctors.Availability, patients)
	v1.GET("/doctor/appointments", doctors.DoctorAppointments, doctorOnly)

	// --- Patient ---
	patient := handler.NewPatientHandler(d.Portal)
	v1.GET("/patient/profile", patient.Profile, loggedPatient)
	v1.GET("/patient/appointments", patient.Appointments, loggedPatient)
	v1.GET("/patient/appointments/filter", patient.FilterAppointments, loggedPatient)
	v1.POST("/appointments", patient.Book, loggedPatient)
	v1.PUT("/appointments", patient.UpdateAppointment, loggedPatient)

	return e
}
