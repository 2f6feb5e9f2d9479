package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/hospitalcms/portal/internal/core/domain"
)

const (
	msgNeedUsername = "Please enter both username and password."
	msgNeedEmail    = "Please enter both email and password."
)

func (c *Client) AdminLogin(ctx context.Context, creds domain.AdminCredentials) domain.Result[*domain.Credential] {
	const op = "admin_login"
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return reject[*domain.Credential](c, op, msgNeedUsername)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/admin",
		method:   http.MethodPost,
		segments: []string{"admin"},
		body:     creds,
		label:    "Login",
		verb:     "logging in",
		okMsg:    "Login successful.",
	}, decodeCredential)
}

func (c *Client) DoctorLogin(ctx context.Context, creds domain.Login) domain.Result[*domain.Credential] {
	return c.emailLogin(ctx, "doctor_login", "/doctor/login", []string{"doctor", "login"}, creds)
}

// PatientLogin is normalized exactly like the other logins.
func (c *Client) PatientLogin(ctx context.Context, creds domain.Login) domain.Result[*domain.Credential] {
	return c.emailLogin(ctx, "patient_login", "/patient/login", []string{"patient", "login"}, creds)
}

func (c *Client) emailLogin(ctx context.Context, op, route string, segments []string, creds domain.Login) domain.Result[*domain.Credential] {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return reject[*domain.Credential](c, op, msgNeedEmail)
	}
	return execute(ctx, c, call{
		op:       op,
		route:    route,
		method:   http.MethodPost,
		segments: segments,
		body:     creds,
		label:    "Login",
		verb:     "logging in",
		okMsg:    "Login successful.",
	}, decodeCredential)
}

// PatientSignup registers a new patient account.
func (c *Client) PatientSignup(ctx context.Context, patient *domain.Patient) domain.Result[any] {
	const op = "patient_signup"
	if patient == nil {
		return reject[any](c, op, "Patient details are required.")
	}
	return execute(ctx, c, call{
		op:       op,
		route:    "/patient",
		method:   http.MethodPost,
		segments: []string{"patient"},
		body:     patient,
		label:    "Signup",
		verb:     "signing up",
		okMsg:    "Signup successful.",
	}, noData)
}
