package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// AuthService implements the admin, doctor and patient login flows and patient signup.
type AuthService struct {
	api    ports.HospitalAPI
	router ports.RoleRouter
	log    zerolog.Logger
}

// NewAuthService wires the flows to the backend and the role router.
func NewAuthService(api ports.HospitalAPI, router ports.RoleRouter, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, router: router, log: log}
}

// AdminLogin authenticates an administrator and switches the session to admin.
func (s *AuthService) AdminLogin(ctx context.Context, sessionID string, creds domain.AdminCredentials) (domain.Result[*domain.Navigation], error) {
	return s.complete(ctx, sessionID, domain.RoleAdmin, s.api.AdminLogin(ctx, creds))
}

// DoctorLogin authenticates a doctor and switches the session to doctor.
func (s *AuthService) DoctorLogin(ctx context.Context, sessionID string, creds domain.Login) (domain.Result[*domain.Navigation], error) {
	return s.complete(ctx, sessionID, domain.RoleDoctor, s.api.DoctorLogin(ctx, creds))
}

// PatientLogin authenticates a patient and switches the session to loggedPatient.
func (s *AuthService) PatientLogin(ctx context.Context, sessionID string, creds domain.Login) (domain.Result[*domain.Navigation], error) {
	return s.complete(ctx, sessionID, domain.RoleLoggedPatient, s.api.PatientLogin(ctx, creds))
}

// PatientSignup registers a patient account. The session is not touched.
func (s *AuthService) PatientSignup(ctx context.Context, patient *domain.Patient) domain.Result[any] {
	return s.api.PatientSignup(ctx, patient)
}

// complete stores the token of a successful login under role. A failed login
// leaves the session as it was.
func (s *AuthService) complete(ctx context.Context, sessionID string, role domain.Role, res domain.Result[*domain.Credential]) (domain.Result[*domain.Navigation], error) {
	if !res.Success || res.Data == nil || res.Data.Token == "" {
		s.log.Info().Str("role", role.String()).Str("reason", res.Message).Msg("login rejected")
		msg := res.Message
		if res.Success {
			msg = "Login failed: missing token."
		}
		return domain.Fail[*domain.Navigation](msg), nil
	}

	target, err := s.router.SelectRole(ctx, sessionID, role, res.Data.Token)
	if err != nil {
		return domain.Result[*domain.Navigation]{}, fmt.Errorf("%s login: %w", role, err)
	}
	s.log.Info().Str("role", role.String()).Msg("login succeeded")
	return domain.OK(&domain.Navigation{Target: target}, res.Message), nil
}
