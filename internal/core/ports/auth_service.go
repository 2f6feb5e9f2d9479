package ports

import (
	"context"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// AuthService drives the login and signup flows and moves the session between roles.
type AuthService interface {
	AdminLogin(ctx context.Context, sessionID string, creds domain.AdminCredentials) (domain.Result[*domain.Navigation], error)
	DoctorLogin(ctx context.Context, sessionID string, creds domain.Login) (domain.Result[*domain.Navigation], error)
	PatientLogin(ctx context.Context, sessionID string, creds domain.Login) (domain.Result[*domain.Navigation], error)
	PatientSignup(ctx context.Context, patient *domain.Patient) domain.Result[any]
}
