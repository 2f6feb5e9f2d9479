package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hospitalcms/portal/internal/api/middleware"
	"github.com/hospitalcms/portal/internal/core/domain"
)

type stubAuthService struct {
	adminLoginFn   func(ctx context.Context, sid string, creds domain.AdminCredentials) (domain.Result[*domain.Navigation], error)
	patientLoginFn func(ctx context.Context, sid string, creds domain.Login) (domain.Result[*domain.Navigation], error)
	signupFn       func(ctx context.Context, patient *domain.Patient) domain.Result[any]
}

func (s *stubAuthService) AdminLogin(ctx context.Context, sid string, creds domain.AdminCredentials) (domain.Result[*domain.Navigation], error) {
	return s.adminLoginFn(ctx, sid, creds)
}

func (s *stubAuthService) DoctorLogin(ctx context.Context, sid string, creds domain.Login) (domain.Result[*domain.Navigation], error) {
	return domain.Fail[*domain.Navigation]("not stubbed"), nil
}

func (s *stubAuthService) PatientLogin(ctx context.Context, sid string, creds domain.Login) (domain.Result[*domain.Navigation], error) {
	return s.patientLoginFn(ctx, sid, creds)
}

func (s *stubAuthService) PatientSignup(ctx context.Context, patient *domain.Patient) domain.Result[any] {
	return s.signupFn(ctx, patient)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeySessionID, "sid-1")
	return c, rec
}

func TestAuthHandler_AdminLogin_Success(t *testing.T) {
	stub := &stubAuthService{
		adminLoginFn: func(_ context.Context, sid string, creds domain.AdminCredentials) (domain.Result[*domain.Navigation], error) {
			if sid != "sid-1" || creds.Username != "admin" || creds.Password != "pw" {
				t.Fatalf("unexpected args: %s %+v", sid, creds)
			}
			return domain.OK(&domain.Navigation{Target: domain.PathAdminDashboard}, "Login successful."), nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/admin", `{"username":"admin","password":"pw"}`)

	if err := NewAuthHandler(stub).AdminLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    domain.Navigation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Data.Target != domain.PathAdminDashboard {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_PatientLogin_FailureIsRenderable(t *testing.T) {
	stub := &stubAuthService{
		patientLoginFn: func(context.Context, string, domain.Login) (domain.Result[*domain.Navigation], error) {
			return domain.Fail[*domain.Navigation]("Invalid credentials"), nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/patient", `{"email":"p@x.io","password":"bad"}`)

	if err := NewAuthHandler(stub).PatientLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["success"] != false || resp["message"] != "Invalid credentials" || resp["data"] != nil {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, *domain.Patient) domain.Result[any] {
			t.Fatalf("service must not be called")
			return domain.Result[any]{}
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/v1/auth/patient/signup", `{"name":"Pat","email":"nope"}`)

	err := NewAuthHandler(stub).Signup(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if !strings.Contains(he.Message.(string), "email must be a valid email") {
		t.Fatalf("unexpected message %v", he.Message)
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, p *domain.Patient) domain.Result[any] {
			if p.Name != "Pat" || p.Phone != "5551234567" {
				t.Fatalf("unexpected patient %+v", p)
			}
			return domain.OK[any](nil, "Signup successful.")
		},
	}
	body := `{"name":" Pat ","email":"p@x.io","password":"secret1","phone":"5551234567","address":"Main St 1"}`
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/patient/signup", body)

	if err := NewAuthHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Signup successful.") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_RequiresSession(t *testing.T) {
	c, _ := newJSONContext(http.MethodPost, "/v1/auth/admin", `{}`)
	c.Set(middleware.ContextKeySessionID, "")

	err := NewAuthHandler(&stubAuthService{}).AdminLogin(c)

	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
