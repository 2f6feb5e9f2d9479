package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hospitalcms/portal/internal/core/domain"
)

func newTestClient(t *testing.T, mode AuthMode, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, AuthMode: mode}, zerolog.Nop()), &hits
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestFilterDoctors_BlankSegmentsBecomeNull(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, `{"doctors":[]}`)
	})

	res := client.FilterDoctors(context.Background(), domain.DoctorFilter{Time: "AM"})

	if gotPath != "/doctor/filter/null/AM/null" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Data == nil || len(res.Data) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", res.Data)
	}
}

func TestFilterDoctors_EscapesSegments(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, `[]`)
	})

	client.FilterDoctors(context.Background(), domain.DoctorFilter{Name: " Dr Who ", Specialty: "   "})

	if gotPath != "/doctor/filter/Dr%20Who/null/null" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestGetDoctors_BareAndWrappedDecodeTheSame(t *testing.T) {
	bodies := map[string]string{
		"bare":    `[{"id":1,"name":"Ann","specialty":"cardiology"},{"id":2,"name":"Bo","specialization":"ent"}]`,
		"wrapped": `{"doctors":[{"id":1,"name":"Ann","specialty":"cardiology"},{"id":2,"name":"Bo","specialization":"ent"}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			})
			res := client.GetDoctors(context.Background())
			if !res.Success || len(res.Data) != 2 {
				t.Fatalf("unexpected result %+v", res)
			}
			if res.Data[1].Specialty != "ent" {
				t.Fatalf("expected specialization fallback, got %q", res.Data[1].Specialty)
			}
		})
	}
}

func TestGetDoctors_UnknownShapeIsEmpty(t *testing.T) {
	for _, body := range []string{`{"doctors":"nope"}`, `{"other":[1]}`, `not json`, `null`} {
		client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, body)
		})
		res := client.GetDoctors(context.Background())
		if !res.Success {
			t.Fatalf("body %q: expected success, got %+v", body, res)
		}
		if res.Data == nil || len(res.Data) != 0 {
			t.Fatalf("body %q: expected empty non-nil slice, got %#v", body, res.Data)
		}
	}
}

func TestDeleteDoctor_MissingIDSkipsNetwork(t *testing.T) {
	client, hits := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})

	res := client.DeleteDoctor(context.Background(), "", "tok")

	if res.Success || res.Message != "Doctor ID is required." {
		t.Fatalf("unexpected result %+v", res)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request, got %d", hits.Load())
	}
}

func TestDeleteDoctor_MissingTokenSkipsNetwork(t *testing.T) {
	client, hits := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {})

	res := client.DeleteDoctor(context.Background(), "7", "")

	if res.Success || res.Message != msgMissingToken || hits.Load() != 0 {
		t.Fatalf("unexpected result %+v (hits %d)", res, hits.Load())
	}
}

func TestDeleteDoctor_Non2xxUsesBodyMessage(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/doctor/delete/7/tok" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusNotFound, `{"message":"Doctor not found"}`)
	})

	res := client.DeleteDoctor(context.Background(), "7", "tok")

	if res.Success || res.Message != "Doctor not found" || res.Data != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDeleteDoctor_Non2xxFallsBackToErrorThenStatus(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":"Invalid token"}`)
	})
	if res := client.DeleteDoctor(context.Background(), "7", "tok"); res.Message != "Invalid token" {
		t.Fatalf("expected error field, got %+v", res)
	}

	client, _ = newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if res := client.DeleteDoctor(context.Background(), "7", "tok"); res.Message != "Delete failed (HTTP 500)" {
		t.Fatalf("expected status fallback, got %+v", res)
	}
}

func TestSuccessFalseOn2xxIsFailure(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":false,"message":"Slot taken"}`)
	})

	res := client.BookAppointment(context.Background(), &domain.Appointment{
		Doctor:          &domain.Doctor{ID: 3},
		AppointmentTime: "2025-01-02T10:00:00",
	}, "tok")

	if res.Success || res.Message != "Slot taken" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestTransportErrorIsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())

	res := client.DeleteDoctor(context.Background(), "7", "tok")

	if res.Success || res.Message != "An unexpected error occurred while deleting the doctor." {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAdminLogin_TokenVariants(t *testing.T) {
	bodies := []string{
		`{"token":"abc"}`,
		`{"accessToken":"abc"}`,
		`{"jwt":"abc"}`,
		`{"data":{"token":"abc"}}`,
	}
	for _, body := range bodies {
		client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
			var creds domain.AdminCredentials
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username != "admin" {
				t.Errorf("unexpected body: %v %+v", err, creds)
			}
			writeJSON(w, http.StatusOK, body)
		})
		res := client.AdminLogin(context.Background(), domain.AdminCredentials{Username: "admin", Password: "pw"})
		if !res.Success || res.Data == nil || res.Data.Token != "abc" {
			t.Fatalf("body %s: unexpected result %+v", body, res)
		}
	}
}

func TestLogin_SuccessWithoutTokenFails(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"ok"}`)
	})

	res := client.DoctorLogin(context.Background(), domain.Login{Email: "d@x.io", Password: "pw"})

	if res.Success || res.Message != "Login failed: missing token." {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestLogin_MissingCredentialsSkipNetwork(t *testing.T) {
	client, hits := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {})

	if res := client.AdminLogin(context.Background(), domain.AdminCredentials{Username: "admin"}); res.Message != msgNeedUsername {
		t.Fatalf("unexpected admin result %+v", res)
	}
	if res := client.PatientLogin(context.Background(), domain.Login{Password: "pw"}); res.Message != msgNeedEmail {
		t.Fatalf("unexpected patient result %+v", res)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no requests, got %d", hits.Load())
	}
}

func TestPatientLogin_IsNormalized(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/patient/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
	})

	res := client.PatientLogin(context.Background(), domain.Login{Email: "p@x.io", Password: "bad"})

	if res.Success || res.Message != "Invalid credentials" || res.Data != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestHeaderModeKeepsTokenOutOfPath(t *testing.T) {
	client, _ := newTestClient(t, AuthInHeader, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/patient" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header %q", got)
		}
		writeJSON(w, http.StatusOK, `{"patient":{"id":4,"name":"Pat"}}`)
	})

	res := client.GetPatientData(context.Background(), "tok")

	if !res.Success || res.Data == nil || res.Data.ID != 4 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestGetPatientData_MissingRecordIsUnexpected(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})

	res := client.GetPatientData(context.Background(), "tok")

	if res.Success || res.Message != string(errUnexpectedResponse) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestGetPatientAppointments_MapsLoggedPatientRole(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/patient/4/patient/tok" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"appointments":[{"id":9,"appointmentTime":"2025-01-02T10:00:00","status":0}]}`)
	})

	res := client.GetPatientAppointments(context.Background(), "4", domain.RoleLoggedPatient, "tok")

	if !res.Success || len(res.Data) != 1 || res.Data[0].ID != 9 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDoctorAvailability_Path(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doctor/availability/patient/3/2025-01-02/tok" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"availability":["09:00-10:00","10:00-11:00"]}`)
	})

	res := client.DoctorAvailability(context.Background(), domain.RolePatient, "3", "2025-01-02", "tok")

	if !res.Success || len(res.Data) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSaveDoctor_DefaultMessage(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasPrefix(r.URL.Path, "/doctor/save/") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusCreated, `{}`)
	})

	doc := &domain.Doctor{Name: "Ann"}
	res := client.SaveDoctor(context.Background(), doc, "tok")

	if !res.Success || res.Message != "Doctor added successfully." || res.Data != doc {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestFingerprintHidesToken(t *testing.T) {
	fp := fingerprint("secret-token")
	if fp == "" || strings.Contains(fp, "secret") || len(fp) != 12 {
		t.Fatalf("unexpected fingerprint %q", fp)
	}
	if fingerprint("") != "" {
		t.Fatalf("expected empty fingerprint for empty token")
	}
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, AuthInPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("expected reachable backend, got %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	down := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	if err := down.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for closed server")
	}
}
