package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
	"github.com/hospitalcms/portal/internal/observability/metrics"
)

// actionsByRole lists the affordances of each of the five layout variants.
var actionsByRole = map[domain.Role][]domain.Action{
	domain.RoleAnonymous: {
		domain.ActionPatientLogin,
		domain.ActionPatientSignup,
	},
	domain.RolePatient: {
		domain.ActionPatientLogin,
		domain.ActionPatientSignup,
		domain.ActionBookNowPromptsLogin,
	},
	domain.RoleLoggedPatient: {
		domain.ActionHome,
		domain.ActionBookNowOpensOverlay,
		domain.ActionViewAppointments,
		domain.ActionLogoutPatient,
	},
	domain.RoleDoctor: {
		domain.ActionHome,
		domain.ActionViewAppointments,
		domain.ActionLogout,
	},
	domain.RoleAdmin: {
		domain.ActionAddDoctor,
		domain.ActionDeleteDoctor,
		domain.ActionLogout,
	},
}

var landingActions = []domain.Action{domain.ActionAdminLogin, domain.ActionDoctorLogin}

// Router resolves page layouts from the session and gates privileged views.
type Router struct {
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewRouter returns a Router over the given session store.
func NewRouter(sessions ports.SessionStore, log zerolog.Logger) *Router {
	return &Router{sessions: sessions, log: log}
}

// IsLanding reports whether p is the root page. The root page is always anonymous.
func IsLanding(p string) bool {
	p = strings.TrimSpace(p)
	if p == "" {
		return true
	}
	clean := path.Clean("/" + p)
	return clean == "/" || clean == "/index.html"
}

// Resolve returns the layout for path. Visiting the landing page clears the
// session. A privileged role without a token is reset before any privileged
// layout is built and the caller is told to redirect.
func (r *Router) Resolve(ctx context.Context, sessionID, p string) (domain.Layout, error) {
	if IsLanding(p) {
		if err := r.sessions.Clear(ctx, sessionID); err != nil {
			return domain.Layout{}, fmt.Errorf("resolve landing: %w", err)
		}
		metrics.SessionResetsTotal.WithLabelValues("landing").Inc()
		metrics.LayoutsResolvedTotal.WithLabelValues(domain.RoleAnonymous.String()).Inc()
		return domain.Layout{
			Path:    domain.PathLanding,
			Variant: domain.RoleAnonymous,
			Landing: true,
			Actions: clone(landingActions),
		}, nil
	}

	sess, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Layout{}, fmt.Errorf("resolve: %w", err)
	}
	if !sess.Valid() {
		return r.expire(ctx, sessionID, p, sess.Role)
	}

	metrics.LayoutsResolvedTotal.WithLabelValues(sess.Role.String()).Inc()
	return layoutFor(p, sess.Role, sess.Authenticated()), nil
}

// expire handles a privileged role found without a token. A logged-in patient
// is downgraded to patient and sent to the patient dashboard, where the
// login/signup prompts show; sending it to "/" would clear the downgrade.
// Doctors and admins lose their role and go to the landing page.
func (r *Router) expire(ctx context.Context, sessionID, p string, role domain.Role) (domain.Layout, error) {
	next := domain.RoleAnonymous
	var err error
	if role == domain.RoleLoggedPatient {
		next = domain.RolePatient
		err = r.sessions.SetSession(ctx, sessionID, domain.RolePatient, "")
	} else {
		err = r.sessions.ClearRole(ctx, sessionID)
	}
	if err != nil {
		return domain.Layout{}, fmt.Errorf("reset expired session: %w", err)
	}

	metrics.SessionResetsTotal.WithLabelValues("missing_token").Inc()
	r.log.Warn().
		Str("role", role.String()).
		Str("downgraded_to", next.String()).
		Str("path", p).
		Msg("privileged role without token, session reset")

	layout := layoutFor(p, next, false)
	layout.Redirect = domain.LandingFor(next)
	layout.Notice = domain.NoticeSessionExpired
	return layout, nil
}

// SelectRole moves the session to next and returns its canonical page.
// A privileged role needs a token: passed in by a login flow, or already
// stored for that same role. A token stored for another role is never carried
// over. Without one the session is left unchanged and domain.ErrTokenRequired
// is returned.
func (r *Router) SelectRole(ctx context.Context, sessionID string, next domain.Role, token string) (string, error) {
	if next == domain.RoleAnonymous {
		if err := r.sessions.Clear(ctx, sessionID); err != nil {
			return "", fmt.Errorf("select role: %w", err)
		}
		return domain.PathLanding, nil
	}

	if token == "" {
		current, err := r.sessions.Get(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("select role: %w", err)
		}
		if current.Role == next {
			token = current.Token
		}
	}
	if next.Privileged() && token == "" {
		return "", fmt.Errorf("select role %s: %w", next, domain.ErrTokenRequired)
	}

	if err := r.sessions.SetSession(ctx, sessionID, next, token); err != nil {
		return "", fmt.Errorf("select role: %w", err)
	}
	r.log.Info().Str("role", next.String()).Msg("role selected")
	return domain.LandingFor(next), nil
}

// Logout ends any session and returns the landing page.
func (r *Router) Logout(ctx context.Context, sessionID string) (string, error) {
	if err := r.sessions.Clear(ctx, sessionID); err != nil {
		return "", fmt.Errorf("logout: %w", err)
	}
	return domain.PathLanding, nil
}

// LogoutPatient drops the patient's token but keeps the patient role.
func (r *Router) LogoutPatient(ctx context.Context, sessionID string) (string, error) {
	if err := r.sessions.SetSession(ctx, sessionID, domain.RolePatient, ""); err != nil {
		return "", fmt.Errorf("logout patient: %w", err)
	}
	return domain.PathPatientDashboard, nil
}

// Home returns the dashboard of an authenticated role, the landing page otherwise.
func (r *Router) Home(ctx context.Context, sessionID string) (string, error) {
	sess, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	if !sess.Role.Privileged() || !sess.Valid() {
		return domain.PathLanding, nil
	}
	return domain.LandingFor(sess.Role), nil
}

func layoutFor(p string, role domain.Role, authenticated bool) domain.Layout {
	return domain.Layout{
		Path:          p,
		Variant:       role,
		Authenticated: authenticated,
		Actions:       clone(actionsByRole[role]),
	}
}

func clone(actions []domain.Action) []domain.Action {
	out := make([]domain.Action, len(actions))
	copy(out, actions)
	return out
}
