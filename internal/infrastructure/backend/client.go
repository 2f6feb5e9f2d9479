// Package backend is the portal's client for the hospital REST backend.
//
// Every exported call returns a domain.Result. Transport failures, non-2xx
// statuses, unreadable bodies and missing caller input are all folded into a
// failed Result; nothing is returned as a Go error and nothing panics.
package backend

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/observability/metrics"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20

	// nullSegment stands in for an absent filter value in path templates.
	nullSegment = "null"

	msgMissingToken = "Missing authentication token."
)

// AuthMode decides where the token travels.
type AuthMode string

const (
	// AuthInPath appends the token as the last path segment, as the backend expects.
	AuthInPath AuthMode = "path"
	// AuthInHeader sends "Authorization: Bearer <token>" and keeps it out of the URL.
	AuthInHeader AuthMode = "header"
)

// Config captures the backend connection settings.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	AuthMode AuthMode
}

// Client calls the hospital backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authMode   AuthMode
	log        zerolog.Logger
}

// NewClient builds a Client. Defaults are applied to empty settings.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	mode := cfg.AuthMode
	if mode != AuthInHeader {
		mode = AuthInPath
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(base, "/"),
		authMode:   mode,
		log:        log,
	}
}

// call describes one backend request and how to word its outcome.
type call struct {
	op       string   // metrics label
	route    string   // path template, logged instead of the real URL
	method   string
	segments []string // already escaped
	token    string   // "" for public endpoints
	body     any

	label string // "Delete" → "Delete failed (HTTP 404)"
	verb  string // "deleting the doctor" → "An unexpected error occurred while deleting the doctor."
	okMsg string
}

// response is the raw outcome of a sent request.
type response struct {
	status int
	raw    []byte
	fields map[string]json.RawMessage
	err    error
}

func (r response) ok() bool {
	if r.err != nil || r.status < 200 || r.status > 299 {
		return false
	}
	if v, present := r.fields["success"]; present {
		var success bool
		if json.Unmarshal(v, &success) == nil && !success {
			return false
		}
	}
	return true
}

// message returns the backend's own wording, if any.
func (r response) message() string {
	for _, key := range []string{"message", "error"} {
		if s := stringField(r.fields, key); s != "" {
			return s
		}
	}
	return ""
}

func (c *Client) send(ctx context.Context, cl call) response {
	start := time.Now()
	defer func() {
		metrics.BackendRequestDuration.WithLabelValues(cl.op).Observe(time.Since(start).Seconds())
	}()

	var bodyReader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return response{err: fmt.Errorf("marshal request: %w", err)}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpoint(cl), bodyReader)
	if err != nil {
		return response{err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authMode == AuthInHeader && cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{status: resp.StatusCode, err: fmt.Errorf("read response: %w", err)}
	}
	return response{status: resp.StatusCode, raw: raw, fields: parseObject(raw)}
}

func (c *Client) endpoint(cl call) string {
	segments := cl.segments
	if cl.token != "" && c.authMode == AuthInPath {
		segments = append(append([]string(nil), segments...), url.PathEscape(cl.token))
	}
	return c.baseURL + "/" + strings.Join(segments, "/")
}

// execute sends cl and normalizes the outcome; decode builds the payload of a success.
func execute[T any](ctx context.Context, c *Client, cl call, decode func(response) (T, error)) domain.Result[T] {
	resp := c.send(ctx, cl)

	event := c.log.Debug()
	outcome := "ok"
	var res domain.Result[T]

	switch {
	case resp.err != nil:
		outcome = "error"
		event = c.log.Warn().Err(resp.err)
		res = domain.Fail[T](fmt.Sprintf("An unexpected error occurred while %s.", cl.verb))
	case !resp.ok():
		outcome = "failed"
		event = c.log.Info()
		msg := resp.message()
		if msg == "" {
			msg = fmt.Sprintf("%s failed (HTTP %d)", cl.label, resp.status)
		}
		res = domain.Fail[T](msg)
	default:
		data, err := decode(resp)
		if err != nil {
			outcome = "failed"
			event = c.log.Warn().Err(err)
			res = domain.Fail[T](err.Error())
			break
		}
		msg := resp.message()
		if msg == "" {
			msg = cl.okMsg
		}
		res = domain.OK(data, msg)
	}

	metrics.BackendRequestsTotal.WithLabelValues(cl.op, outcome).Inc()
	event.
		Str("operation", cl.op).
		Str("method", cl.method).
		Str("route", cl.route).
		Int("status", resp.status).
		Str("token_fp", fingerprint(cl.token)).
		Str("outcome", outcome).
		Msg("backend call")
	return res
}

// reject fails a call locally, before any request is built.
func reject[T any](c *Client, op, message string) domain.Result[T] {
	metrics.BackendRequestsTotal.WithLabelValues(op, "rejected").Inc()
	c.log.Debug().Str("operation", op).Str("reason", message).Msg("backend call rejected")
	return domain.Fail[T](message)
}

// noData is the decoder for calls whose success carries no payload.
func noData(response) (any, error) { return nil, nil }

// placeholder turns an optional filter value into a path segment.
func placeholder(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nullSegment
	}
	return url.PathEscape(s)
}

// fingerprint identifies a token in logs without revealing it.
func fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}

// backendRole maps portal roles onto the roles the backend validates tokens for.
func backendRole(r domain.Role) string {
	if r == domain.RoleLoggedPatient {
		return string(domain.RolePatient)
	}
	return string(r)
}

// Ping reports whether the backend answers HTTP at all. Any status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build ping: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}
