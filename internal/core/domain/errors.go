package domain

import "errors"

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrTokenRequired    = errors.New("role requires an authentication token")
	ErrMissingSessionID = errors.New("missing session id")
	ErrSessionExpired   = errors.New("session expired or invalid login")
	ErrForbidden        = errors.New("access forbidden")
)
