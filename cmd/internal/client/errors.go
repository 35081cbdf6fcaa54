package client

import "errors"

var (
	// ErrNotFound means the identity lookup failed (no such email).
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials means the identity exists but the password check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRemoteUnavailable wraps transport failures against the remote API.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)
