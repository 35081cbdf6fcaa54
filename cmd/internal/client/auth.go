package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Authenticator verifies and registers identities against the clinic API.
// Verify distinguishes ErrNotFound from ErrInvalidCredentials; identities
// without a stored credential pass verification regardless of the supplied
// password.
type Authenticator interface {
	Verify(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, user User) (*User, error)
}

// HTTPAuthenticator implements Authenticator against /api/login and
// /api/register.
type HTTPAuthenticator struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPAuthenticator(baseURL string) *HTTPAuthenticator {
	return &HTTPAuthenticator{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *HTTPAuthenticator) Verify(ctx context.Context, email, password string) (*Credentials, error) {
	in := map[string]string{"email": email, "password": password}
	resp, err := a.post(ctx, "/api/login", in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var creds Credentials
		if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
			return nil, err
		}
		return &creds, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("login: %s", decodeAPIMessage(resp))
	}
}

func (a *HTTPAuthenticator) Register(ctx context.Context, user User) (*User, error) {
	resp, err := a.post(ctx, "/api/register", user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("register: %s", decodeAPIMessage(resp))
	}

	user.Password = ""
	return &user, nil
}

func (a *HTTPAuthenticator) post(ctx context.Context, path string, in any) (*http.Response, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, bytes.NewBuffer(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.HTTP.Do(req)
}
