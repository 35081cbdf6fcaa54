package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"clinicdesk/cmd/internal/triage"
)

// RemoteStore is the durable authority for appointment records. It gives no
// ordering guarantees of its own; `id` is the sole identity key.
type RemoteStore interface {
	List(ctx context.Context) ([]triage.Appointment, error)
	Create(ctx context.Context, a triage.Appointment) error
	Delete(ctx context.Context, id string) error
}

// TokenSink receives the bearer token issued at login.
type TokenSink interface {
	SetToken(token string)
}

// HTTPStore talks to the clinicdesk API over plain JSON HTTP.
type HTTPStore struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.Mutex
	token string
}

func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *HTTPStore) List(ctx context.Context) ([]triage.Appointment, error) {
	var body struct {
		Appointments []triage.Appointment `json:"appointments"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/appointments", nil, http.StatusOK, &body); err != nil {
		return nil, err
	}
	return body.Appointments, nil
}

func (s *HTTPStore) Create(ctx context.Context, a triage.Appointment) error {
	return s.do(ctx, http.MethodPost, "/api/appointments", a, http.StatusCreated, nil)
}

func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/api/appointments/"+id, nil, http.StatusOK, nil)
}

// do issues one request and decodes the response into out when a non-nil out
// is given. Transport failures wrap ErrRemoteUnavailable; an unexpected
// status surfaces the server's message.
func (s *HTTPStore) do(ctx context.Context, method, path string, in any, wantStatus int, out any) error {
	var payload *bytes.Buffer
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	s.mu.Lock()
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	s.mu.Unlock()

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: %s", method, path, decodeAPIMessage(resp))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return resp.Status
}
