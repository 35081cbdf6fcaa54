package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"clinicdesk/cmd/internal/triage"
)

// Session owns the current identity and the surge-simulation flags for one
// running client instance. All collaborators are constructor-injected so
// several sessions can coexist in one process (and in tests).
type Session struct {
	auth     Authenticator
	identity *IdentityFile
	cache    *QueueCache
	sink     TokenSink

	mu      sync.Mutex
	current *User
	state   triage.MutationState
}

// NewSession wires a session over its collaborators. sink may be nil when no
// transport needs the login token.
func NewSession(auth Authenticator, identity *IdentityFile, cache *QueueCache, sink TokenSink) *Session {
	return &Session{auth: auth, identity: identity, cache: cache, sink: sink}
}

// Restore loads a previously persisted identity, if any, and refreshes the
// mirror. A failed refresh keeps the restored identity; the mirror is simply
// stale until the next refresh.
func (s *Session) Restore(ctx context.Context) error {
	creds, err := s.identity.Load()
	if err != nil {
		return err
	}
	if creds == nil {
		return nil
	}

	s.setCurrent(creds)
	if err := s.cache.Refresh(ctx); err != nil {
		log.Errorf("session restored but refresh failed: %v", err)
	}
	return nil
}

// Login verifies the credentials, then sets and persists the identity and
// refreshes the mirror. On a failed verification the current identity is left
// untouched and the verify error (ErrNotFound, ErrInvalidCredentials, ...) is
// returned as-is.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	creds, err := s.auth.Verify(ctx, email, password)
	if err != nil {
		log.Errorf("login failed for %s: %v", email, err)
		return nil, err
	}

	s.setCurrent(creds)
	if err := s.identity.Save(creds); err != nil {
		log.Errorf("failed to persist session identity: %v", err)
	}
	if err := s.cache.Refresh(ctx); err != nil {
		log.Errorf("post-login refresh failed: %v", err)
	}

	user := creds.User
	return &user, nil
}

// Register creates a new patient identity. The id is synthesized client-side
// and the role is forced; registering does not log the new identity in.
func (s *Session) Register(ctx context.Context, user User) (*User, error) {
	user.ID = uuid.NewString()
	user.Role = RolePatient
	return s.auth.Register(ctx, user)
}

// SetSessionUser installs an identity without credential verification, the
// demo/staff injection path. The identity is persisted and the mirror
// refreshed like a regular login.
func (s *Session) SetSessionUser(ctx context.Context, user User) error {
	creds := &Credentials{User: user}
	s.setCurrent(creds)
	if err := s.identity.Save(creds); err != nil {
		return err
	}
	if err := s.cache.Refresh(ctx); err != nil {
		log.Errorf("refresh after session injection failed: %v", err)
	}
	return nil
}

// Logout clears the current and persisted identity. The mirror is left as-is,
// so stale appointments may remain visible until the next refresh.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.SetToken("")
	}
	return s.identity.Clear()
}

// CurrentUser returns a copy of the current identity, or nil when logged out.
func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// MutationState returns the current surge-simulation flags.
func (s *Session) MutationState() triage.MutationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// MutationPatch updates only the flags it carries; nil fields keep their
// current value.
type MutationPatch struct {
	VolumeDoubled *bool
	StaffShortage *bool
}

// SetMutationState applies a partial update and returns the resulting flags.
func (s *Session) SetMutationState(patch MutationPatch) triage.MutationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.VolumeDoubled != nil {
		s.state.VolumeDoubled = *patch.VolumeDoubled
	}
	if patch.StaffShortage != nil {
		s.state.StaffShortage = *patch.StaffShortage
	}
	return s.state
}

func (s *Session) setCurrent(creds *Credentials) {
	s.mu.Lock()
	user := creds.User
	s.current = &user
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.SetToken(creds.Token)
	}
}
