package store

import (
	"context"
	"sync"

	"chargemap/internal/models"
	"chargemap/internal/ui/client"
)

// AuthAPI is the slice of the API client the auth store drives: the auth
// endpoints plus the per-instance credential.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (*client.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)
	SetToken(token string)
	ClearToken()
}

// AuthState is the reactive auth session snapshot.
type AuthState struct {
	User    *models.User
	Token   string
	Loading bool
	Err     string
}

// AuthStore caches the auth session, synchronized with the API and persisted
// to the session file.
type AuthStore struct {
	api     AuthAPI
	session *SessionFile

	mu          sync.Mutex
	state       AuthState
	subscribers []func(AuthState)
}

// NewAuthStore builds the store.
func NewAuthStore(api AuthAPI, session *SessionFile) *AuthStore {
	return &AuthStore{api: api, session: session}
}

// Subscribe registers a callback invoked with a state snapshot on every
// change.
func (s *AuthStore) Subscribe(fn func(AuthState)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// State returns the current snapshot.
func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a session is held.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token != ""
}

func (s *AuthStore) setState(mutate func(*AuthState)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	subscribers := make([]func(AuthState), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

// CheckAuth rehydrates the session from the session file at startup.
// Malformed persisted data is discarded, never an error.
func (s *AuthStore) CheckAuth() bool {
	session, err := s.session.Load()
	if err != nil {
		_ = s.session.Clear()
		return false
	}
	if session == nil {
		return false
	}

	s.api.SetToken(session.Token)
	s.setState(func(st *AuthState) {
		st.User = &session.User
		st.Token = session.Token
		st.Err = ""
	})
	return true
}

// Login authenticates against the API, persists the session and sets the
// client credential. Failures set Err; no error propagates to the caller.
func (s *AuthStore) Login(ctx context.Context, email, password string) bool {
	if !s.begin() {
		return false
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return false
	}
	s.succeed(resp)
	return true
}

// Register creates an account and logs the new user in.
func (s *AuthStore) Register(ctx context.Context, name, email, password string) bool {
	if !s.begin() {
		return false
	}

	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.fail(err)
		return false
	}
	s.succeed(resp)
	return true
}

// Logout clears state, the session file and the client credential.
func (s *AuthStore) Logout() {
	_ = s.session.Clear()
	s.api.ClearToken()
	s.setState(func(st *AuthState) {
		*st = AuthState{}
	})
}

// begin flips the loading flag, refusing a duplicate in-flight action.
func (s *AuthStore) begin() bool {
	started := false
	s.setState(func(st *AuthState) {
		if st.Loading {
			return
		}
		st.Loading = true
		st.Err = ""
		started = true
	})
	return started
}

func (s *AuthStore) fail(err error) {
	s.setState(func(st *AuthState) {
		st.Loading = false
		st.Err = err.Error()
	})
}

func (s *AuthStore) succeed(resp *client.AuthResponse) {
	s.api.SetToken(resp.Token)
	_ = s.session.Save(&Session{Token: resp.Token, User: resp.User})
	s.setState(func(st *AuthState) {
		user := resp.User
		st.User = &user
		st.Token = resp.Token
		st.Loading = false
		st.Err = ""
	})
}
