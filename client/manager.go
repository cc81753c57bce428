package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Status is the authentication state of a Manager. StatusUnknown lasts until
// the first Initialize resolves, so consumers can tell "not yet checked" from
// "checked and unauthenticated".
type Status int

const (
	StatusUnknown Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

// Navigation targets triggered by state transitions.
const (
	RouteHome    = "/"
	RouteProfile = "/profile"
	RouteSuccess = "/success"
)

// Navigator is invoked with the route to show after a transition.
type Navigator func(route string)

var (
	// ErrUnreachable wraps transport failures. The stored token is kept in
	// this case: a network outage is not evidence the token is bad.
	ErrUnreachable = errors.New("auth server unreachable")

	// ErrProfileFetch is returned when login succeeded but the follow-up
	// profile fetch did not. The stored token is rolled back so no token
	// ever persists without a matching user.
	ErrProfileFetch = errors.New("profile fetch failed after login")
)

// Manager owns the current user for the running process and keeps it
// consistent with the persisted token across restarts.
type Manager struct {
	api      *Client
	tokens   TokenStore
	navigate Navigator

	mu     sync.Mutex
	user   *User
	status Status
	epoch  uint64
}

// NewManager wires a Manager. navigate may be nil.
func NewManager(api *Client, tokens TokenStore, navigate Navigator) *Manager {
	return &Manager{
		api:      api,
		tokens:   tokens,
		navigate: navigate,
		status:   StatusUnknown,
	}
}

// User returns the current profile, nil when unauthenticated.
func (m *Manager) User() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Status returns the current authentication state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Initialize rehydrates the session from the persisted token. With no token
// stored the Manager settles unauthenticated. With a token stored it is
// validated against the profile endpoint: a server rejection clears the token,
// a transport failure keeps it and reports ErrUnreachable so the caller can
// retry.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	token, err := m.tokens.Load()
	if err != nil {
		m.commit(epoch, nil, StatusUnauthenticated)
		return fmt.Errorf("loading stored token: %w", err)
	}
	if token == "" {
		m.commit(epoch, nil, StatusUnauthenticated)
		return nil
	}

	user, err := m.api.Profile(ctx, token)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// Token rejected by the server: clear it, silent recovery.
			if err := m.tokens.Clear(); err != nil {
				log.Println("error clearing rejected token: ", err)
			}
			m.commit(epoch, nil, StatusUnauthenticated)
			return nil
		}
		m.commit(epoch, nil, StatusUnauthenticated)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	m.commit(epoch, user, StatusAuthenticated)
	return nil
}

// Login exchanges credentials for a token, persists it, hydrates the profile
// and navigates to the profile view. A credential rejection is returned as
// the server's message with a nil error and no state change. If the profile
// fetch after a successful login fails, the stored token is rolled back and
// ErrProfileFetch returned.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	// A fresh login supersedes any validation still in flight.
	m.mu.Lock()
	m.epoch++
	epoch := m.epoch
	m.mu.Unlock()

	token, err := m.api.Login(ctx, username, password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.Message, nil
		}
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if err := m.tokens.Save(token); err != nil {
		return "", fmt.Errorf("persisting token: %w", err)
	}

	user, err := m.api.Profile(ctx, token)
	if err != nil {
		if err := m.tokens.Clear(); err != nil {
			log.Println("error rolling back token: ", err)
		}
		m.commit(epoch, nil, StatusUnauthenticated)
		return "", fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}

	if m.commit(epoch, user, StatusAuthenticated) {
		m.goTo(RouteProfile)
	}
	return "", nil
}

// Register creates an account and navigates to the success view. It does not
// log the user in and never mutates session state. A rejection is returned as
// the server's message with a nil error.
func (m *Manager) Register(ctx context.Context, data any) (string, error) {
	err := m.api.Register(ctx, data)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.Message, nil
		}
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	m.goTo(RouteSuccess)
	return "", nil
}

// Logout clears the persisted token and the in-memory user unconditionally
// and navigates home. It never fails; a validation that was in flight when
// Logout ran cannot resurrect the session.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.epoch++
	m.user = nil
	m.status = StatusUnauthenticated
	m.mu.Unlock()

	if err := m.tokens.Clear(); err != nil {
		log.Println("error clearing token on logout: ", err)
	}

	m.goTo(RouteHome)
}

// commit applies a validation result unless a Logout or a newer Login bumped
// the epoch while the network call was in flight. The most recent user action
// always wins.
func (m *Manager) commit(epoch uint64, user *User, status Status) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		return false
	}
	m.user = user
	m.status = status
	return true
}

func (m *Manager) goTo(route string) {
	if m.navigate != nil {
		m.navigate(route)
	}
}
