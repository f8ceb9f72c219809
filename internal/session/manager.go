// Package session tracks the client's authentication state: who is
// logged in, silent startup refresh, and the periodic background
// token renewal.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/logger"
	"github.com/rubenhtun/luxora-store/internal/metrics"
	"github.com/rubenhtun/luxora-store/internal/user"
)

type State string

const (
	StateAnonymous     State = "anonymous"
	StateChecking      State = "checking"
	StateAuthenticated State = "authenticated"
	StateError         State = "error"
)

// API is the auth transport collaborator, typically the API client.
// Error messages returned by Login and Signup carry the server-side
// message when one was provided.
type API interface {
	Login(ctx context.Context, email, password string) (*user.Profile, error)
	Signup(ctx context.Context, name, email, password string) (*user.Profile, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	CurrentUser(ctx context.Context) (*user.Profile, error)
	UpdatePhone(ctx context.Context, phone string) (*user.Profile, error)
}

// Manager owns the Session state. All other components read it
// through the accessors; nothing mutates it from outside.
type Manager struct {
	mu       sync.Mutex
	api      API
	interval time.Duration

	state  State
	user   *user.Profile
	errMsg string

	refreshStop chan struct{}
	closed      bool

	refreshCount metrics.Counter
}

type Option func(*Manager)

// WithRefreshInterval overrides the background refresh period. It must
// stay strictly shorter than the server's access token lifetime.
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

func NewManager(api API, opts ...Option) *Manager {
	m := &Manager{
		api:      api,
		interval: 55 * time.Minute,
		state:    StateChecking,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start runs the silent startup sequence: refresh the session cookie,
// then fetch the current user. Either step failing leaves the session
// anonymous. On success the background refresh loop is started.
func (m *Manager) Start(ctx context.Context) {
	if err := m.api.Refresh(ctx); err != nil {
		logger.L().Debug("silent refresh failed", zap.Error(err))
		m.transition(StateAnonymous, nil, "")
		return
	}

	u, err := m.api.CurrentUser(ctx)
	if err != nil {
		logger.L().Debug("current user fetch failed", zap.Error(err))
		m.transition(StateAnonymous, nil, "")
		return
	}

	if m.transition(StateAuthenticated, u, "") {
		m.startRefreshLoop()
	}
}

// Login authenticates with the backend. On failure the session is
// left untouched and the error carries the server message.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	u, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if m.transition(StateAuthenticated, u, "") {
		m.startRefreshLoop()
		logger.L().Info("logged in", zap.String("user_id", u.ID))
	}
	return nil
}

// Signup registers a new account; symmetric to Login.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	u, err := m.api.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}

	if m.transition(StateAuthenticated, u, "") {
		m.startRefreshLoop()
		logger.L().Info("signed up", zap.String("user_id", u.ID))
	}
	return nil
}

// Logout clears the session unconditionally. The server call is best
// effort; its failure is logged, not surfaced.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		logger.L().Warn("logout request failed", zap.Error(err))
	}

	m.stopRefreshLoop()
	m.transition(StateAnonymous, nil, "")
}

// UpdatePhone patches the profile of the logged-in user and refreshes
// the cached user record.
func (m *Manager) UpdatePhone(ctx context.Context, phone string) error {
	if !m.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	u, err := m.api.UpdatePhone(ctx, phone)
	if err != nil {
		return err
	}

	m.transition(StateAuthenticated, u, "")
	return nil
}

// Close tears the manager down. Any in-flight Start or refresh that
// completes afterwards is suppressed, so a late response cannot
// resurrect a disposed session.
func (m *Manager) Close() {
	m.stopRefreshLoop()

	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) User() *user.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// RefreshCount reports how many background refreshes have run.
func (m *Manager) RefreshCount() uint64 {
	return m.refreshCount.Load()
}

// transition applies a state change unless the manager was closed.
// It reports whether the change took effect.
func (m *Manager) transition(state State, u *user.Profile, errMsg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}

	m.state = state
	m.user = u
	m.errMsg = errMsg
	return true
}

func (m *Manager) startRefreshLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.refreshStop != nil {
		return
	}

	stop := make(chan struct{})
	m.refreshStop = stop

	go m.refreshLoop(stop)
}

func (m *Manager) stopRefreshLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.refreshStop != nil {
		close(m.refreshStop)
		m.refreshStop = nil
	}
}

// refreshLoop renews the session cookie on a fixed interval. A failed
// renewal drops the session to anonymous; any redirect is the HTTP
// interceptor's job, not ours.
func (m *Manager) refreshLoop(stop chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.refreshCount.Inc()
			if err := m.api.Refresh(context.Background()); err != nil {
				logger.L().Warn("background refresh failed", zap.Error(err))
				m.stopRefreshLoop()
				m.transition(StateAnonymous, nil, "")
				return
			}
		}
	}
}
