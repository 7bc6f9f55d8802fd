package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/labjournal/labctl/internal/client/api"
	"github.com/labjournal/labctl/internal/client/models"
	"github.com/labjournal/labctl/internal/client/repositories/credentials"
	"github.com/labjournal/labctl/internal/logging"
)

const fallbackLoginError = "login failed"

// API is the slice of the gateway the manager needs. The concrete *api.Client
// satisfies it; tests substitute fakes.
type API interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
}

// Manager is the session state machine. One instance exists per process; it
// is constructed with its collaborators so tests can run isolated sessions.
//
// The transition methods are safe to call from concurrently resolving
// request callbacks. The mutex is never held across network I/O, so the
// pipeline's rejection hook may re-enter Invalidate at any time.
type Manager struct {
	store credentials.Repository
	api   API
	log   logging.Logger
	opts  Options

	mu        sync.Mutex
	status    Status
	user      *models.User
	lastError string
	token     string

	subscribers []func(Snapshot)
	onExpired   []func()
	// expiredFired is the single-flight guard for the rejection side effect:
	// armed on every authenticated transition, consumed by the first 401.
	expiredFired bool
}

// NewManager creates a Manager in the anonymous state and wires the client's
// pre-send and post-receive hooks to it.
func NewManager(store credentials.Repository, client *api.Client, log logging.Logger, opts Options) *Manager {
	m := &Manager{
		store:  store,
		api:    client,
		log:    log,
		opts:   opts,
		status: StatusAnonymous,
	}
	client.Bind(m.Token, m.Invalidate)
	return m
}

// Subscribe registers an observer invoked with a Snapshot after every
// transition. Observers run outside the manager's lock.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// OnSessionExpired registers a hook fired at most once per authenticated
// session when the remote side rejects the credential (the view layer's
// redirect-to-login signal).
func (m *Manager) OnSessionExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = append(m.onExpired, fn)
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Token resolves the current credential for the request pipeline. It always
// reflects the most recent write.
func (m *Manager) Token(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Restore recovers the session from a previously stored credential. With no
// stored token the session stays anonymous. With one, the token is validated
// by fetching the profile; an invalid token is cleared and the session lands
// in anonymous, or in failed with a message when StrictRestore is set.
func (m *Manager) Restore(ctx context.Context) error {
	tok, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if tok == "" {
		if m.opts.StrictRestore {
			m.transition(func() {
				m.status = StatusFailed
				m.lastError = "no stored session"
			})
		}
		return nil
	}

	m.transition(func() {
		m.status = StatusAuthenticating
		m.token = tok
	})

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.log.Warn(ctx, "session restore failed", "error", err)
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.Error(ctx, "failed to clear stored credential", "error", clearErr)
		}
		m.transition(func() {
			m.token = ""
			m.user = nil
			if m.opts.StrictRestore {
				m.status = StatusFailed
				m.lastError = "stored session is no longer valid"
			} else {
				m.status = StatusAnonymous
			}
		})
		return nil
	}

	m.log.Info(ctx, "session restored", "username", user.Username)
	m.transition(func() {
		m.status = StatusAuthenticated
		m.user = user
		m.lastError = ""
		m.expiredFired = false
	})
	return nil
}

// Login authenticates with the remote service. On success the credential is
// persisted and the session becomes authenticated; on rejection the session
// enters failed with the server's message and the stored credential is left
// untouched. Safe to re-invoke after a failure.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.transition(func() {
		m.status = StatusAuthenticating
		m.lastError = ""
	})

	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		msg := fallbackLoginError
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		m.log.Warn(ctx, "login rejected", "username", username, "error", err)
		m.transition(func() {
			m.status = StatusFailed
			m.user = nil
			m.lastError = msg
		})
		return err
	}

	if resp.Token != "" {
		if err := m.store.Save(ctx, resp.Token); err != nil {
			m.log.Error(ctx, "failed to persist credential", "error", err)
		}
	}

	m.log.Info(ctx, "login successful", "username", username)
	m.transition(func() {
		m.status = StatusAuthenticated
		m.user = resp.User
		m.token = resp.Token
		m.lastError = ""
		m.expiredFired = false
	})
	return nil
}

// Logout notifies the server best-effort and always clears local state.
// A network fault never blocks the local logout.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn(ctx, "logout notification failed", "error", err)
	}

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear stored credential", "error", err)
	}

	m.transition(func() {
		m.status = StatusAnonymous
		m.user = nil
		m.token = ""
		m.lastError = ""
	})
	return nil
}

// Invalidate is the authentication-rejection transition, invoked by the
// request pipeline when the server answers 401. It clears the credential and
// the user without notifying the server (the rejection already proves the
// session is gone). Idempotent under concurrent in-flight rejections: only
// the first caller past the guard clears state and fires the expired hooks.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	if m.status != StatusAuthenticated {
		m.mu.Unlock()
		return
	}
	m.status = StatusAnonymous
	m.user = nil
	m.token = ""
	m.lastError = ""

	fireExpired := !m.expiredFired
	m.expiredFired = true

	snap := m.snapshotLocked()
	subs := append([]func(Snapshot){}, m.subscribers...)
	var expired []func()
	if fireExpired {
		expired = append([]func(){}, m.onExpired...)
	}
	m.mu.Unlock()

	if err := m.store.Clear(context.Background()); err != nil {
		m.log.Error(context.Background(), "failed to clear stored credential", "error", err)
	}

	for _, fn := range subs {
		fn(snap)
	}
	for _, fn := range expired {
		fn()
	}
}

// UpdateUser merges the patch into the current user. A no-op when the
// session holds no user.
func (m *Manager) UpdateUser(patch models.UserUpdate) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return
	}
	updated := *m.user
	patch.ApplyTo(&updated)
	m.user = &updated

	snap := m.snapshotLocked()
	subs := append([]func(Snapshot){}, m.subscribers...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// AcknowledgeError blanks the last error message without changing status,
// so the view layer can dismiss a login failure banner independently of
// retrying.
func (m *Manager) AcknowledgeError() {
	m.transition(func() {
		m.lastError = ""
	})
}

// transition applies fn under the lock and notifies subscribers afterwards.
func (m *Manager) transition(fn func()) {
	m.mu.Lock()
	fn()
	snap := m.snapshotLocked()
	subs := append([]func(Snapshot){}, m.subscribers...)
	m.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{Status: m.status, LastError: m.lastError}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}
