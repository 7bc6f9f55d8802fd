package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labjournal/labctl/internal/client/api"
	"github.com/labjournal/labctl/internal/client/models"
	"github.com/labjournal/labctl/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

// ---- fakes ----

type fakeStore struct {
	mu     sync.Mutex
	token  string
	saves  int
	clears int

	saveErr  error
	loadErr  error
	clearErr error
}

func (f *fakeStore) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	f.saves++
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.loadErr
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.token = ""
	f.clears++
	return nil
}

func (f *fakeStore) stored() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

type fakeAPI struct {
	loginResp *models.LoginResponse
	loginErr  error
	logoutErr error
	profile   *models.User
	profErr   error

	loginCalls  int
	logoutCalls int
	profCalls   int
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) Profile(ctx context.Context) (*models.User, error) {
	f.profCalls++
	if f.profErr != nil {
		return nil, f.profErr
	}
	return f.profile, nil
}

func newTestManager(store *fakeStore, fapi *fakeAPI, opts Options) *Manager {
	return &Manager{
		store:  store,
		api:    fapi,
		log:    testLogger(),
		opts:   opts,
		status: StatusAnonymous,
	}
}

func smith() *models.User {
	return &models.User{ID: 1, Username: "smith", Email: "smith@lab.example.org", Bio: "old"}
}

// ---- login ----

func TestLogin_Success(t *testing.T) {
	store := &fakeStore{}
	fapi := &fakeAPI{loginResp: &models.LoginResponse{User: smith(), Token: "tok-1"}}
	m := newTestManager(store, fapi, Options{})

	var seen []Status
	m.Subscribe(func(s Snapshot) { seen = append(seen, s.Status) })

	require.NoError(t, m.Login(context.Background(), "smith", "secret"))

	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.User)
	assert.Equal(t, "smith", snap.User.Username)
	assert.Equal(t, "tok-1", store.stored())
	assert.Equal(t, "tok-1", m.Token(context.Background()))
	assert.Equal(t, []Status{StatusAuthenticating, StatusAuthenticated}, seen)
}

func TestLogin_RepeatedFailuresNeverPersistCredential(t *testing.T) {
	store := &fakeStore{}
	fapi := &fakeAPI{loginErr: errors.New("bad credentials")}
	m := newTestManager(store, fapi, Options{})

	for i := 0; i < 3; i++ {
		err := m.Login(context.Background(), "smith", "wrong")
		require.Error(t, err)

		snap := m.Snapshot()
		assert.Equal(t, StatusFailed, snap.Status)
		assert.Nil(t, snap.User)
	}
	assert.Zero(t, store.saves)
	assert.Empty(t, m.Token(context.Background()))
}

func TestLogin_FallbackErrorMessage(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeAPI{loginErr: errors.New("connection refused")}, Options{})

	_ = m.Login(context.Background(), "smith", "pw")
	assert.Equal(t, "login failed", m.Snapshot().LastError)
}

func TestLogin_RetryAfterFailureSucceeds(t *testing.T) {
	store := &fakeStore{}
	fapi := &fakeAPI{loginErr: errors.New("bad credentials")}
	m := newTestManager(store, fapi, Options{})

	require.Error(t, m.Login(context.Background(), "smith", "wrong"))

	fapi.loginErr = nil
	fapi.loginResp = &models.LoginResponse{User: smith(), Token: "tok-2"}
	require.NoError(t, m.Login(context.Background(), "smith", "right"))

	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Empty(t, snap.LastError)
	assert.Equal(t, "tok-2", store.stored())
}

func TestAcknowledgeError_BlanksMessageKeepsStatus(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeAPI{loginErr: errors.New("nope")}, Options{})

	_ = m.Login(context.Background(), "smith", "wrong")
	require.Equal(t, StatusFailed, m.Snapshot().Status)
	require.NotEmpty(t, m.Snapshot().LastError)

	m.AcknowledgeError()

	snap := m.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Empty(t, snap.LastError)
}

// ---- restore ----

func TestRestore_NoStoredToken(t *testing.T) {
	fapi := &fakeAPI{}
	m := newTestManager(&fakeStore{}, fapi, Options{})

	require.NoError(t, m.Restore(context.Background()))

	assert.Equal(t, StatusAnonymous, m.Snapshot().Status)
	assert.Zero(t, fapi.profCalls)
	assert.Zero(t, fapi.loginCalls)
}

func TestRestore_NoStoredToken_Strict(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeAPI{}, Options{StrictRestore: true})

	require.NoError(t, m.Restore(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.NotEmpty(t, snap.LastError)
}

func TestRestore_ValidToken(t *testing.T) {
	store := &fakeStore{token: "tok-1"}
	fapi := &fakeAPI{profile: smith()}
	m := newTestManager(store, fapi, Options{})

	require.NoError(t, m.Restore(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.User)
	assert.Equal(t, "smith", snap.User.Username)
	assert.Equal(t, 1, fapi.profCalls)
	assert.Zero(t, fapi.loginCalls, "restoration must not re-login")
	assert.Equal(t, "tok-1", m.Token(context.Background()))
}

func TestRestore_InvalidTokenFallsBackToAnonymous(t *testing.T) {
	store := &fakeStore{token: "stale"}
	fapi := &fakeAPI{profErr: errors.New("401")}
	m := newTestManager(store, fapi, Options{})

	require.NoError(t, m.Restore(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.LastError)
	assert.Empty(t, store.stored())
	assert.Empty(t, m.Token(context.Background()))
}

func TestRestore_InvalidToken_StrictSurfacesError(t *testing.T) {
	store := &fakeStore{token: "stale"}
	m := newTestManager(store, &fakeAPI{profErr: errors.New("401")}, Options{StrictRestore: true})

	require.NoError(t, m.Restore(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.NotEmpty(t, snap.LastError)
	assert.Empty(t, store.stored())
}

// ---- logout ----

func TestLogout_ClearsLocally(t *testing.T) {
	store := &fakeStore{}
	fapi := &fakeAPI{loginResp: &models.LoginResponse{User: smith(), Token: "tok-1"}}
	m := newTestManager(store, fapi, Options{})
	require.NoError(t, m.Login(context.Background(), "smith", "pw"))

	require.NoError(t, m.Logout(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.Nil(t, snap.User)
	assert.Empty(t, store.stored())
	assert.Equal(t, 1, fapi.logoutCalls)
}

func TestLogout_ServerFaultDoesNotBlockLocalLogout(t *testing.T) {
	store := &fakeStore{}
	fapi := &fakeAPI{
		loginResp: &models.LoginResponse{User: smith(), Token: "tok-1"},
		logoutErr: errors.New("timeout"),
	}
	m := newTestManager(store, fapi, Options{})
	require.NoError(t, m.Login(context.Background(), "smith", "pw"))

	require.NoError(t, m.Logout(context.Background()))

	assert.Equal(t, StatusAnonymous, m.Snapshot().Status)
	assert.Empty(t, store.stored())
	assert.Empty(t, m.Token(context.Background()))
}

// ---- invalidation ----

func loggedInManager(t *testing.T, store *fakeStore) *Manager {
	t.Helper()
	fapi := &fakeAPI{loginResp: &models.LoginResponse{User: smith(), Token: "tok-1"}}
	m := newTestManager(store, fapi, Options{})
	require.NoError(t, m.Login(context.Background(), "smith", "pw"))
	return m
}

func TestInvalidate_ClearsSession(t *testing.T) {
	store := &fakeStore{}
	m := loggedInManager(t, store)

	m.Invalidate()

	snap := m.Snapshot()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.Nil(t, snap.User)
	assert.Empty(t, store.stored())
	assert.Empty(t, m.Token(context.Background()))
}

func TestInvalidate_NoopWhenNotAuthenticated(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store, &fakeAPI{}, Options{})

	notified := false
	m.OnSessionExpired(func() { notified = true })

	m.Invalidate()

	assert.Equal(t, StatusAnonymous, m.Snapshot().Status)
	assert.False(t, notified)
	assert.Zero(t, store.clears)
}

func TestInvalidate_ConcurrentCallsFireExpiredOnce(t *testing.T) {
	store := &fakeStore{}
	m := loggedInManager(t, store)

	var mu sync.Mutex
	expired := 0
	m.OnSessionExpired(func() {
		mu.Lock()
		expired++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Invalidate()
		}()
	}
	wg.Wait()

	assert.Equal(t, StatusAnonymous, m.Snapshot().Status)
	assert.Equal(t, 1, expired, "expired hook must fire exactly once")
	assert.Equal(t, 1, store.clears)
}

func TestInvalidate_GuardRearmsAfterNextLogin(t *testing.T) {
	store := &fakeStore{}
	fapi := &fakeAPI{loginResp: &models.LoginResponse{User: smith(), Token: "tok-1"}}
	m := newTestManager(store, fapi, Options{})

	expired := 0
	m.OnSessionExpired(func() { expired++ })

	require.NoError(t, m.Login(context.Background(), "smith", "pw"))
	m.Invalidate()
	require.Equal(t, 1, expired)

	require.NoError(t, m.Login(context.Background(), "smith", "pw"))
	m.Invalidate()
	assert.Equal(t, 2, expired)
}

// ---- user updates ----

func TestUpdateUser_MergesOnlyProvidedFields(t *testing.T) {
	m := loggedInManager(t, &fakeStore{})

	bio := "x"
	m.UpdateUser(models.UserUpdate{Bio: &bio})

	snap := m.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "x", snap.User.Bio)
	assert.Equal(t, "smith", snap.User.Username)
	assert.Equal(t, "smith@lab.example.org", snap.User.Email)
}

func TestUpdateUser_NoopWhenAnonymous(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeAPI{}, Options{})

	notified := false
	m.Subscribe(func(Snapshot) { notified = true })

	bio := "x"
	m.UpdateUser(models.UserUpdate{Bio: &bio})

	assert.Nil(t, m.Snapshot().User)
	assert.False(t, notified)
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	m := loggedInManager(t, &fakeStore{})

	snap := m.Snapshot()
	snap.User.Bio = "mutated"

	assert.Equal(t, "old", m.Snapshot().User.Bio)
}

// ---- integration with the real pipeline ----

// TestSessionExpired_EndToEnd drives the real api.Client against a test
// server: after a successful login, a 401 on a gateway call must leave the
// session anonymous before the caller sees ErrSessionExpired.
func TestSessionExpired_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": {"id": 1, "username": "smith"}, "token": "tok-1"}`))
	})
	mux.HandleFunc("/api/experiments/42/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL, Logger: testLogger()})
	require.NoError(t, err)

	store := &fakeStore{}
	m := NewManager(store, client, testLogger(), Options{})

	var statusWhenRejected Status
	m.OnSessionExpired(func() { statusWhenRejected = m.Snapshot().Status })

	require.NoError(t, m.Login(context.Background(), "smith", "secret"))
	require.Equal(t, "tok-1", store.stored())

	_, err = client.Experiment(context.Background(), 42)
	require.ErrorIs(t, err, api.ErrSessionExpired)

	snap := m.Snapshot()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.Nil(t, snap.User)
	assert.Empty(t, store.stored())
	assert.Equal(t, StatusAnonymous, statusWhenRejected)
}

// TestLogin_InvalidCredentials_EndToEnd covers the structured error payload:
// a 400 with {"error": "Invalid credentials"} must surface that message and
// leave the stored credential untouched.
func TestLogin_InvalidCredentials_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Invalid credentials"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL, Logger: testLogger()})
	require.NoError(t, err)

	store := &fakeStore{}
	m := NewManager(store, client, testLogger(), Options{})

	err = m.Login(context.Background(), "smith", "wrong")
	require.ErrorIs(t, err, api.ErrValidation)

	snap := m.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "Invalid credentials", snap.LastError)
	assert.Zero(t, store.saves)
}
