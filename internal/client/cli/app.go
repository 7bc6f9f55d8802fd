package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/labjournal/labctl/internal/client/api"
	"github.com/labjournal/labctl/internal/client/config"
	"github.com/labjournal/labctl/internal/client/repositories/credentials"
	"github.com/labjournal/labctl/internal/client/session"
	"github.com/labjournal/labctl/internal/logging"
)

// App wires the client together: config, API gateway, session manager and
// the interactive loop.
type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Manager
	log     logging.Logger
	reader  *bufio.Reader
}

// NewApp builds the application graph: local database, credential store,
// API client and session manager.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := credentials.OpenDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	apiClient, err := api.New(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	store := credentials.NewSQLiteRepository(db)
	sess := session.NewManager(store, apiClient, log, session.Options{
		StrictRestore: cfg.StrictRestore,
	})

	app := &App{
		config:  cfg,
		api:     apiClient,
		session: sess,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}

	sess.Subscribe(func(snap session.Snapshot) {
		log.Debug(ctx, "session transition", "status", string(snap.Status))
	})
	sess.OnSessionExpired(func() {
		printlnFn("Session expired, please log in again.")
	})

	return app, nil
}

// Run restores any stored session and enters the interactive loop.
func (a *App) Run(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		a.log.Error(ctx, "session restore error", "error", err)
	}

	snap := a.session.Snapshot()
	switch {
	case snap.Authenticated():
		printlnFn(fmt.Sprintf("Welcome back, %s!", snap.User.Username))
	case snap.Status == session.StatusFailed && snap.LastError != "":
		printlnFn("Could not restore session: " + snap.LastError)
		a.session.AcknowledgeError()
	}

	printlnFn("Lab Journal CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

// status renders the prompt suffix, e.g. "(smith authenticated)".
func (a *App) status() string {
	snap := a.session.Snapshot()
	s := ""
	if snap.User != nil {
		s = snap.User.Username + " "
	}
	s += string(snap.Status)
	return fmt.Sprintf("(%s)", s)
}
