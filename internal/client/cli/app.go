package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/edusession/internal/client/api"
	"github.com/dmitrijs2005/edusession/internal/client/config"
	"github.com/dmitrijs2005/edusession/internal/client/hint"
	"github.com/dmitrijs2005/edusession/internal/client/session"
	"github.com/dmitrijs2005/edusession/internal/client/storage"
	"github.com/dmitrijs2005/edusession/internal/client/token"
	"github.com/dmitrijs2005/edusession/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// backend is everything the CLI asks of the server.
type backend interface {
	api.Client
	api.LearningClient
}

type App struct {
	config *config.Config
	log    logging.Logger

	api    backend
	kv     storage.PersistentKV
	tokens *token.Store
	recon  *session.Reconciler

	// optimistic is the hint read at start-up; only used while Unknown.
	optimistic bool

	mu   sync.Mutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
	closer func() error
}

// NewApp opens the local database (or an in-memory store in ephemeral mode)
// and wires the session components against the configured server.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	client, err := api.NewHTTPClient(c.ServerBaseURL, nil, api.WithIdentityTimeout(c.RequestTimeout))
	if err != nil {
		return nil, err
	}
	headers := client.Headers()

	if c.Ephemeral {
		kv := storage.NewMemoryKV()
		a := newApp(c, log, kv, headers, client, bufio.NewReader(os.Stdin), os.Stdout)
		a.closer = func() error { kv.Close(); return nil }
		return a, nil
	}

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	a := newApp(c, log, storage.NewSQLiteKV(db), headers, client, bufio.NewReader(os.Stdin), os.Stdout)
	a.closer = db.Close
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, kv storage.PersistentKV, headers *api.Headers, client backend, reader *bufio.Reader, out io.Writer) *App {
	tokens := token.NewStore(kv, headers, log)
	hints := hint.NewStore(kv, log)

	recon := session.NewReconciler(client, tokens, hints, session.NewStore(), log, session.Options{
		MountDebounce:  c.MountDebounce,
		RequestTimeout: c.RequestTimeout,
		PollAttempts:   c.PollAttempts,
		PollInterval:   c.PollInterval,
	})

	return &App{
		config: c,
		log:    log.With("component", "cli"),
		api:    client,
		kv:     kv,
		tokens: tokens,
		recon:  recon,
		mode:   ModeUnknown,
		reader: reader,
		out:    out,
	}
}

// Run restores the previous session and serves the REPL until the user
// exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.tokens.Initialize(ctx) != "" {
		a.log.Debug(ctx, "stored token re-armed")
	}
	a.optimistic = a.recon.Optimistic(ctx)

	updates, unsubscribe := a.recon.State().Subscribe()
	defer unsubscribe()
	go a.watchSession(ctx, updates)

	task := a.recon.Mount(ctx)
	defer task.Cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) close() {
	if a.closer != nil {
		if err := a.closer(); err != nil {
			a.log.Warn(context.Background(), "closing storage", "error", err)
		}
	}
}

func (a *App) watchSession(ctx context.Context, updates <-chan session.State) {
	for {
		select {
		case st, ok := <-updates:
			if !ok {
				return
			}
			if st.LoggedIn() {
				a.log.Info(ctx, "session active", "user_id", st.User.ID)
			} else {
				a.log.Info(ctx, "session state changed", "status", st.Status.String())
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.recon.State().Current().LoggedIn()
}

// status renders the prompt label from the published session state.
func (a *App) status() string {
	st := a.recon.State().Current()
	var who string
	switch st.Status {
	case session.Authenticated:
		who = st.User.Name()
		if who == "" {
			who = st.User.Email()
		}
		if who == "" {
			who = st.User.ID
		}
	case session.Anonymous:
		who = "guest"
	default:
		if a.optimistic {
			who = "welcome back"
		} else {
			who = "checking session"
		}
	}
	return fmt.Sprintf("%s | %s", who, a.Mode())
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// connectivity mode. The first check runs immediately.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := a.api.Ping(pingCtx)
		cancel()

		if err != nil {
			a.setMode(ctx, ModeOffline)
		} else {
			a.setMode(ctx, ModeOnline)
		}
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
