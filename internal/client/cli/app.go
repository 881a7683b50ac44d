package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/client/config"
	"github.com/dmitrijs2005/zkvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zkvault/internal/client/services"
	"github.com/dmitrijs2005/zkvault/internal/client/vault"
	"github.com/dmitrijs2005/zkvault/internal/filex"
	"github.com/dmitrijs2005/zkvault/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// OnlineCheckInterval is how often the REPL pings the server.
const OnlineCheckInterval = 30 * time.Second

// Seams for process-level side effects.
var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
	exitFn        = os.Exit
	newAPIClient  = func(addr string) (client.Client, error) { return client.NewVaultClient(addr) }
)

// destroyer is the part of vault.Session the App needs on exit.
type destroyer interface {
	Destroy()
}

type App struct {
	config       *config.Config
	authService  services.AuthService
	entryService services.EntryService
	session      destroyer
	db           *sql.DB
	logger       logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the local database, restores the saved session and connects
// the API client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewText(os.Stderr, level)

	if _, err := filex.EnsureDir(filepath.Dir(c.DatabasePath)); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	sess, err := vault.Open(ctx, metadata.NewSessionStore(db), vault.WithLogger(logger.With("module", "session")))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	apiClient, err := newAPIClient(c.ServerEndpointAddr)
	if err != nil {
		sess.Destroy()
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, sess, c.MinPasswordScore, logger.With("module", "auth_service"))
	es := services.NewEntryService(apiClient, sess, logger.With("module", "entry_service"))

	return &App{
		config:       c,
		authService:  as,
		entryService: es,
		session:      sess,
		db:           db,
		logger:       logger,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Close zeroes the key and releases the API connection and the database.
func (a *App) Close() error {
	if a.session != nil {
		a.session.Destroy()
	}
	var errs []error
	if a.authService != nil {
		errs = append(errs, a.authService.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// initSignalHandler zeroes the key and exits on SIGINT, SIGTERM or SIGQUIT.
func (a *App) initSignalHandler(ctx context.Context) {
	sigs := make(chan os.Signal, 1)
	notifySignals(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer stopSignals(sigs)
		select {
		case <-sigs:
			if a.session != nil {
				a.session.Destroy()
			}
			fmt.Fprintln(a.out)
			exitFn(130)
		case <-ctx.Done():
		}
	}()
}

// Run executes args as a single command, or starts the REPL when args is
// empty. It returns a process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.initSignalHandler(ctx)

	if len(args) == 0 {
		a.interactive = true
		go a.StartOnlineStatusWatcher(ctx, OnlineCheckInterval)
		a.Root(ctx)
		return ExitOK
	}

	err := a.execute(ctx, args[0], args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage), errors.Is(err, errUnknownCommand):
		return ExitUsage
	default:
		return ExitError
	}
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) currentMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval and updates the
// mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
