// Package server wires configuration, storage, services and the HTTP
// endpoint together and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/userboard/internal/logging"
	"github.com/dmitrijs2005/userboard/internal/server/config"
	"github.com/dmitrijs2005/userboard/internal/server/httpapi"
	"github.com/dmitrijs2005/userboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userboard/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/userboard/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	sessionService *services.SessionService
	httpServer     *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var sessionRepo sessions.Repository
	switch c.SessionStore {
	case config.SessionStoreMemory:
		sessionRepo = sessions.NewMemoryRepository()
	default:
		sessionRepo = sessions.NewPostgresRepository(db)
	}

	us := services.NewUserService(db, rm, c)
	ss := services.NewSessionService(sessionRepo, c)

	hs, err := httpapi.NewServer(logger, us, ss, c)
	if err != nil {
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		sessionService: ss,
		httpServer:     hs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startSessionSweeper periodically removes expired sessions so the store
// does not accumulate dead rows between restarts.
func (app *App) startSessionSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.sessionService.DeleteExpired(ctx)
			if err != nil {
				app.logger.Error(ctx, "session sweep failed", "error", err.Error())
				continue
			}
			if n > 0 {
				app.logger.Debug(ctx, "expired sessions removed", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startSessionSweeper(ctx, app.config.SessionSweepInterval)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
