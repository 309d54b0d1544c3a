// Package httpapi exposes the HTTP surface: login, registration, logout and
// the user-management API, guarded by session and admin middleware.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/dmitrijs2005/userboard/internal/logging"
	"github.com/dmitrijs2005/userboard/internal/server/config"
	"github.com/dmitrijs2005/userboard/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address      string
	users        *services.UserService
	sessions     *services.SessionService
	logger       logging.Logger
	cookieName   string
	cookieSecure bool
}

func NewServer(l logging.Logger, us *services.UserService, ss *services.SessionService, cfg *config.Config) (*Server, error) {
	return &Server{
		address:      cfg.EndpointAddr,
		logger:       l.With("module", "http_server"),
		users:        us,
		sessions:     ss,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
	}, nil
}

// routes wires the public surface. Browser-facing routes redirect on a
// missing session; /api routes answer 403 instead.
func (s *Server) routes() http.Handler {
	router := httprouter.New()

	router.Handle(http.MethodGet, "/", s.handleIndex)
	router.Handle(http.MethodPost, "/login", s.handleLogin)
	router.Handle(http.MethodPost, "/register", s.handleRegister)
	router.Handle(http.MethodGet, "/logout", s.requireSession(s.handleLogout, false))

	router.Handle(http.MethodGet, "/api/users", s.requireSession(s.handleListUsers, true))
	router.Handle(http.MethodDelete, "/api/users/:id", s.requireAdmin(s.handleDeleteUser))

	return router
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
