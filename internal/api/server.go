// Package api exposes the tracker over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bagbuilder-go/internal/auth"
	"bagbuilder-go/internal/config"
	"bagbuilder-go/internal/store"
	"bagbuilder-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the HTTP interface of the tracker.
type Server struct {
	server *http.Server
	engine *gin.Engine
	logger *zap.Logger
}

// NewServer wires the routes. Everything under /api except session creation
// requires a bearer token.
func NewServer(cfg config.Server, svc *tracker.Service, st store.Store, jwt auth.JWT, logger *zap.Logger) *Server {
	logger = logger.Named("api-server")

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	(&HealthHandler{Store: st}).Register(engine)
	(&SessionHandler{JWT: jwt, Logger: logger}).Register(engine)

	authed := engine.Group("/api", auth.Middleware(jwt))
	(&ProfileHandler{Tracker: svc, Logger: logger}).Register(authed)
	(&TradeHandler{Tracker: svc, Logger: logger}).Register(authed)
	(&WalletHandler{Tracker: svc, Logger: logger}).Register(authed)
	(&JournalHandler{Tracker: svc, Logger: logger}).Register(authed)
	(&ReportHandler{Tracker: svc, Logger: logger}).Register(authed)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		engine: engine,
		logger: logger,
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the HTTP server in a new goroutine. Listen errors are sent on
// the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server failed", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
