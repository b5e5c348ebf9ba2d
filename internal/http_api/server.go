package http_api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/argab/lottery/internal/models"
	"github.com/argab/lottery/internal/receipt"
	"github.com/argab/lottery/pkg/logger"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second

	// readHeaderTimeout bounds slow clients sending request headers
	readHeaderTimeout = 10 * time.Second
)

// Options configures the HTTP server.
type Options struct {
	Port           int
	Development    bool
	AllowedOrigins []string
	SessionTTL     time.Duration

	// Organization and TelebirrOwner are shown on pages and receipts.
	Organization  string
	TelebirrOwner string
}

// HTTPServer is the HTTP server struct that will serve the site and the admin panel
type HTTPServer struct {
	// logger is the logger instance
	logger *logger.Logger

	// router is the HTTP router
	router *gin.Engine
	// addr is the address on which the server will listen
	addr string

	// server is the underlying HTTP server
	server *http.Server

	// lottery is the main application struct
	lottery models.LotteryI
	// gate authorizes admin sessions
	gate models.AdminAuthGate

	sessionTTL time.Duration
	issuer     receipt.Issuer
}

var _ models.APIServer = (*HTTPServer)(nil)

// NewHTTPServer creates a new HTTP server instance
func NewHTTPServer(lottery models.LotteryI, gate models.AdminAuthGate, opts Options, logger *logger.Logger) (*HTTPServer, error) {
	if !opts.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(opts.AllowedOrigins))
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	addr := fmt.Sprintf("0.0.0.0:%v", opts.Port)
	server := &HTTPServer{
		router: router,
		addr:   addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		lottery:    lottery,
		gate:       gate,
		logger:     logger,
		sessionTTL: opts.SessionTTL,
		issuer: receipt.Issuer{
			Organization:  opts.Organization,
			TelebirrOwner: opts.TelebirrOwner,
		},
	}

	// Define routes
	server.routes()

	return server, nil
}

// Start starts the HTTP server and blocks until it is shut down.
func (s *HTTPServer) Start() {
	s.logger.Infow("Starting HTTP server", "address", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Fatal("Failed to start the HTTP server: ", err)
	}
}

// Shutdown gracefully shuts down the HTTP server. Calling it before Start
// makes a later Start return immediately.
func (s *HTTPServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server shut down successfully")
	return nil
}
