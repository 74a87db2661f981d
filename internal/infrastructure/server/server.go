package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/Kuldeep2thakur/depression/internal/api/http"
	"github.com/Kuldeep2thakur/depression/internal/api/middleware"
	"github.com/Kuldeep2thakur/depression/internal/content"
	"github.com/Kuldeep2thakur/depression/internal/infrastructure/config"
	"github.com/Kuldeep2thakur/depression/internal/infrastructure/logging"
	"github.com/Kuldeep2thakur/depression/internal/infrastructure/monitoring"
	"github.com/Kuldeep2thakur/depression/internal/media"
	"github.com/Kuldeep2thakur/depression/internal/scoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	store   *content.Store
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer loads content and the scoring table and builds the router.
// A missing page or an invalid table is fatal; a missing video is not.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing content server",
		zap.String("addr", cfg.Address()),
		zap.String("media_path", cfg.Media.Path),
		zap.String("pages_dir", cfg.Content.PagesDir),
	)

	store, err := content.Load(content.Options{
		PagesDir:         cfg.Content.PagesDir,
		Compress:         cfg.Content.Compress,
		MediaPath:        cfg.Media.Path,
		MediaContentType: cfg.Media.ContentType,
		Logger:           logger.Named("content"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	table := scoring.DefaultTable()
	if cfg.Scoring.TablePath != "" {
		table, err = scoring.LoadTable(cfg.Scoring.TablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scoring table: %w", err)
		}
		logger.Info("Scoring table loaded",
			zap.String("path", cfg.Scoring.TablePath),
			zap.Int("bands", len(table.Bands())),
			zap.Int("max_score", table.MaxScore()),
		)
	}

	metrics := monitoring.NewMetrics()

	if !cfg.Logging.Development && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))
	if cfg.CORS.Enabled {
		router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           middleware.DefaultRateLimitConfig().IdleTTL,
		}))
	}

	handlers := apihttp.NewHandlers(
		store,
		media.NewStreamer(cfg.Media.ChunkSize),
		scoring.NewEngine(table, cfg.Scoring.MaxBodyBytes),
		apihttp.NewHandlerMetrics(metrics),
		logger.Named("handlers"),
	)

	apihttp.Register(router, handlers.Routes())
	if cfg.Ops.Health {
		router.GET("/health", handlers.Health)
	}
	if cfg.Ops.Metrics {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	router.NoRoute(handlers.NotFound)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         cfg.Address(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		store:   store,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.http.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Graceful shutdown timed out, closing connections", zap.Error(err))
		_ = s.http.Close()
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	s.logger.Info("Server stopped")
	_ = s.logger.Sync()
	return nil
}
