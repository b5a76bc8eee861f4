package server

import (
	"context"
	"log/slog"
	"net/http"

	appplayers "github.com/preston-bernstein/sunday-game-service/internal/app/players"
	appteams "github.com/preston-bernstein/sunday-game-service/internal/app/teams"
	"github.com/preston-bernstein/sunday-game-service/internal/config"
	httpserver "github.com/preston-bernstein/sunday-game-service/internal/http"
	"github.com/preston-bernstein/sunday-game-service/internal/http/handlers"
	"github.com/preston-bernstein/sunday-game-service/internal/http/middleware"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
	"github.com/preston-bernstein/sunday-game-service/internal/metrics"
	"github.com/preston-bernstein/sunday-game-service/internal/uploads"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	storage        storageComponents
	playersService *appplayers.Service
	httpServer     httpServer
	metricsServer  httpServer
	metricsStop    func(context.Context) error
}

// New constructs a server with storage, metrics and HTTP wiring from cfg.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	storage := buildStorage(context.Background(), cfg, logger, recorder)
	playerSvc := appplayers.NewService(storage.selector)
	teamSvc := appteams.NewService(storage.selector)
	photos := uploads.NewStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	httpSrv := buildHTTPServer(cfg, storage, playerSvc, teamSvc, photos, logger, recorder)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		storage:        storage,
		playersService: playerSvc,
		httpServer:     httpSrv,
		metricsServer:  metricsSrv,
		metricsStop:    metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, storage storageComponents) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		storage:    storage,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, storage storageComponents, playerSvc *appplayers.Service, teamSvc *appteams.Service, photos *uploads.Store, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(playerSvc, logger,
		handlers.WithTeams(teamSvc),
		handlers.WithUploads(photos),
		handlers.WithStorageStatus(storage.selector),
		handlers.WithRecorder(recorder),
	)
	router := httpserver.NewRouter(handler, cfg.Uploads.Dir)
	wrapped := middleware.CORS(cfg.CORS.AllowedOrigins, middleware.LoggingMiddleware(logger, recorder, router))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP and metrics servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.storage.close(shutdownCtx); err != nil {
		logging.Warn(s.logger, "document store disconnect failed", logging.FieldError, err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
