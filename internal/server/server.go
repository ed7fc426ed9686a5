// Package server wires the HTTP API: routing, middleware stack, and the
// handlers that forward requests into the pipeline.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/middleware"
	"github.com/inkwell-nlp/inkwell/internal/monitoring"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
	"github.com/inkwell-nlp/inkwell/internal/store"
)

// Config contains server configuration.
type Config struct {
	Host              string
	Port              string
	RateLimitEnabled  bool
	RequestsPerSecond int
	Burst             int
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	log     *logging.Logger
}

// New creates a server around an initialized pipeline.
func New(cfg Config, pipe *pipeline.Pipeline, docs *store.Store, metrics *monitoring.Metrics, log *logging.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimitEnabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		}))
	}
	if metrics != nil {
		router.Use(monitoring.Middleware(metrics))
	}

	h := newHandlers(pipe, docs, metrics, log)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api")
	api.POST("/process", h.ProcessText)
	api.GET("/modules", h.ListModules)
	api.POST("/upload_audio", h.UploadAudio)
	api.POST("/save", h.SaveDocument)
	api.GET("/load", h.ListDocuments)
	api.GET("/load/:filename", h.LoadDocument)

	return &Server{
		router: router,
		httpSrv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	s.log.Info("starting HTTP server", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpSrv.Shutdown(ctx)
}
