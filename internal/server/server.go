package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/basel-ax/reimagine/internal/config"
	"github.com/basel-ax/reimagine/internal/domain"
	"github.com/basel-ax/reimagine/internal/repository"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Generator runs one generation attempt against a session
type Generator interface {
	Generate(ctx context.Context, sess *domain.Session, sub domain.Submission) (*domain.GenerationResult, error)
}

// Server serves the interactive image generation UI
type Server struct {
	*gin.Engine

	config    config.ServerConfig
	sessions  repository.SessionRepository
	generator Generator
	logger    *zap.Logger
	server    *http.Server
}

// New creates the server and registers its routes
func New(cfg config.ServerConfig, sessions repository.SessionRepository, generator Generator, logger *zap.Logger, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxMultipartMemory
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	engine.Use(Recovery(logger), AccessLog(logger))

	srv := &Server{
		Engine:    engine,
		config:    cfg,
		sessions:  sessions,
		generator: generator,
		logger:    logger,
	}
	srv.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}
	srv.setupRoutes()
	return srv
}

// Run listens on the configured address until Shutdown is called
func (srv *Server) Run() error {
	srv.logger.Info("run server", zap.String("addr", srv.config.Addr))
	err := srv.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.server.Shutdown(ctx)
}
