package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/basel-ax/reimagine/internal/config"
	"github.com/basel-ax/reimagine/internal/infrastructure/gemini"
	"github.com/basel-ax/reimagine/internal/janitor"
	"github.com/basel-ax/reimagine/internal/logging"
	"github.com/basel-ax/reimagine/internal/repository"
	"github.com/basel-ax/reimagine/internal/server"
	"github.com/basel-ax/reimagine/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command line flags
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	addr := flag.String("addr", "", "Listen address, overrides HTTP_ADDR")
	envFile := flag.String("env-file", ".env", "Optional environment file")
	flag.Parse()

	logger, err := logging.New(*verbose)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(logger, *envFile, *addr, *verbose); err != nil {
		logger.Fatal("studio stopped with error", zap.Error(err))
	}
}

func run(logger *zap.Logger, envFile, addr string, verbose bool) error {
	// Load configuration
	logger.Info("loading configuration", zap.String("env_file", envFile))
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	// Create context with cancellation on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		return err
	}
	logger.Info("gemini client initialized", zap.String("model", client.Model()))

	sessions := repository.NewCacheSessionRepository(cfg.Session.TTL)
	sweeper, err := janitor.New(cfg.Session.SweepSchedule, sessions, logger)
	if err != nil {
		return err
	}

	imgService := service.NewImageGenerationService(client, logger, cfg.Gemini.Timeout)
	srv := server.New(cfg.Server, sessions, imgService, logger, verbose)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		return sweeper.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
