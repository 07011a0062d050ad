package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"voicedetect/common/audit"
	"voicedetect/common/auth"
	"voicedetect/common/config"
	"voicedetect/common/detector"
	"voicedetect/common/observe"
	"voicedetect/services/detection-api/docs"
)

// @title          AI Voice Detection API
// @version        1.0.0
// @description    Detects whether a voice clip is AI-generated or human speech.
// @description    Supported languages: tamil, english, hindi, malayalam, telugu.

// @license.name MIT
// @license.url  https://opensource.org/licenses/MIT

// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       X-API-Key

func main() {
	configPath := flag.String("config", os.Getenv("VOICEDETECT_CONFIG"), "path to YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("detection api failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	slog.SetDefault(observe.NewLogger(cfg.Server.LogLevel, cfg.Server.LogFormat, os.Stderr))
	gin.SetMode(cfg.Server.GinMode)
	docs.SwaggerInfo.BasePath = "/api/v1"

	authenticator, err := auth.New(cfg.Auth)
	if err != nil {
		return err
	}

	provider, err := observe.NewProvider()
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	metrics, err := observe.NewMetrics(provider.MeterProvider)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = provider.Handler()
	}

	s := &server{
		cfg:      cfg,
		detector: detector.New(detector.WithLanguages(cfg.Languages()...)),
		auth:     authenticator,
		audit:    audit.Discard,
		metrics:  metrics,
		now:      time.Now,
	}

	var indexer *audit.Indexer
	if cfg.Audit.Enabled {
		sink, err := audit.NewElasticsearchSink(cfg.Audit)
		if err != nil {
			return err
		}
		indexer = audit.NewIndexer(sink, cfg.Audit.QueueSize, metrics.RecordAuditDrop)
		s.audit = indexer
		s.checkers = append(s.checkers, Checker{Name: "elasticsearch", Check: sink.Ping})
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(s, metricsHandler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting detection api",
			slog.String("addr", cfg.Server.Addr),
			slog.String("auth_mode", string(cfg.Auth.Mode)),
			slog.Bool("audit", cfg.Audit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Wait for interrupt signal to gracefully shut down the server
		<-gctx.Done()
		slog.Info("shutting down detection api")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server forced to shutdown: %w", err))
		}
		if indexer != nil {
			if err := indexer.Close(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("audit drain: %w", err))
			}
		}
		if err := provider.MeterProvider.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("detection api exited")
	return nil
}
