package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/quake-catalog-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-catalog-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-catalog-service/internal/boundary"
	"github.com/couchcryptid/quake-catalog-service/internal/config"
	"github.com/couchcryptid/quake-catalog-service/internal/domain"
	"github.com/couchcryptid/quake-catalog-service/internal/feed"
	"github.com/couchcryptid/quake-catalog-service/internal/observability"
	"github.com/couchcryptid/quake-catalog-service/internal/usgs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// The boundary dataset parse happens exactly once, here. A failure is an
	// initialization fault, not something a poll cycle can recover from.
	var boundaries domain.BoundaryLookup
	if cfg.CountryCode != "" {
		idx, err := boundary.Shared()
		if err != nil {
			logger.Error("failed to load boundary dataset", "error", err)
			os.Exit(1)
		}
		boundaries = idx
		logger.Info("country filtering enabled", "country", cfg.CountryCode)
	} else {
		logger.Info("country filtering disabled")
	}

	client := usgs.NewClient(cfg.USGSBaseURL, boundaries, cfg.USGSTimeout, metrics, logger)
	fetcher := feed.NewCatalogFetcher(client, cfg)
	writer := kafkaadapter.NewWriter(cfg, logger)

	f := feed.New(fetcher, writer, cfg.PollInterval, cfg.WindowOverlap, cfg.SeenCacheSize,
		clockwork.NewRealClock(), logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, f, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := f.Run(ctx); err != nil {
			logger.Error("feed error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
