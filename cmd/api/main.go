package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogstats/internal/analysis"
	"catalogstats/internal/catalog"
	"catalogstats/internal/chart"
	"catalogstats/internal/config"
	apphttp "catalogstats/internal/http"
	"catalogstats/internal/logging"
	"catalogstats/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("cannot load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend := mustOpenBackend(ctx, cfg)
	defer closeBackend()

	renderer := chart.NewGoChartRenderer(cfg.Chart.Width, cfg.Chart.Height)
	svc := analysis.NewService(backend, renderer, cfg.Chart.StaticDir, cfg.Chart.TopGenres)

	router := apphttp.NewRouter(ctx, svc, apphttp.RouterConfig{
		StaticDir:      cfg.Chart.StaticDir,
		CORSOrigins:    cfg.Security.CORSOrigins,
		RateLimitRPS:   cfg.Security.RateLimitRPS,
		RateLimitBurst: cfg.Security.RateLimitBurst,
		TrustedProxies: cfg.Security.TrustedProxies,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logging.Info().
		Str("addr", cfg.Server.Addr).
		Str("backend", backend.Name()).
		Str("static_dir", cfg.Chart.StaticDir).
		Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("server error")
	}
	logging.Info().Msg("server stopped")
}

// mustOpenBackend picks the analysis backend for cfg.Data.Source. The returned
// func releases whatever the backend holds.
func mustOpenBackend(ctx context.Context, cfg *config.Config) (analysis.Backend, func()) {
	if cfg.Data.Source != config.SourcePostgres {
		logging.Info().Str("csv_path", cfg.Data.CSVPath).Msg("serving from file")
		return analysis.NewMemoryBackend(catalog.NewFileSource(cfg.Data.CSVPath)), func() {}
	}

	pool := mustOpenDB(ctx, cfg)
	return store.NewTitlePG(pool), pool.Close
}

func mustOpenDB(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, cfg.Data.DSN)
	if err != nil {
		logging.Fatal().Err(err).Str("dsn", cfg.RedactedDSN()).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logging.Fatal().Err(err).Str("dsn", cfg.RedactedDSN()).Msg("cannot ping database")
	}
	logging.Info().Str("dsn", cfg.RedactedDSN()).Msg("database connection OK")
	return pool
}
