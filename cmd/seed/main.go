package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogstats/internal/catalog"
	"catalogstats/internal/config"
	"catalogstats/internal/ingest"
	"catalogstats/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "CSV file to import (defaults to DATA_CSV_PATH)")
		replace = flag.Bool("replace", false, "Empty the titles table before importing")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("cannot load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	if *csvPath == "" {
		*csvPath = cfg.Data.CSVPath
	}
	if cfg.Data.DSN == "" {
		logging.Fatal().Msg("DB_DSN is required for import")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Data.DSN)
	if err != nil {
		logging.Fatal().Err(err).Str("dsn", cfg.RedactedDSN()).Msg("failed to connect to database")
	}
	defer pool.Close()

	svc := ingest.NewService(catalog.NewFileSource(*csvPath), ingest.NewPostgresRepo(pool))

	start := time.Now()
	run, err := svc.Run(ctx, ingest.Options{Replace: *replace})
	if err != nil {
		logging.Error().Err(err).Str("csv", *csvPath).Msg("import failed")
		pool.Close()
		os.Exit(1)
	}
	logging.Info().
		Str("run_id", run.ID).
		Int("rows_inserted", run.RowsInserted).
		Dur("took", time.Since(start)).
		Msg("import finished")
}
