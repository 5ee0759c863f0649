package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"catalogstats/internal/config"
	"catalogstats/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("cannot load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	if err := run(cfg, *command, *name); err != nil {
		logging.Error().Err(err).Str("command", *command).Msg("migration failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, command, name string) error {
	dir := cfg.Migrations

	// create only writes a file and needs no database
	if command == "create" {
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return err
		}
		logging.Info().Str("name", name).Str("dir", dir).Msg("migration created")
		return nil
	}

	if cfg.Data.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Data.DSN)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.RedactedDSN(), err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return err
		}
		logging.Info().Msg("migrations applied successfully")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return err
		}
		logging.Info().Msg("migrations rolled back successfully")
	case "status":
		return goose.Status(db, dir)
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
	}
	return nil
}
