package ingest

import (
	"context"
	"fmt"

	"catalogstats/internal/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
	InsertTitles(ctx context.Context, runID string, titles []catalog.Title, replace bool) (int, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) error {
	const sql = `
		INSERT INTO import_runs (id, source, replace, started_at, status)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, sql, run.ID, run.Source, run.Replace, run.StartedAt, run.Status)
	return err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE import_runs SET
			finished_at = $1,
			status = $2,
			rows_read = $3,
			rows_cleaned = $4,
			rows_inserted = $5,
			error = NULLIF($6, '')
		WHERE id = $7`

	_, err := r.db.Exec(ctx, sql, run.FinishedAt, run.Status, run.RowsRead, run.RowsCleaned, run.RowsInserted, run.Error, run.ID)
	return err
}

var titleColumns = []string{
	"import_run_id", "title", "type", "release_year", "rating", "duration", "listed_in", "country", "extra",
}

// InsertTitles bulk-copies titles in order inside one transaction. Row order
// becomes id order, which the store relies on for tie-breaking. With replace
// the table is emptied first, in the same transaction.
func (r *PostgresRepo) InsertTitles(ctx context.Context, runID string, titles []catalog.Title, replace bool) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if replace {
		if _, err := tx.Exec(ctx, "TRUNCATE titles RESTART IDENTITY"); err != nil {
			return 0, fmt.Errorf("truncate titles: %w", err)
		}
	}

	rows := make([][]any, len(titles))
	for i, t := range titles {
		extra := t.Extra
		if extra == nil {
			extra = map[string]string{}
		}
		rows[i] = []any{runID, t.Title, t.Type, t.ReleaseYear, t.Rating, t.Duration, t.ListedIn, t.Country, extra}
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"titles"}, titleColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy titles: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(n), nil
}
