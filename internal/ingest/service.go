package ingest

import (
	"context"
	"fmt"
	"time"

	"catalogstats/internal/catalog"
	"catalogstats/internal/logging"
	"catalogstats/internal/metrics"

	"github.com/google/uuid"
)

type Options struct {
	// Replace empties the titles table before inserting.
	Replace bool
}

type Service struct {
	source catalog.Source
	repo   Repository
}

func NewService(source catalog.Source, repo Repository) *Service {
	return &Service{source: source, repo: repo}
}

// Run loads and cleans the source and inserts the result. The run is recorded
// before any work starts and updated with counts and status when it ends,
// whether or not it succeeded.
func (s *Service) Run(ctx context.Context, opts Options) (run *Run, err error) {
	run = &Run{
		ID:        uuid.NewString(),
		Source:    s.source.Name(),
		Replace:   opts.Replace,
		StartedAt: time.Now(),
		Status:    StatusRunning,
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create import run: %w", err)
	}

	log := logging.Ctx(ctx).With().Str("run_id", run.ID).Str("source", run.Source).Logger()

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
		}
		if updateErr := s.repo.UpdateRun(ctx, run); updateErr != nil {
			log.Error().Err(updateErr).Msg("failed to update import run")
		}
	}()

	ds, err := catalog.Load(ctx, s.source)
	if err != nil {
		return run, err
	}
	run.RowsRead = ds.Len()

	cleaned, _ := catalog.Clean(ds)
	run.RowsCleaned = cleaned.Len()

	n, err := s.repo.InsertTitles(ctx, run.ID, cleaned.Titles, opts.Replace)
	if err != nil {
		return run, err
	}
	run.RowsInserted = n
	metrics.ImportedRows.Add(float64(n))

	log.Info().
		Int("rows_read", run.RowsRead).
		Int("rows_cleaned", run.RowsCleaned).
		Int("rows_inserted", run.RowsInserted).
		Bool("replace", run.Replace).
		Msg("import completed")
	return run, nil
}
