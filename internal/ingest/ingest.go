// Package ingest copies a cleaned tabular source into the titles table.
package ingest

import (
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run is one import attempt, persisted in import_runs.
type Run struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`
	Replace      bool       `json:"replace"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Status       string     `json:"status"`
	RowsRead     int        `json:"rows_read"`
	RowsCleaned  int        `json:"rows_cleaned"`
	RowsInserted int        `json:"rows_inserted"`
	Error        string     `json:"error,omitempty"`
}
