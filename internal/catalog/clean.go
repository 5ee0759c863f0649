package catalog

import (
	"strings"

	"catalogstats/internal/logging"
	"catalogstats/internal/metrics"
)

// CleanReport describes what Clean removed.
type CleanReport struct {
	Before  int `json:"before"`
	After   int `json:"after"`
	Removed int `json:"removed"`
}

// Clean drops titles missing a title, type or release year. Other fields are
// not validated. The input Dataset is left untouched.
func Clean(ds Dataset) (Dataset, CleanReport) {
	kept := make([]Title, 0, len(ds.Titles))
	for _, t := range ds.Titles {
		if isComplete(t) {
			kept = append(kept, t)
		}
	}

	report := CleanReport{
		Before:  len(ds.Titles),
		After:   len(kept),
		Removed: len(ds.Titles) - len(kept),
	}
	metrics.RowsDropped.Add(float64(report.Removed))
	logging.Info().
		Int("before", report.Before).
		Int("after", report.After).
		Int("removed", report.Removed).
		Msg("dataset cleaned")

	return Dataset{Columns: ds.Columns, Titles: kept}, report
}

func isComplete(t Title) bool {
	return strings.TrimSpace(t.Title) != "" &&
		strings.TrimSpace(t.Type) != "" &&
		t.ReleaseYear != 0
}
