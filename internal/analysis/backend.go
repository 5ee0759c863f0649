package analysis

import (
	"context"

	"catalogstats/internal/aggregate"
	"catalogstats/internal/catalog"
)

//go:generate mockgen -source=backend.go -destination=mock_backend.go -package=analysis

// Backend answers filter and aggregate questions about the catalog. The
// in-memory engine and the Postgres store both implement it and must agree
// on results, including tie order.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Titles(ctx context.Context, f catalog.Filter) ([]catalog.Title, error)
	Years(ctx context.Context) ([]int, error)
	GenreCounts(ctx context.Context, f catalog.Filter) (aggregate.Counts[string], error)
	RatingCounts(ctx context.Context, f catalog.Filter) (aggregate.Counts[string], error)
	YearlyTrend(ctx context.Context, f catalog.Filter) (aggregate.Counts[int], error)
	GroupedCount(ctx context.Context, f catalog.Filter, field aggregate.Field, order aggregate.Order) (aggregate.Counts[string], error)
}
