package analysis

import (
	"context"

	"catalogstats/internal/aggregate"
	"catalogstats/internal/catalog"
)

// MemoryBackend re-reads its source on every call: load, clean, filter, then
// aggregate. It keeps no state between calls.
type MemoryBackend struct {
	source catalog.Source
}

func NewMemoryBackend(source catalog.Source) *MemoryBackend {
	return &MemoryBackend{source: source}
}

func (b *MemoryBackend) Name() string {
	return "memory"
}

// Ping checks that the source can be opened.
func (b *MemoryBackend) Ping(ctx context.Context) error {
	rc, err := b.source.Open(ctx)
	if err != nil {
		return err
	}
	return rc.Close()
}

// Dataset loads and cleans the source, then applies f.
func (b *MemoryBackend) Dataset(ctx context.Context, f catalog.Filter) (catalog.Dataset, error) {
	ds, err := catalog.Load(ctx, b.source)
	if err != nil {
		return catalog.Dataset{}, err
	}
	cleaned, _ := catalog.Clean(ds)
	return catalog.Apply(cleaned, f), nil
}

func (b *MemoryBackend) Titles(ctx context.Context, f catalog.Filter) ([]catalog.Title, error) {
	ds, err := b.Dataset(ctx, f)
	if err != nil {
		return nil, err
	}
	return ds.Titles, nil
}

func (b *MemoryBackend) Years(ctx context.Context) ([]int, error) {
	trend, err := b.YearlyTrend(ctx, catalog.Filter{})
	if err != nil {
		return nil, err
	}
	return trend.Keys(), nil
}

func (b *MemoryBackend) GenreCounts(ctx context.Context, f catalog.Filter) (aggregate.Counts[string], error) {
	ds, err := b.Dataset(ctx, f)
	if err != nil {
		return nil, err
	}
	return aggregate.GenreCounts(ds), nil
}

func (b *MemoryBackend) RatingCounts(ctx context.Context, f catalog.Filter) (aggregate.Counts[string], error) {
	ds, err := b.Dataset(ctx, f)
	if err != nil {
		return nil, err
	}
	return aggregate.RatingCounts(ds), nil
}

func (b *MemoryBackend) YearlyTrend(ctx context.Context, f catalog.Filter) (aggregate.Counts[int], error) {
	ds, err := b.Dataset(ctx, f)
	if err != nil {
		return nil, err
	}
	return aggregate.YearlyTrend(ds), nil
}

func (b *MemoryBackend) GroupedCount(ctx context.Context, f catalog.Filter, field aggregate.Field, order aggregate.Order) (aggregate.Counts[string], error) {
	ds, err := b.Dataset(ctx, f)
	if err != nil {
		return nil, err
	}
	return aggregate.GroupedCount(ds, field, order), nil
}
