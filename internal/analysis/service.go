package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"catalogstats/internal/aggregate"
	"catalogstats/internal/catalog"
	"catalogstats/internal/chart"
	"catalogstats/internal/logging"
	"catalogstats/internal/metrics"
)

const DefaultTopGenres = 10

type Service struct {
	backend   Backend
	renderer  chart.Renderer
	staticDir string
	topGenres int
}

func NewService(backend Backend, renderer chart.Renderer, staticDir string, topGenres int) *Service {
	if topGenres <= 0 {
		topGenres = DefaultTopGenres
	}
	return &Service{backend: backend, renderer: renderer, staticDir: staticDir, topGenres: topGenres}
}

func (s *Service) Backend() Backend {
	return s.backend
}

func (s *Service) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *Service) Titles(ctx context.Context, f catalog.Filter) ([]catalog.Title, error) {
	defer metrics.ObserveAnalysis("titles", s.backend.Name(), time.Now())
	return s.backend.Titles(ctx, f)
}

func (s *Service) Years(ctx context.Context) ([]int, error) {
	defer metrics.ObserveAnalysis("years", s.backend.Name(), time.Now())
	return s.backend.Years(ctx)
}

// Series computes the named aggregate under f and converts it to chart data.
// The genre chart is limited to the configured top N.
func (s *Service) Series(ctx context.Context, name ChartName, f catalog.Filter) (chart.Series, error) {
	defer metrics.ObserveAnalysis(string(name), s.backend.Name(), time.Now())

	switch name {
	case ChartGenres:
		counts, err := s.backend.GenreCounts(ctx, f)
		if err != nil {
			return chart.Series{}, err
		}
		return chart.ToSeries(counts.Top(s.topGenres)), nil
	case ChartRatings:
		counts, err := s.backend.RatingCounts(ctx, f)
		if err != nil {
			return chart.Series{}, err
		}
		return chart.ToSeries(counts), nil
	case ChartTrend:
		counts, err := s.backend.YearlyTrend(ctx, f)
		if err != nil {
			return chart.Series{}, err
		}
		return chart.ToSeries(counts), nil
	case ChartByYear:
		return s.grouped(ctx, f, aggregate.FieldReleaseYear, aggregate.ByKeyAsc)
	case ChartByCountry:
		return s.grouped(ctx, f, aggregate.FieldCountry, aggregate.ByCountDesc)
	case ChartByType:
		return s.grouped(ctx, f, aggregate.FieldType, aggregate.ByCountDesc)
	default:
		return chart.Series{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
}

func (s *Service) grouped(ctx context.Context, f catalog.Filter, field aggregate.Field, order aggregate.Order) (chart.Series, error) {
	counts, err := s.backend.GroupedCount(ctx, f, field, order)
	if err != nil {
		return chart.Series{}, err
	}
	return chart.ToSeries(counts), nil
}

// Image is a rendered chart together with the data it was drawn from.
type Image struct {
	Chart  ChartName    `json:"chart"`
	Kind   chart.Kind   `json:"kind"`
	Series chart.Series `json:"series"`
	PNG    string       `json:"image,omitempty"`
	Error  string       `json:"image_error,omitempty"`
}

// Image renders the named chart in memory. When kind is empty the chart's
// default kind is used. An empty series is returned without an image, and a
// render failure is reported in Error with the series still filled in.
func (s *Service) Image(ctx context.Context, name ChartName, kind chart.Kind, f catalog.Filter) (Image, error) {
	series, err := s.Series(ctx, name, f)
	if err != nil {
		return Image{}, err
	}
	opts := name.options(kind)
	img := Image{Chart: name, Kind: opts.Kind, Series: series}
	if series.Len() == 0 {
		return img, nil
	}
	png, err := chart.RenderBase64(s.renderer, series, opts)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("chart", string(name)).Msg("chart render failed")
		img.Error = err.Error()
		return img, nil
	}
	img.PNG = png
	return img, nil
}

// RenderedChart is one overview chart. File is the saved image name relative
// to the static directory and PNG the inline base64 image; at most one is
// set. Error is set instead when rendering failed.
type RenderedChart struct {
	Chart  ChartName    `json:"chart"`
	Kind   chart.Kind   `json:"kind"`
	Series chart.Series `json:"series"`
	File   string       `json:"file,omitempty"`
	PNG    string       `json:"image,omitempty"`
	Error  string       `json:"image_error,omitempty"`
}

// Overview computes the overview aggregates. The unfiltered overview is saved
// under fixed names in the static directory; a filtered one is returned
// inline so request parameters never create files. A failed render is
// reported on the chart and does not fail the overview; a failed aggregate
// does.
func (s *Service) Overview(ctx context.Context, f catalog.Filter) ([]RenderedChart, error) {
	return s.overview(ctx, f, f.IsZero())
}

// SaveOverview is Overview with every chart saved as <chart>.png, whatever
// the filter.
func (s *Service) SaveOverview(ctx context.Context, f catalog.Filter) ([]RenderedChart, error) {
	return s.overview(ctx, f, true)
}

func (s *Service) overview(ctx context.Context, f catalog.Filter, save bool) ([]RenderedChart, error) {
	out := make([]RenderedChart, 0, len(OverviewCharts))
	for _, name := range OverviewCharts {
		series, err := s.Series(ctx, name, f)
		if err != nil {
			return nil, err
		}
		opts := name.options("")
		rc := RenderedChart{Chart: name, Kind: opts.Kind, Series: series}
		if series.Len() > 0 {
			if save {
				err = s.saveChart(&rc, opts)
			} else {
				rc.PNG, err = chart.RenderBase64(s.renderer, series, opts)
			}
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("chart", string(name)).Msg("chart render failed")
				rc.Error = err.Error()
			}
		}
		out = append(out, rc)
	}
	return out, nil
}

func (s *Service) saveChart(rc *RenderedChart, opts chart.Options) error {
	file := string(rc.Chart) + ".png"
	if _, err := chart.RenderFile(s.renderer, s.staticDir, file, rc.Series, opts); err != nil {
		return err
	}
	rc.File = file
	return nil
}

// ImagePath is the on-disk location of a file returned by Overview.
func (s *Service) ImagePath(file string) string {
	return filepath.Join(s.staticDir, file)
}
