package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"catalogstats/internal/logging"
	"catalogstats/internal/metrics"
)

// missingValues are the cell contents treated as absent.
var missingValues = []string{"", "NA", "NaN", "<nil>"}

var requiredColumns = []string{ColTitle, ColType, ColReleaseYear, ColListedIn}

// Load reads the source into a Dataset, preserving row order and all columns.
func Load(ctx context.Context, src Source) (Dataset, error) {
	log := logging.Ctx(ctx)

	rc, err := src.Open(ctx)
	if err != nil {
		metrics.LoadErrors.WithLabelValues(errorKind(err)).Inc()
		log.Error().Err(err).Str("source", src.Name()).Msg("dataset load failed")
		return Dataset{}, err
	}
	defer rc.Close()

	ds, err := Read(rc)
	if err != nil {
		metrics.LoadErrors.WithLabelValues(errorKind(err)).Inc()
		log.Error().Err(err).Str("source", src.Name()).Msg("dataset load failed")
		return Dataset{}, err
	}

	metrics.RowsLoaded.Add(float64(ds.Len()))
	log.Info().
		Str("source", src.Name()).
		Int("rows", ds.Len()).
		Int("columns", len(ds.Columns)).
		Msg("dataset loaded")
	return ds, nil
}

// LoadFile is Load for a path on disk.
func LoadFile(ctx context.Context, path string) (Dataset, error) {
	return Load(ctx, NewFileSource(path))
}

// Read parses CSV text with a header row into a Dataset.
func Read(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return Dataset{}, fmt.Errorf("%w: %v", ErrMalformedSource, err)
		}
		return Dataset{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Dataset{}, fmt.Errorf("%w: no header", ErrEmptySource)
	}

	header := normalizeHeader(records[0])
	if isBlank(header) {
		return Dataset{}, fmt.Errorf("%w: no parsable header", ErrEmptySource)
	}
	for _, col := range requiredColumns {
		if !slices.Contains(header, col) {
			return Dataset{}, fmt.Errorf("%w: missing column %q", ErrMalformedSource, col)
		}
	}
	if len(records) == 1 {
		return Dataset{}, fmt.Errorf("%w: no rows", ErrEmptySource)
	}
	records[0] = header

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingValues),
	)
	if df.Err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrMalformedSource, df.Err)
	}

	return fromDataFrame(df), nil
}

func fromDataFrame(df dataframe.DataFrame) Dataset {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = df.Col(name)
	}

	titles := make([]Title, df.Nrow())
	for row := range titles {
		var t Title
		for i, name := range names {
			elem := cols[i].Elem(row)
			value, ok := cellValue(elem)
			switch name {
			case ColTitle:
				t.Title = value
			case ColType:
				t.Type = value
			case ColReleaseYear:
				t.ReleaseYear = parseYear(value)
			case ColRating:
				t.Rating = optional(value, ok)
			case ColDuration:
				t.Duration = optional(value, ok)
			case ColListedIn:
				t.ListedIn = value
			case ColCountry:
				t.Country = optional(value, ok)
			default:
				if !ok {
					continue
				}
				if t.Extra == nil {
					t.Extra = make(map[string]string)
				}
				t.Extra[name] = value
			}
		}
		titles[row] = t
	}

	return Dataset{Columns: names, Titles: titles}
}

func cellValue(e series.Element) (string, bool) {
	if e.IsNA() {
		return "", false
	}
	return e.String(), true
}

func optional(value string, ok bool) *string {
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// parseYear accepts "2020" and integral floats such as "2020.0".
func parseYear(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if y, err := strconv.Atoi(value); err == nil {
		return y
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func isBlank(header []string) bool {
	for _, h := range header {
		if h != "" {
			return false
		}
	}
	return true
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrSourceNotFound):
		return "not_found"
	case errors.Is(err, ErrEmptySource):
		return "empty"
	case errors.Is(err, ErrMalformedSource):
		return "malformed"
	default:
		return "io"
	}
}
