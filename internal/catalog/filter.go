package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// GenreMatch selects how Filter.Genre is compared against listed_in.
type GenreMatch int

const (
	// MatchRaw looks for the needle anywhere in the comma-joined listed_in
	// text, so "ma, Com" matches "Drama, Comedy".
	MatchRaw GenreMatch = iota
	// MatchToken compares the needle against each trimmed genre separately.
	MatchToken
)

func (m GenreMatch) String() string {
	if m == MatchToken {
		return "token"
	}
	return "raw"
}

// ParseGenreMatch maps "token" to MatchToken; anything else is MatchRaw.
func ParseGenreMatch(s string) GenreMatch {
	if strings.EqualFold(strings.TrimSpace(s), "token") {
		return MatchToken
	}
	return MatchRaw
}

// Filter narrows a Dataset. The zero value matches everything. Genre matching
// is case-insensitive.
type Filter struct {
	Year       *int
	Genre      string
	GenreMatch GenreMatch
}

func (f Filter) WithYear(year int) Filter {
	f.Year = &year
	return f
}

func (f Filter) WithGenre(genre string) Filter {
	f.Genre = genre
	return f
}

func (f Filter) WithGenreMatch(m GenreMatch) Filter {
	f.GenreMatch = m
	return f
}

func (f Filter) IsZero() bool {
	return f.Year == nil && f.Genre == ""
}

func (f Filter) String() string {
	year := "any"
	if f.Year != nil {
		year = strconv.Itoa(*f.Year)
	}
	return fmt.Sprintf("year=%s genre=%q match=%s", year, f.Genre, f.GenreMatch)
}

// Matches reports whether t passes every predicate set on f.
func (f Filter) Matches(t Title) bool {
	return f.matcher()(t)
}

func (f Filter) matcher() func(Title) bool {
	needle := strings.ToLower(f.Genre)
	return func(t Title) bool {
		if f.Year != nil && t.ReleaseYear != *f.Year {
			return false
		}
		if needle == "" {
			return true
		}
		if f.GenreMatch == MatchToken {
			for _, g := range t.Genres() {
				if strings.Contains(strings.ToLower(g), needle) {
					return true
				}
			}
			return false
		}
		return strings.Contains(strings.ToLower(t.ListedIn), needle)
	}
}

// Apply returns the titles of ds that match f, in their original order.
// ds itself is never modified.
func Apply(ds Dataset, f Filter) Dataset {
	match := f.matcher()
	out := make([]Title, 0, len(ds.Titles))
	for _, t := range ds.Titles {
		if match(t) {
			out = append(out, t)
		}
	}
	return Dataset{Columns: ds.Columns, Titles: out}
}

// ParseFilter normalises request parameters into a Filter. Empty values mean
// "no predicate". A year that is not an integer is dropped and
// ErrMalformedFilterInput is returned together with the remaining Filter.
func ParseFilter(year, genre string) (Filter, error) {
	f := Filter{Genre: genre}

	year = strings.TrimSpace(year)
	if year == "" {
		return f, nil
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return f, fmt.Errorf("%w: year %q is not an integer", ErrMalformedFilterInput, year)
	}
	return f.WithYear(y), nil
}
