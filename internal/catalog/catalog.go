package catalog

import (
	"strings"
)

// Column names recognised in the tabular source.
const (
	ColTitle       = "title"
	ColType        = "type"
	ColReleaseYear = "release_year"
	ColRating      = "rating"
	ColDuration    = "duration"
	ColListedIn    = "listed_in"
	ColCountry     = "country"
)

// NotAvailable is the label absent countries are grouped under.
const NotAvailable = "Not Available"

// Title is one row of the catalog. ReleaseYear is zero when the source
// cell was empty or not an integer.
type Title struct {
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	ReleaseYear int               `json:"release_year"`
	Rating      *string           `json:"rating"`
	Duration    *string           `json:"duration,omitempty"`
	ListedIn    string            `json:"listed_in"`
	Country     *string           `json:"country,omitempty"`
	Extra       map[string]string `json:"-"`
}

// Genres splits ListedIn on commas, trimming each token and skipping empty ones.
func (t Title) Genres() []string {
	return SplitGenres(t.ListedIn)
}

// SplitGenres explodes a comma-joined genre list.
func SplitGenres(listedIn string) []string {
	if listedIn == "" {
		return nil
	}
	parts := strings.Split(listedIn, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CountryLabel returns the country, or NotAvailable when absent or blank.
func (t Title) CountryLabel() string {
	if t.Country == nil || strings.TrimSpace(*t.Country) == "" {
		return NotAvailable
	}
	return *t.Country
}

// Dataset is an ordered collection of titles plus the header it was read with.
type Dataset struct {
	Columns []string
	Titles  []Title
}

func (d Dataset) Len() int {
	return len(d.Titles)
}

// StringPtr is a helper for building optional fields.
func StringPtr(s string) *string {
	return &s
}
