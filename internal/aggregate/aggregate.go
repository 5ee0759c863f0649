// Package aggregate reduces a catalog.Dataset into ordered category counts.
//
// Every reducer is total: an empty Dataset yields an empty, non-nil Counts.
// Ties in count-ordered results keep the order in which keys were first seen.
package aggregate

import (
	"cmp"
	"slices"
	"strconv"

	"catalogstats/internal/catalog"
)

// Entry is one category and how many titles fell into it.
type Entry[K cmp.Ordered] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// Counts is an ordered mapping from category to count.
type Counts[K cmp.Ordered] []Entry[K]

// Top returns at most n leading entries.
func (c Counts[K]) Top(n int) Counts[K] {
	if n < 0 || n >= len(c) {
		return c
	}
	return c[:n]
}

// Total sums every count.
func (c Counts[K]) Total() int {
	total := 0
	for _, e := range c {
		total += e.Count
	}
	return total
}

func (c Counts[K]) Keys() []K {
	keys := make([]K, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// Get looks up the count for key.
func (c Counts[K]) Get(key K) (int, bool) {
	for _, e := range c {
		if e.Key == key {
			return e.Count, true
		}
	}
	return 0, false
}

// Order selects how GroupedCount sorts its result.
type Order int

const (
	ByCountDesc Order = iota
	ByKeyAsc
)

// Field is a column GroupedCount can group on.
type Field string

const (
	FieldReleaseYear Field = catalog.ColReleaseYear
	FieldCountry     Field = catalog.ColCountry
	FieldType        Field = catalog.ColType
)

// GenreCounts explodes listed_in and counts each trimmed genre, most frequent first.
func GenreCounts(ds catalog.Dataset) Counts[string] {
	c := newCounter[string]()
	for _, t := range ds.Titles {
		for _, g := range t.Genres() {
			c.add(g)
		}
	}
	return c.byCountDesc()
}

// RatingCounts counts titles per rating, most frequent first. Titles without
// a rating are left out.
func RatingCounts(ds catalog.Dataset) Counts[string] {
	c := newCounter[string]()
	for _, t := range ds.Titles {
		if t.Rating != nil {
			c.add(*t.Rating)
		}
	}
	return c.byCountDesc()
}

// YearlyTrend counts titles per release year in ascending year order.
func YearlyTrend(ds catalog.Dataset) Counts[int] {
	return countYears(ds).byKeyAsc()
}

// GroupedCount counts titles per value of field. Absent countries are
// counted under catalog.NotAvailable. With ByKeyAsc, release years sort
// numerically and text keys lexically.
func GroupedCount(ds catalog.Dataset, field Field, order Order) Counts[string] {
	switch field {
	case FieldReleaseYear:
		years := countYears(ds)
		var sorted Counts[int]
		if order == ByKeyAsc {
			sorted = years.byKeyAsc()
		} else {
			sorted = years.byCountDesc()
		}
		out := make(Counts[string], len(sorted))
		for i, e := range sorted {
			out[i] = Entry[string]{Key: strconv.Itoa(e.Key), Count: e.Count}
		}
		return out
	case FieldCountry, FieldType:
		c := newCounter[string]()
		for _, t := range ds.Titles {
			if field == FieldCountry {
				c.add(t.CountryLabel())
			} else {
				c.add(t.Type)
			}
		}
		if order == ByKeyAsc {
			return c.byKeyAsc()
		}
		return c.byCountDesc()
	default:
		return Counts[string]{}
	}
}

func countYears(ds catalog.Dataset) *counter[int] {
	c := newCounter[int]()
	for _, t := range ds.Titles {
		c.add(t.ReleaseYear)
	}
	return c
}

// counter tallies keys while remembering first-seen order.
type counter[K cmp.Ordered] struct {
	index   map[K]int
	entries Counts[K]
}

func newCounter[K cmp.Ordered]() *counter[K] {
	return &counter[K]{index: make(map[K]int), entries: Counts[K]{}}
}

func (c *counter[K]) add(key K) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count++
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry[K]{Key: key, Count: 1})
}

func (c *counter[K]) byCountDesc() Counts[K] {
	out := slices.Clone(c.entries)
	slices.SortStableFunc(out, func(a, b Entry[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

func (c *counter[K]) byKeyAsc() Counts[K] {
	out := slices.Clone(c.entries)
	slices.SortFunc(out, func(a, b Entry[K]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
