// Package chart turns aggregates into label/value series and renders them.
package chart

import (
	"cmp"
	"errors"
	"fmt"

	"catalogstats/internal/aggregate"
)

var (
	ErrEmptySeries    = errors.New("chart: series has no points")
	ErrLengthMismatch = errors.New("chart: labels and values differ in length")
	ErrUnknownKind    = errors.New("chart: unknown chart kind")
)

// Series is the shape consumed by renderers and JSON clients.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"data"`
}

// ToSeries projects an aggregate onto parallel label and value slices,
// keeping the aggregate's order.
func ToSeries[K cmp.Ordered](c aggregate.Counts[K]) Series {
	s := Series{
		Labels: make([]string, len(c)),
		Values: make([]int, len(c)),
	}
	for i, e := range c {
		s.Labels[i] = fmt.Sprint(e.Key)
		s.Values[i] = e.Count
	}
	return s
}

func (s Series) Len() int {
	return len(s.Labels)
}

// Validate reports whether s can be handed to a renderer.
func (s Series) Validate() error {
	if len(s.Labels) != len(s.Values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(s.Labels), len(s.Values))
	}
	if len(s.Labels) == 0 {
		return ErrEmptySeries
	}
	return nil
}

func (s Series) max() int {
	m := 0
	for _, v := range s.Values {
		m = max(m, v)
	}
	return m
}
