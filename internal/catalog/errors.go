package catalog

import "errors"

var (
	// ErrSourceNotFound means the source handle could not be resolved.
	ErrSourceNotFound = errors.New("catalog: source not found")
	// ErrEmptySource means the source resolved but held no header or no rows.
	ErrEmptySource = errors.New("catalog: source is empty")
	// ErrMalformedSource means the source could not be parsed as a title table.
	ErrMalformedSource = errors.New("catalog: source is malformed")
	// ErrMalformedFilterInput is returned next to a usable Filter when the year
	// text was not an integer. The year predicate is dropped in that case.
	ErrMalformedFilterInput = errors.New("catalog: malformed filter input")
)
