package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"catalogstats/internal/catalog"
	"catalogstats/internal/httpx"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FilterQuery is the raw filter as sent by clients. Year is kept as text so a
// malformed value can be reported as a warning instead of rejecting the call.
type FilterQuery struct {
	Year       string `validate:"max=9"`
	Genre      string `validate:"max=100"`
	GenreMatch string `validate:"omitempty,oneof=raw token"`
}

type PageQuery struct {
	Page     int `validate:"gte=1"`
	PageSize int `validate:"gte=1,lte=500"`
}

type ImageQuery struct {
	Chart string `validate:"required"`
	Kind  string `validate:"omitempty,oneof=bar line pie"`
}

func filterQueryFrom(r *http.Request) FilterQuery {
	q := r.URL.Query()
	return FilterQuery{
		Year:       strings.TrimSpace(q.Get("year")),
		Genre:      q.Get("genre"),
		GenreMatch: strings.ToLower(strings.TrimSpace(q.Get("genre_match"))),
	}
}

// Filter converts q into a catalog filter. The returned warnings describe
// inputs that were ignored.
func (q FilterQuery) Filter() (catalog.Filter, []string) {
	f, err := catalog.ParseFilter(q.Year, q.Genre)
	f = f.WithGenreMatch(catalog.ParseGenreMatch(q.GenreMatch))
	if errors.Is(err, catalog.ErrMalformedFilterInput) {
		return f, []string{err.Error()}
	}
	return f, nil
}

func pageQueryFrom(r *http.Request) PageQuery {
	q := r.URL.Query()
	p := PageQuery{Page: 1, PageSize: 50}
	if v := q.Get("page"); v != "" {
		p.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("page_size"); v != "" {
		p.PageSize, _ = strconv.Atoi(v)
	}
	return p
}

// bounds returns the slice of total items on the requested page. Pages past
// the end are empty.
func (p PageQuery) bounds(total int) (start, end int) {
	if p.Page-1 > total/p.PageSize {
		return total, total
	}
	start = min((p.Page-1)*p.PageSize, total)
	return start, min(start+p.PageSize, total)
}

// ValidateStruct maps validator failures onto response error details.
func ValidateStruct(s interface{}) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []httpx.ErrorDetail{{Field: "", Message: err.Error()}}
	}

	details := make([]httpx.ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		details = append(details, httpx.ErrorDetail{Field: field, Message: message})
	}
	return details
}

// toSnake turns GenreMatch into genre_match so details name the query parameter.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
