package http

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	"catalogstats/internal/analysis"
	"catalogstats/internal/catalog"
	"catalogstats/internal/chart"
	"catalogstats/internal/httpx"
	"catalogstats/internal/logging"
)

type Handler struct {
	svc          *analysis.Service
	staticPrefix string
}

// NewHandler serves analysis results. staticPrefix is the URL path the static
// chart directory is mounted under.
func NewHandler(svc *analysis.Service, staticPrefix string) *Handler {
	return &Handler{svc: svc, staticPrefix: staticPrefix}
}

// Healthz handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz handles GET /readyz
// @Summary Readiness probe
// @Description Checks that the configured data source is reachable
// @Tags health
// @Produce plain
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "not ready"
// @Router /readyz [get]
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
	defer cancel()
	if err := h.svc.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("readiness check failed")
		http.Error(w, "data source not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Overview handles GET /v1/overview
// @Summary Overview charts
// @Description Renders the genre, rating and trend charts. Unfiltered charts are saved as static files and returned by URL; filtered charts are returned inline as base64
// @Tags charts
// @Produce json
// @Param year query int false "Release year"
// @Param genre query string false "Genre substring"
// @Param genre_match query string false "raw or token" Enums(raw, token)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /v1/overview [get]
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	f, meta, ok := h.filter(w, r)
	if !ok {
		return
	}

	charts, err := h.svc.Overview(r.Context(), f)
	if err != nil {
		h.fail(w, r, err, []overviewChart{}, meta)
		return
	}

	out := make([]overviewChart, len(charts))
	for i, c := range charts {
		out[i] = overviewChart{RenderedChart: c}
		if c.File != "" {
			out[i].URL = path.Join(h.staticPrefix, c.File)
		}
	}
	httpx.JSONSuccess(w, r, out, meta)
}

type overviewChart struct {
	analysis.RenderedChart
	URL string `json:"url,omitempty"`
}

// Titles handles GET /v1/titles
// @Summary List titles
// @Description Filtered catalog records in source order
// @Tags titles
// @Produce json
// @Param year query int false "Release year"
// @Param genre query string false "Genre substring"
// @Param genre_match query string false "raw or token" Enums(raw, token)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(50)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/titles [get]
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	f, meta, ok := h.filter(w, r)
	if !ok {
		return
	}
	page := pageQueryFrom(r)
	if details := ValidateStruct(page); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid pagination", details)
		return
	}

	titles, err := h.svc.Titles(r.Context(), f)
	if err != nil {
		h.fail(w, r, err, []catalog.Title{}, meta)
		return
	}

	total := len(titles)
	start, end := page.bounds(total)

	meta["page"] = page.Page
	meta["page_size"] = page.PageSize
	meta["total"] = total
	meta["total_pages"] = (total + page.PageSize - 1) / page.PageSize
	httpx.JSONSuccess(w, r, titles[start:end], meta)
}

// Years handles GET /v1/years
// @Summary Distinct release years
// @Tags titles
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/years [get]
func (h *Handler) Years(w http.ResponseWriter, r *http.Request) {
	years, err := h.svc.Years(r.Context())
	if err != nil {
		h.fail(w, r, err, []int{}, httpx.Meta{})
		return
	}
	httpx.JSONSuccess(w, r, years, nil)
}

// Chart returns a handler for one named aggregate.
// @Summary Chart series
// @Description Label/value series for genres, ratings, trend, by-year, by-country or by-type
// @Tags charts
// @Produce json
// @Param year query int false "Release year"
// @Param genre query string false "Genre substring"
// @Param genre_match query string false "raw or token" Enums(raw, token)
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/charts/{name} [get]
func (h *Handler) Chart(name analysis.ChartName) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, meta, ok := h.filter(w, r)
		if !ok {
			return
		}
		series, err := h.svc.Series(r.Context(), name, f)
		if err != nil {
			h.fail(w, r, err, emptySeries(), meta)
			return
		}
		meta["chart"] = name
		meta["kind"] = name.DefaultKind()
		httpx.JSONSuccess(w, r, series, meta)
	}
}

// Image handles GET /v1/charts/image
// @Summary Rendered chart
// @Description Renders a named chart as a base64 PNG alongside its series
// @Tags charts
// @Produce json
// @Param chart query string true "Chart name" Enums(genres, ratings, trend, by-year, by-country, by-type)
// @Param kind query string false "Chart kind" Enums(bar, line, pie)
// @Param year query int false "Release year"
// @Param genre query string false "Genre substring"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/charts/image [get]
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	q := ImageQuery{Chart: r.URL.Query().Get("chart"), Kind: r.URL.Query().Get("kind")}
	if details := ValidateStruct(q); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid chart request", details)
		return
	}
	name, err := analysis.ParseChartName(q.Chart)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "UNKNOWN_CHART", err.Error(), nil)
		return
	}
	kind, err := chart.ParseKind(q.Kind, name.DefaultKind())
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "UNKNOWN_KIND", err.Error(), nil)
		return
	}

	f, meta, ok := h.filter(w, r)
	if !ok {
		return
	}
	img, err := h.svc.Image(r.Context(), name, kind, f)
	if err != nil {
		h.fail(w, r, err, analysis.Image{Chart: name, Kind: kind, Series: emptySeries()}, meta)
		return
	}
	httpx.JSONSuccess(w, r, img, meta)
}

// filter reads and validates the shared filter parameters. On failure the
// error response has already been written.
func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (catalog.Filter, httpx.Meta, bool) {
	q := filterQueryFrom(r)
	if details := ValidateStruct(q); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid filter", details)
		return catalog.Filter{}, nil, false
	}
	f, warnings := q.Filter()

	meta := httpx.Meta{"filter": filterMeta(f)}
	if len(warnings) > 0 {
		meta["warnings"] = warnings
	}
	return f, meta, true
}

func filterMeta(f catalog.Filter) map[string]interface{} {
	m := map[string]interface{}{
		"year":        nil,
		"genre":       f.Genre,
		"genre_match": f.GenreMatch.String(),
	}
	if f.Year != nil {
		m["year"] = *f.Year
	}
	return m
}

func emptySeries() chart.Series {
	return chart.Series{Labels: []string{}, Values: []int{}}
}

// fail writes the response for a failed analysis call. An empty source is
// not an error for clients: they get empty data flagged in meta.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, empty interface{}, meta httpx.Meta) {
	switch {
	case errors.Is(err, catalog.ErrEmptySource):
		meta["empty"] = true
		httpx.JSONSuccess(w, r, empty, meta)
	case errors.Is(err, catalog.ErrSourceNotFound):
		logging.Ctx(r.Context()).Error().Err(err).Msg("data source not found")
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "SOURCE_NOT_FOUND", "data source is not available", nil)
	case errors.Is(err, catalog.ErrMalformedSource):
		logging.Ctx(r.Context()).Error().Err(err).Msg("data source malformed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "SOURCE_MALFORMED", "data source could not be parsed", nil)
	case errors.Is(err, analysis.ErrUnknownChart):
		httpx.JSONError(w, r, http.StatusBadRequest, "UNKNOWN_CHART", err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		httpx.JSONError(w, r, http.StatusGatewayTimeout, "TIMEOUT", "request timed out", nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("analysis failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
	}
}
