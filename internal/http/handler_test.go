package http

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"catalogstats/internal/analysis"
	"catalogstats/internal/catalog"
	"catalogstats/internal/chart"
	"catalogstats/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler   http.Handler
	staticDir string
}

func newTestServer(t *testing.T, csvPath string) testServer {
	t.Helper()
	staticDir := t.TempDir()
	backend := analysis.NewMemoryBackend(catalog.NewFileSource(csvPath))
	svc := analysis.NewService(backend, chart.NewGoChartRenderer(320, 160), staticDir, 3)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return testServer{
		handler:   NewRouter(ctx, svc, RouterConfig{StaticDir: staticDir, CORSOrigins: []string{"*"}}),
		staticDir: staticDir,
	}
}

func (s testServer) get(path string) testutil.RecordResponse {
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, testutil.NewRequest(http.MethodGet, path, nil))
	return testutil.RecordHTTPResponse(w)
}

func sampleServer(t *testing.T) testServer {
	return newTestServer(t, testutil.WriteCSV(t, testutil.SampleCSV))
}

func respMeta(resp testutil.RecordResponse) map[string]interface{} {
	m, _ := resp.Body["meta"].(map[string]interface{})
	return m
}

func TestHealth(t *testing.T) {
	s := sampleServer(t)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	missing := newTestServer(t, filepath.Join(t.TempDir(), "gone.csv"))
	w = httptest.NewRecorder()
	missing.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTitles(t *testing.T) {
	s := sampleServer(t)

	t.Run("all titles", func(t *testing.T) {
		resp := s.get("/v1/titles")
		require.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].([]interface{})
		assert.Len(t, data, 5)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "Dick Johnson Is Dead", first["title"])
		assert.Equal(t, float64(2020), first["release_year"])
		assert.Equal(t, float64(5), respMeta(resp)["total"])
	})

	t.Run("genre filter is case-insensitive", func(t *testing.T) {
		resp := s.get("/v1/titles?genre=DRAMAS")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, resp.Body["data"], 2)
	})

	t.Run("genre is matched as given", func(t *testing.T) {
		resp := s.get("/v1/titles?genre=%20Dramas")
		require.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, "Blood & Water", data[0].(map[string]interface{})["title"])
		filter := respMeta(resp)["filter"].(map[string]interface{})
		assert.Equal(t, " Dramas", filter["genre"])
	})

	t.Run("year and genre combine", func(t *testing.T) {
		resp := s.get("/v1/titles?year=2021&genre=international")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, resp.Body["data"], 2)
		filter := respMeta(resp)["filter"].(map[string]interface{})
		assert.Equal(t, float64(2021), filter["year"])
	})

	t.Run("malformed year is ignored with a warning", func(t *testing.T) {
		resp := s.get("/v1/titles?year=abc")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, resp.Body["data"], 5)
		assert.NotEmpty(t, respMeta(resp)["warnings"])
	})

	t.Run("pagination", func(t *testing.T) {
		resp := s.get("/v1/titles?page=2&page_size=2")
		require.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].([]interface{})
		require.Len(t, data, 2)
		assert.Equal(t, "Ganglands", data[0].(map[string]interface{})["title"])
		assert.Equal(t, float64(3), respMeta(resp)["total_pages"])

		resp = s.get("/v1/titles?page=9&page_size=2")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Empty(t, resp.Body["data"])

		resp = s.get("/v1/titles?page=184467440737095518&page_size=50")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Empty(t, resp.Body["data"])
		assert.Equal(t, float64(5), respMeta(resp)["total"])
	})

	t.Run("invalid query", func(t *testing.T) {
		assert.Equal(t, "VALIDATION_ERROR", s.get("/v1/titles?genre_match=fuzzy").ErrorCode())
		assert.Equal(t, "VALIDATION_ERROR", s.get("/v1/titles?page=0").ErrorCode())
	})
}

func TestYears(t *testing.T) {
	resp := sampleServer(t).get("/v1/years")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []interface{}{float64(1993), float64(2020), float64(2021)}, resp.Body["data"])
}

func TestChartSeries(t *testing.T) {
	s := sampleServer(t)

	tests := []struct {
		path   string
		labels []interface{}
		data   []interface{}
	}{
		{
			path:   "/v1/charts/ratings",
			labels: []interface{}{"TV-MA", "PG-13", "PG"},
			data:   []interface{}{float64(3), float64(1), float64(1)},
		},
		{
			path:   "/v1/charts/genres",
			labels: []interface{}{"International TV Shows", "Documentaries", "TV Dramas"},
			data:   []interface{}{float64(2), float64(1), float64(1)},
		},
		{
			path:   "/v1/charts/trend",
			labels: []interface{}{"1993", "2020", "2021"},
			data:   []interface{}{float64(1), float64(1), float64(3)},
		},
		{
			path:   "/v1/charts/by-year?genre=international",
			labels: []interface{}{"1993", "2021"},
			data:   []interface{}{float64(1), float64(2)},
		},
		{
			path:   "/v1/charts/by-country",
			labels: []interface{}{"United States", "Not Available", "South Africa"},
			data:   []interface{}{float64(2), float64(2), float64(1)},
		},
		{
			path:   "/v1/charts/by-type?year=2021",
			labels: []interface{}{"TV Show", "Movie"},
			data:   []interface{}{float64(2), float64(1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := s.get(tt.path)
			require.Equal(t, http.StatusOK, resp.Code)
			data := resp.Data()
			assert.Equal(t, tt.labels, data["labels"])
			assert.Equal(t, tt.data, data["data"])
		})
	}
}

func TestChartSeries_NoMatches(t *testing.T) {
	resp := sampleServer(t).get("/v1/charts/genres?genre=anime")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, resp.Data()["labels"])
	assert.Empty(t, resp.Data()["data"])
}

func TestImage(t *testing.T) {
	s := sampleServer(t)

	t.Run("default kind", func(t *testing.T) {
		resp := s.get("/v1/charts/image?chart=trend")
		require.Equal(t, http.StatusOK, resp.Code)
		data := resp.Data()
		assert.Equal(t, "line", data["kind"])
		raw, err := base64.StdEncoding.DecodeString(data["image"].(string))
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG", string(raw[:4]))
	})

	t.Run("explicit kind", func(t *testing.T) {
		resp := s.get("/v1/charts/image?chart=by-type&kind=bar")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "bar", resp.Data()["kind"])
	})

	t.Run("bad requests", func(t *testing.T) {
		assert.Equal(t, "VALIDATION_ERROR", s.get("/v1/charts/image").ErrorCode())
		assert.Equal(t, "VALIDATION_ERROR", s.get("/v1/charts/image?chart=trend&kind=radar").ErrorCode())
		assert.Equal(t, "UNKNOWN_CHART", s.get("/v1/charts/image?chart=heatmap").ErrorCode())
	})
}

func TestOverview(t *testing.T) {
	s := sampleServer(t)

	resp := s.get("/v1/overview")
	require.Equal(t, http.StatusOK, resp.Code)

	charts := resp.Body["data"].([]interface{})
	require.Len(t, charts, 3)
	genres := charts[0].(map[string]interface{})
	assert.Equal(t, "genres", genres["chart"])
	assert.Equal(t, "/static/genres.png", genres["url"])
	assert.FileExists(t, filepath.Join(s.staticDir, "genres.png"))

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/genres.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestOverview_FilteredDoesNotWriteFiles(t *testing.T) {
	s := sampleServer(t)

	for _, q := range []string{"?year=2021", "?genre=dramas", "?genre=dramas&genre_match=token"} {
		resp := s.get("/v1/overview" + q)
		require.Equal(t, http.StatusOK, resp.Code, q)
		genres := resp.Body["data"].([]interface{})[0].(map[string]interface{})
		assert.NotEmpty(t, genres["image"], q)
		assert.Nil(t, genres["url"], q)
	}
	entries, err := os.ReadDir(s.staticDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.Equal(t, http.StatusOK, s.get("/v1/overview").Code)
	entries, err = os.ReadDir(s.staticDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSourceErrors(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		s := newTestServer(t, filepath.Join(t.TempDir(), "gone.csv"))
		resp := s.get("/v1/charts/genres")
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
		assert.Equal(t, "SOURCE_NOT_FOUND", resp.ErrorCode())
	})

	t.Run("empty source", func(t *testing.T) {
		s := newTestServer(t, testutil.WriteCSV(t, ""))
		resp := s.get("/v1/titles")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, respMeta(resp)["empty"])
		assert.Empty(t, resp.Body["data"])

		resp = s.get("/v1/overview")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, respMeta(resp)["empty"])
	})

	t.Run("malformed source", func(t *testing.T) {
		s := newTestServer(t, testutil.WriteCSV(t, "title,type\nA,Movie\n"))
		resp := s.get("/v1/charts/ratings")
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "SOURCE_MALFORMED", resp.ErrorCode())
	})
}

func TestRouting(t *testing.T) {
	s := sampleServer(t)

	resp := s.get("/v2/nothing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", resp.ErrorCode())

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/titles", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_rows_loaded_total")

	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/years", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "genre_match", toSnake("GenreMatch"))
	assert.Equal(t, "page_size", toSnake("PageSize"))
	assert.Equal(t, "year", toSnake("Year"))
}
