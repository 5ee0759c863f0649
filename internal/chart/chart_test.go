package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/aggregate"
)

func TestToSeries_PreservesOrder(t *testing.T) {
	s := ToSeries(aggregate.Counts[string]{{Key: "Drama", Count: 2}, {Key: "Comedy", Count: 1}})

	assert.Equal(t, Series{Labels: []string{"Drama", "Comedy"}, Values: []int{2, 1}}, s)
	assert.NoError(t, s.Validate())
}

func TestToSeries_YearKeys(t *testing.T) {
	s := ToSeries(aggregate.Counts[int]{{Key: 1999, Count: 3}, {Key: 2020, Count: 1}})

	assert.Equal(t, []string{"1999", "2020"}, s.Labels)
	assert.Equal(t, []int{3, 1}, s.Values)
}

func TestToSeries_Empty(t *testing.T) {
	s := ToSeries(aggregate.Counts[string]{})

	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Labels)
	assert.ErrorIs(t, s.Validate(), ErrEmptySeries)
}

func TestSeries_ValidateLengthMismatch(t *testing.T) {
	s := Series{Labels: []string{"a", "b"}, Values: []int{1}}

	assert.ErrorIs(t, s.Validate(), ErrLengthMismatch)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("", Line)
	require.NoError(t, err)
	assert.Equal(t, Line, k)

	k, err = ParseKind(" PIE ", Bar)
	require.NoError(t, err)
	assert.Equal(t, Pie, k)

	_, err = ParseKind("scatter", Bar)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGoChartRenderer_ProducesPNG(t *testing.T) {
	r := NewGoChartRenderer(640, 320)
	series := map[string]Series{
		"single point": {Labels: []string{"2020"}, Values: []int{4}},
		"many points":  {Labels: []string{"1999", "2005", "2020", "2021"}, Values: []int{3, 1, 7, 2}},
	}

	for name, s := range series {
		for _, kind := range []Kind{Bar, Line, Pie} {
			t.Run(name+"/"+string(kind), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, r.Render(&buf, s, Options{Kind: kind, Title: "Titles", YLabel: "Count"}))

				img, err := png.Decode(&buf)
				require.NoError(t, err)
				assert.Equal(t, 640, img.Bounds().Dx())
				assert.Equal(t, 320, img.Bounds().Dy())
			})
		}
	}
}

func TestGoChartRenderer_Errors(t *testing.T) {
	r := GoChartRenderer{}

	err := r.Render(io.Discard, Series{}, Options{Kind: Bar})
	assert.ErrorIs(t, err, ErrEmptySeries)

	err = r.Render(io.Discard, Series{Labels: []string{"a"}, Values: []int{1}}, Options{Kind: "radar"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	err = r.Render(io.Discard, Series{Labels: []string{"a"}, Values: []int{0}}, Options{Kind: Pie})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

type stubRenderer struct {
	payload []byte
	err     error
}

func (s stubRenderer) Render(w io.Writer, _ Series, _ Options) error {
	if s.err != nil {
		return s.err
	}
	_, err := w.Write(s.payload)
	return err
}

func TestRenderFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static")
	s := Series{Labels: []string{"a"}, Values: []int{1}}

	path, err := RenderFile(stubRenderer{payload: []byte("png-bytes")}, dir, "genres.png", s, Options{Kind: Bar})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "genres.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}

func TestRenderFile_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("encode failed")

	_, err := RenderFile(stubRenderer{err: boom}, dir, "trend.png", Series{}, Options{Kind: Line})
	assert.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderBase64(t *testing.T) {
	encoded, err := RenderBase64(stubRenderer{payload: []byte{0x89, 'P', 'N', 'G'}}, Series{}, Options{Kind: Bar})
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, decoded)

	_, err = RenderBase64(stubRenderer{err: ErrEmptySeries}, Series{}, Options{Kind: Bar})
	assert.ErrorIs(t, err, ErrEmptySeries)
}
