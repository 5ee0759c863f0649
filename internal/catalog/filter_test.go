package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() Dataset {
	return Dataset{
		Columns: []string{ColTitle, ColType, ColReleaseYear, ColListedIn},
		Titles: []Title{
			{Title: "A", Type: "Movie", ReleaseYear: 2020, ListedIn: "Drama, Comedy"},
			{Title: "B", Type: "Movie", ReleaseYear: 2020, ListedIn: "Drama"},
			{Title: "C", Type: "TV Show", ReleaseYear: 2019, ListedIn: "Kids' TV, TV Comedies"},
		},
	}
}

func titles(ds Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, t := range ds.Titles {
		out = append(out, t.Title)
	}
	return out
}

func TestApply_ZeroFilterReturnsEverythingInOrder(t *testing.T) {
	ds := scenario()

	got := Apply(ds, Filter{})

	assert.Equal(t, ds, got)
}

func TestApply_Year(t *testing.T) {
	ds := scenario()

	assert.Equal(t, []string{"A", "B"}, titles(Apply(ds, Filter{}.WithYear(2020))))
	assert.Empty(t, titles(Apply(ds, Filter{}.WithYear(1999))))
}

func TestApply_GenreIsCaseInsensitive(t *testing.T) {
	ds := scenario()

	assert.Equal(t, []string{"A", "B"}, titles(Apply(ds, Filter{}.WithGenre("drama"))))
	assert.Equal(t, []string{"A", "C"}, titles(Apply(ds, Filter{}.WithGenre("COMED"))))
}

func TestApply_GenreRawMatchesAcrossTokens(t *testing.T) {
	ds := scenario()

	raw := Filter{}.WithGenre("ma, Com")
	assert.Equal(t, []string{"A"}, titles(Apply(ds, raw)))

	token := raw.WithGenreMatch(MatchToken)
	assert.Empty(t, titles(Apply(ds, token)))
	assert.Equal(t, []string{"A", "C"}, titles(Apply(ds, Filter{}.WithGenre("com").WithGenreMatch(MatchToken))))
}

func TestApply_YearAndGenreCombine(t *testing.T) {
	ds := scenario()

	f := Filter{}.WithYear(2020).WithGenre("comedy")
	assert.Equal(t, []string{"A"}, titles(Apply(ds, f)))

	f = Filter{}.WithYear(2019).WithGenre("drama")
	assert.Empty(t, titles(Apply(ds, f)))
}

func TestApply_NeverMutatesOrFabricates(t *testing.T) {
	ds := scenario()
	before := scenario()

	got := Apply(ds, Filter{}.WithGenre("tv"))
	got.Titles[0].Title = "changed"

	assert.Equal(t, before, ds)
	for _, title := range got.Titles[1:] {
		assert.Contains(t, titles(before), title.Title)
	}
}

func TestFilter_WithYearReturnsCopy(t *testing.T) {
	base := Filter{}.WithGenre("drama")
	withYear := base.WithYear(2020)

	assert.Nil(t, base.Year)
	require.NotNil(t, withYear.Year)
	assert.Equal(t, 2020, *withYear.Year)
	assert.True(t, Filter{}.IsZero())
	assert.False(t, withYear.IsZero())
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name      string
		year      string
		genre     string
		wantYear  *int
		wantGenre string
		wantErr   error
	}{
		{name: "empty", wantYear: nil},
		{name: "year", year: "2020", wantYear: intPtr(2020)},
		{name: "padded year", year: " 2019 ", wantYear: intPtr(2019)},
		{name: "genre passes through raw", genre: " Drama ", wantGenre: " Drama "},
		{name: "bad year dropped", year: "20x0", genre: "Drama", wantGenre: "Drama", wantErr: ErrMalformedFilterInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.year, tt.genre)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantYear, f.Year)
			assert.Equal(t, tt.wantGenre, f.Genre)
		})
	}
}

func TestParseGenreMatch(t *testing.T) {
	assert.Equal(t, MatchToken, ParseGenreMatch("Token"))
	assert.Equal(t, MatchRaw, ParseGenreMatch(""))
	assert.Equal(t, MatchRaw, ParseGenreMatch("whatever"))
}

func intPtr(i int) *int {
	return &i
}
