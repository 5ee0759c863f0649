package store

import (
	"context"
	"fmt"
	"strings"

	"catalogstats/internal/aggregate"
	"catalogstats/internal/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TitlePG answers catalog questions from the titles table. Rows are assumed
// to be cleaned on import; id order is source row order, so ties in counts
// are broken by the smallest id that produced the key.
type TitlePG struct {
	db *pgxpool.Pool
}

// trimChars is the set of runes strings.TrimSpace removes, as a Postgres
// escape string for btrim. Plain btrim(x) only strips spaces.
const trimChars = `E' \t\n\x0B\f\r\u0085\u00A0\u1680\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200A\u2028\u2029\u202F\u205F\u3000'`

func NewTitlePG(db *pgxpool.Pool) *TitlePG {
	return &TitlePG{db: db}
}

func (r *TitlePG) Name() string {
	return "postgres"
}

func (r *TitlePG) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// where renders f as a WHERE clause with positional args.
func where(f catalog.Filter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if f.Year != nil {
		clauses = append(clauses, fmt.Sprintf("release_year = $%d", argn))
		args = append(args, *f.Year)
		argn++
	}

	if f.Genre != "" {
		if f.GenreMatch == catalog.MatchToken {
			clauses = append(clauses, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM unnest(string_to_array(listed_in, ',')) AS g WHERE strpos(lower(btrim(g, " + trimChars + ")), lower($%d)) > 0)", argn))
		} else {
			clauses = append(clauses, fmt.Sprintf("strpos(lower(listed_in), lower($%d)) > 0", argn))
		}
		args = append(args, f.Genre)
		argn++
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *TitlePG) Titles(ctx context.Context, f catalog.Filter) ([]catalog.Title, error) {
	w, args := where(f)
	query := fmt.Sprintf(`
		SELECT title, type, release_year, rating, duration, listed_in, country, extra
		FROM titles
		%s
		ORDER BY id`, w)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []catalog.Title{}
	for rows.Next() {
		var t catalog.Title
		if err := rows.Scan(&t.Title, &t.Type, &t.ReleaseYear, &t.Rating, &t.Duration, &t.ListedIn, &t.Country, &t.Extra); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TitlePG) Years(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, "SELECT DISTINCT release_year FROM titles ORDER BY release_year")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (r *TitlePG) GenreCounts(ctx context.Context, f catalog.Filter) (aggregate.Counts[string], error) {
	w, args := where(f)
	query := fmt.Sprintf(`
		SELECT genre, COUNT(*) AS n
		FROM (
			SELECT btrim(g.token, %s) AS genre, t.id * 10000 + g.pos AS seen
			FROM (SELECT id, listed_in FROM titles %s) AS t,
				unnest(string_to_array(t.listed_in, ',')) WITH ORDINALITY AS g(token, pos)
		) AS exploded
		WHERE genre <> ''
		GROUP BY genre
		ORDER BY n DESC, MIN(seen)`, trimChars, w)
	return countStrings(ctx, r.db, query, args)
}

func (r *TitlePG) RatingCounts(ctx context.Context, f catalog.Filter) (aggregate.Counts[string], error) {
	w, args := where(f)
	query := fmt.Sprintf(`
		SELECT rating, COUNT(*) AS n
		FROM titles
		%s AND rating IS NOT NULL
		GROUP BY rating
		ORDER BY n DESC, MIN(id)`, w)
	return countStrings(ctx, r.db, query, args)
}

func (r *TitlePG) YearlyTrend(ctx context.Context, f catalog.Filter) (aggregate.Counts[int], error) {
	w, args := where(f)
	query := fmt.Sprintf(`
		SELECT release_year, COUNT(*)
		FROM titles
		%s
		GROUP BY release_year
		ORDER BY release_year`, w)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := aggregate.Counts[int]{}
	for rows.Next() {
		var e aggregate.Entry[int]
		if err := rows.Scan(&e.Key, &e.Count); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// groupExpr maps a grouping field to the SQL producing its key.
var groupExpr = map[aggregate.Field]string{
	aggregate.FieldReleaseYear: "release_year::text",
	aggregate.FieldCountry:     "CASE WHEN btrim(COALESCE(country, ''), " + trimChars + ") = '' THEN '" + catalog.NotAvailable + "' ELSE country END",
	aggregate.FieldType:        "type",
}

func (r *TitlePG) GroupedCount(ctx context.Context, f catalog.Filter, field aggregate.Field, order aggregate.Order) (aggregate.Counts[string], error) {
	expr, ok := groupExpr[field]
	if !ok {
		return aggregate.Counts[string]{}, nil
	}

	orderBy := "n DESC, MIN(id)"
	if order == aggregate.ByKeyAsc {
		orderBy = expr + ` COLLATE "C"`
		if field == aggregate.FieldReleaseYear {
			orderBy = "MIN(release_year)"
		}
	}

	w, args := where(f)
	query := fmt.Sprintf(`
		SELECT %s AS key, COUNT(*) AS n
		FROM titles
		%s
		GROUP BY 1
		ORDER BY %s`, expr, w, orderBy)
	return countStrings(ctx, r.db, query, args)
}

func countStrings(ctx context.Context, db *pgxpool.Pool, query string, args []any) (aggregate.Counts[string], error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := aggregate.Counts[string]{}
	for rows.Next() {
		var e aggregate.Entry[string]
		if err := rows.Scan(&e.Key, &e.Count); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of stored titles.
func (r *TitlePG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM titles").Scan(&n)
	return n, err
}
