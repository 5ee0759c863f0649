package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"catalogstats/internal/analysis"
	"catalogstats/internal/catalog"
	"catalogstats/internal/chart"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var sections = []struct {
	chart  analysis.ChartName
	title  string
	header string
}{
	{analysis.ChartGenres, "Top Genres", "Genre"},
	{analysis.ChartRatings, "Content Ratings", "Rating"},
	{analysis.ChartTrend, "Titles per Release Year", "Year"},
	{analysis.ChartByCountry, "Content by Country", "Country"},
	{analysis.ChartByType, "Content by Type", "Type"},
}

// run prints every aggregate as a table and, when withCharts is set, saves
// the overview charts into the service's static directory.
func run(ctx context.Context, w io.Writer, svc *analysis.Service, f catalog.Filter, withCharts bool) error {
	heading := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgYellow)

	titles, err := svc.Titles(ctx, f)
	if errors.Is(err, catalog.ErrEmptySource) {
		section.Fprintln(w, "The data source has no rows.")
		return nil
	}
	if err != nil {
		return err
	}

	heading.Fprintln(w, "\n=== Catalog Report ===")
	fmt.Fprintf(w, "Filter: %s\nTitles: %d\n", f, len(titles))

	for _, s := range sections {
		series, err := svc.Series(ctx, s.chart, f)
		if err != nil {
			return err
		}
		section.Fprintf(w, "\n%s\n", s.title)
		printSeries(w, s.header, series)
	}

	if !withCharts {
		return nil
	}
	charts, err := svc.SaveOverview(ctx, f)
	if err != nil {
		return err
	}
	section.Fprintln(w, "\nCharts")
	for _, c := range charts {
		switch {
		case c.Error != "":
			color.New(color.FgRed).Fprintf(w, "  %s: %s\n", c.Chart, c.Error)
		case c.File != "":
			fmt.Fprintf(w, "  %s: %s\n", c.Chart, svc.ImagePath(c.File))
		default:
			fmt.Fprintf(w, "  %s: no data\n", c.Chart)
		}
	}
	return nil
}

func printSeries(w io.Writer, header string, s chart.Series) {
	if s.Len() == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{header, "Count"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, label := range s.Labels {
		table.Append([]string{label, strconv.Itoa(s.Values[i])})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(sum(s.Values))})
	table.Render()
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
