package analysis

import (
	"errors"
	"fmt"
	"strings"

	"catalogstats/internal/chart"
)

var ErrUnknownChart = errors.New("unknown chart")

// ChartName identifies one of the named aggregates the service can draw.
type ChartName string

const (
	ChartGenres    ChartName = "genres"
	ChartRatings   ChartName = "ratings"
	ChartTrend     ChartName = "trend"
	ChartByYear    ChartName = "by-year"
	ChartByCountry ChartName = "by-country"
	ChartByType    ChartName = "by-type"
)

type definition struct {
	kind   chart.Kind
	title  string
	xLabel string
	yLabel string
}

var definitions = map[ChartName]definition{
	ChartGenres:    {kind: chart.Bar, title: "Top Genres", xLabel: "Genre", yLabel: "Number of Titles"},
	ChartRatings:   {kind: chart.Bar, title: "Content Ratings", xLabel: "Rating", yLabel: "Number of Titles"},
	ChartTrend:     {kind: chart.Line, title: "Trend of Additions Over Years", xLabel: "Year", yLabel: "Number of Titles"},
	ChartByYear:    {kind: chart.Bar, title: "Titles per Release Year", xLabel: "Year", yLabel: "Number of Titles"},
	ChartByCountry: {kind: chart.Pie, title: "Content by Country"},
	ChartByType:    {kind: chart.Pie, title: "Content by Type"},
}

// OverviewCharts are the charts drawn for the overview page, in display order.
var OverviewCharts = []ChartName{ChartGenres, ChartRatings, ChartTrend}

func ParseChartName(s string) (ChartName, error) {
	name := ChartName(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := definitions[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
	}
	return name, nil
}

// DefaultKind is the chart kind used when the caller does not ask for one.
func (n ChartName) DefaultKind() chart.Kind {
	return definitions[n].kind
}

func (n ChartName) options(kind chart.Kind) chart.Options {
	d := definitions[n]
	if kind == "" {
		kind = d.kind
	}
	return chart.Options{Kind: kind, Title: d.title, XLabel: d.xLabel, YLabel: d.yLabel}
}
