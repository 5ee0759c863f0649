package chart

import (
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Kind is the chart type to draw.
type Kind string

const (
	Bar  Kind = "bar"
	Line Kind = "line"
	Pie  Kind = "pie"
)

// ParseKind maps text to a Kind, defaulting to def when s is empty.
func ParseKind(s string, def Kind) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return def, nil
	case Bar, Line, Pie:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Options describe how a series should be drawn.
type Options struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
}

// Renderer draws a series as an image.
type Renderer interface {
	Render(w io.Writer, s Series, opts Options) error
}

const (
	defaultWidth  = 1024
	defaultHeight = 512
	maxLineTicks  = 20
)

// GoChartRenderer renders PNG images with go-chart.
type GoChartRenderer struct {
	Width  int
	Height int
}

func NewGoChartRenderer(width, height int) GoChartRenderer {
	return GoChartRenderer{Width: width, Height: height}
}

func (g GoChartRenderer) Render(w io.Writer, s Series, opts Options) error {
	if err := s.Validate(); err != nil {
		return err
	}
	width, height := g.size(opts)

	switch opts.Kind {
	case Bar:
		return g.bar(w, s, opts, width, height)
	case Line:
		return g.line(w, s, opts, width, height)
	case Pie:
		return g.pie(w, s, opts, width, height)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}

func (g GoChartRenderer) size(opts Options) (int, int) {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = g.Width
	}
	if height <= 0 {
		height = g.Height
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (g GoChartRenderer) bar(w io.Writer, s Series, opts Options, width, height int) error {
	bars := make([]gochart.Value, s.Len())
	for i := range s.Labels {
		bars[i] = gochart.Value{Label: s.Labels[i], Value: float64(s.Values[i])}
	}

	// bars plus gaps must fit the canvas or go-chart clips them
	slot := max((width-120)/len(bars), 2)
	barWidth := max(slot*2/3, 1)

	graph := gochart.BarChart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   barWidth,
		BarSpacing: max(slot-barWidth, 1),
		YAxis: gochart.YAxis{
			Name:  opts.YLabel,
			Range: yRange(s),
		},
		Bars: bars,
	}
	return graph.Render(gochart.PNG, w)
}

func (g GoChartRenderer) line(w io.Writer, s Series, opts Options, width, height int) error {
	xs := make([]float64, s.Len())
	ys := make([]float64, s.Len())
	step := max(s.Len()/maxLineTicks, 1)
	var ticks []gochart.Tick
	for i := range s.Labels {
		xs[i] = float64(i)
		ys[i] = float64(s.Values[i])
		if i%step == 0 || i == s.Len()-1 {
			ticks = append(ticks, gochart.Tick{Value: xs[i], Label: s.Labels[i]})
		}
	}

	graph := gochart.Chart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  opts.XLabel,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(max(s.Len()-1, 1))},
		},
		YAxis: gochart.YAxis{
			Name:  opts.YLabel,
			Range: yRange(s),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: opts.Title, XValues: xs, YValues: ys},
		},
	}
	return graph.Render(gochart.PNG, w)
}

func (g GoChartRenderer) pie(w io.Writer, s Series, opts Options, width, height int) error {
	values := make([]gochart.Value, 0, s.Len())
	for i := range s.Labels {
		if s.Values[i] <= 0 {
			continue
		}
		values = append(values, gochart.Value{Label: s.Labels[i], Value: float64(s.Values[i])})
	}
	if len(values) == 0 {
		return ErrEmptySeries
	}

	graph := gochart.PieChart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return graph.Render(gochart.PNG, w)
}

// yRange starts at zero and leaves headroom above the tallest point so a
// single-valued series still has a non-zero range.
func yRange(s Series) *gochart.ContinuousRange {
	top := float64(s.max())
	return &gochart.ContinuousRange{Min: 0, Max: max(top*1.1, 1)}
}
