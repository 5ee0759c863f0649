package main

import (
	"context"
	"flag"
	"os"

	"catalogstats/internal/analysis"
	"catalogstats/internal/catalog"
	"catalogstats/internal/chart"
	"catalogstats/internal/config"
	"catalogstats/internal/logging"

	"github.com/fatih/color"
)

func main() {
	var (
		csvPath    = flag.String("csv", "", "CSV file to analyse (defaults to DATA_CSV_PATH)")
		year       = flag.String("year", "", "Only titles released in this year")
		genre      = flag.String("genre", "", "Only titles whose genres contain this text")
		genreMatch = flag.String("genre-match", "raw", "Genre matching: raw or token")
		top        = flag.Int("top", 0, "Number of genres to show (defaults to TOP_GENRES)")
		out        = flag.String("out", "", "Directory to write chart PNGs to; no charts when empty")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("cannot load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: os.Stderr})

	if *csvPath == "" {
		*csvPath = cfg.Data.CSVPath
	}
	if *top <= 0 {
		*top = cfg.Chart.TopGenres
	}

	f, err := catalog.ParseFilter(*year, *genre)
	if err != nil {
		color.Yellow("warning: %v", err)
	}
	f = f.WithGenreMatch(catalog.ParseGenreMatch(*genreMatch))

	backend := analysis.NewMemoryBackend(catalog.NewFileSource(*csvPath))
	renderer := chart.NewGoChartRenderer(cfg.Chart.Width, cfg.Chart.Height)
	svc := analysis.NewService(backend, renderer, *out, *top)

	if err := run(context.Background(), os.Stdout, svc, f, *out != ""); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
