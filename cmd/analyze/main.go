package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unklstewy/groundscope/internal/db"
	"github.com/unklstewy/groundscope/pkg/config"
	"github.com/unklstewy/groundscope/pkg/ssd"
	"github.com/unklstewy/groundscope/pkg/trajectory"
)

// analyze runs the batch pipeline: a trajectory dataset CSV goes in, one
// Free Path Fraction record per aircraft per window comes out.
func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	inputPath := flag.String("input", "", "Trajectory dataset CSV (required)")
	outputPath := flag.String("output", "-", "Results file, - for stdout")
	format := flag.String("format", "csv", "Output format: csv or jsonl")
	lookahead := flag.Float64("lookahead", 0, "Override lookahead window in seconds")
	workers := flag.Int("workers", 0, "Override per-window worker count")
	storeDB := flag.Bool("db", false, "Also store results in PostgreSQL")
	progress := flag.Bool("progress", false, "Show interactive progress UI")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	params := cfg.Analysis.Params()
	if *lookahead > 0 {
		params.LookaheadSeconds = *lookahead
	}
	if *workers > 0 {
		params.Workers = *workers
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	samples, dropped, err := trajectory.ReadSamples(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read dataset: %v", err)
	}

	cleaned := trajectory.Clean(samples)
	windows := trajectory.Windows(cleaned, params.WindowWidth())

	log.Printf("Dataset: %d samples (%d rows dropped on read, %d on cleaning)",
		len(cleaned), dropped, len(samples)-len(cleaned))
	log.Printf("Windows: %d at %v width", len(windows), params.WindowWidth())

	var repo *db.ResultRepository
	if *storeDB {
		database, err := db.Connect(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()
		if err := database.InitSchema(context.Background()); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		repo = db.NewResultRepository(database)
	}

	engine := ssd.NewEngine(params)

	var results []ssd.Result
	if *progress {
		results, err = runWithProgress(engine, windows, repo)
	} else {
		results, err = run(engine, windows, repo)
	}
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if err := writeResults(*outputPath, *format, results); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}

	log.Printf("Done: %d results from %d windows", len(results), len(windows))
}

// run processes every window in time order, optionally persisting each
// window's results as it completes.
func run(engine *ssd.Engine, windows []trajectory.Window, repo *db.ResultRepository) ([]ssd.Result, error) {
	var results []ssd.Result
	start := time.Now()

	for i, w := range windows {
		windowResults := analyzeWindow(engine, w)
		results = append(results, windowResults...)

		if repo != nil && len(windowResults) > 0 {
			if err := repo.UpsertResults(context.Background(), w.Start, windowResults); err != nil {
				return nil, fmt.Errorf("failed to store window %v: %w", w.Start, err)
			}
		}

		if (i+1)%100 == 0 {
			log.Printf("  %d/%d windows (%.0f windows/s)",
				i+1, len(windows), float64(i+1)/time.Since(start).Seconds())
		}
	}

	return results, nil
}

// runWithProgress is run with a bubbletea progress UI on top.
func runWithProgress(engine *ssd.Engine, windows []trajectory.Window, repo *db.ResultRepository) ([]ssd.Result, error) {
	p := tea.NewProgram(newProgressModel(len(windows)))

	var results []ssd.Result
	var runErr error

	go func() {
		for i, w := range windows {
			windowResults := analyzeWindow(engine, w)
			results = append(results, windowResults...)

			if repo != nil && len(windowResults) > 0 {
				if err := repo.UpsertResults(context.Background(), w.Start, windowResults); err != nil {
					runErr = fmt.Errorf("failed to store window %v: %w", w.Start, err)
					break
				}
			}

			p.Send(progressMsg{windowsDone: i + 1, results: len(results)})
		}
		p.Send(doneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("progress UI failed: %w", err)
	}
	if runErr != nil {
		return nil, runErr
	}

	return results, nil
}

func analyzeWindow(engine *ssd.Engine, w trajectory.Window) []ssd.Result {
	states, envs := trajectory.States(w.Samples)
	return engine.AnalyzeWindow(states, envs)
}

func writeResults(path, format string, results []ssd.Result) error {
	var out io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "jsonl":
		return trajectory.WriteResultsJSONL(out, results)
	case "csv":
		return trajectory.WriteResults(out, results)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
