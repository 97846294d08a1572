package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unklstewy/groundscope/internal/db"
	"github.com/unklstewy/groundscope/pkg/adsb"
	"github.com/unklstewy/groundscope/pkg/config"
	"github.com/unklstewy/groundscope/pkg/ssd"
	"github.com/unklstewy/groundscope/pkg/trajectory"
)

// Collector continuously fetches live aircraft snapshots, runs the
// conflict engine on each one, and stores the results in the database.
type Collector struct {
	cfg      *config.Config
	db       *db.DB
	repo     *db.ResultRepository
	source   adsb.Source
	engine   *ssd.Engine
	interval time.Duration

	snapshots int
	results   int
	errors    int
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	flag.Parse()

	log.Println("========================================")
	log.Println("groundscope Conflict Metric Collector")
	log.Println("========================================")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Region: %s (%.4f, %.4f) radius %.0f NM",
		cfg.ADSB.Region.Name, cfg.ADSB.Region.Latitude, cfg.ADSB.Region.Longitude, cfg.ADSB.Region.RadiusNM)

	database, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.InitSchema(context.Background()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	rateLimit := time.Duration(cfg.ADSB.RateLimitSeconds * float64(time.Second))
	source := adsb.NewAirplanesLiveClient(cfg.ADSB.BaseURL, rateLimit)
	defer source.Close()

	collector := &Collector{
		cfg:      cfg,
		db:       database,
		repo:     db.NewResultRepository(database),
		source:   source,
		engine:   ssd.NewEngine(cfg.Analysis.Params()),
		interval: time.Duration(cfg.ADSB.UpdateIntervalSeconds) * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received %v, shutting down...", sig)
		cancel()
	}()

	collector.Run(ctx)

	log.Printf("Collector stopped: %d snapshots, %d results, %d errors",
		collector.snapshots, collector.results, collector.errors)
}

// Run polls the feed until the context is cancelled. Old result rows are
// pruned once an hour.
func (c *Collector) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	log.Printf("Collecting every %v", c.interval)
	c.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cycle(ctx)
		case <-cleanup.C:
			deleted, err := c.db.CleanupOldResults(ctx, 24*time.Hour)
			if err != nil {
				log.Printf("Cleanup failed: %v", err)
			} else if deleted > 0 {
				log.Printf("Cleanup: removed %d old result rows", deleted)
			}
		}
	}
}

// cycle fetches one snapshot, analyzes it as a single window, and stores
// the results keyed to the window-aligned snapshot time.
func (c *Collector) cycle(ctx context.Context) {
	region := c.cfg.ADSB.Region

	aircraft, err := adsb.RetryWithBackoff(ctx, adsb.DefaultRetryConfig(), func() ([]adsb.Aircraft, error) {
		return c.source.Snapshot(ctx, region.Latitude, region.Longitude, region.RadiusNM)
	})
	if err != nil {
		c.errors++
		log.Printf("Snapshot failed: %v", err)
		return
	}
	c.snapshots++

	now := time.Now().UTC().Truncate(c.engine.Params().WindowWidth())
	samples := trajectory.Clean(adsb.ToSamples(aircraft, now))
	if len(samples) < 2 {
		log.Printf("Snapshot: %d aircraft, %d usable, nothing to analyze", len(aircraft), len(samples))
		return
	}

	states, envs := trajectory.States(samples)
	results := c.engine.AnalyzeWindow(states, envs)
	if len(results) == 0 {
		return
	}

	conn, err := db.EnsureConnection(c.db, c.cfg.Database)
	if err != nil {
		c.errors++
		log.Printf("Database unavailable: %v", err)
		return
	}
	if conn != c.db {
		c.db = conn
		c.repo = db.NewResultRepository(conn)
	}
	if err := c.repo.UpsertResults(ctx, now, results); err != nil {
		c.errors++
		log.Printf("Failed to store results: %v", err)
		return
	}
	c.results += len(results)

	minFPF, undefined := summarize(results)
	log.Printf("Snapshot: %d aircraft, %d results stored (min fpf %.3f, %d undefined)",
		len(aircraft), len(results), minFPF, undefined)
}

func summarize(results []ssd.Result) (minFPF float64, undefined int) {
	minFPF = math.NaN()
	for _, r := range results {
		if !r.Defined {
			undefined++
			continue
		}
		if math.IsNaN(minFPF) || r.FPF < minFPF {
			minFPF = r.FPF
		}
	}
	return minFPF, undefined
}
