package ssd

import (
	"math"
	"testing"
	"time"

	"github.com/unklstewy/groundscope/pkg/geometry"
	"github.com/unklstewy/groundscope/pkg/performance"
)

// headOnTaxiWindow builds two taxiing aircraft ~1.1 km apart, closing head-on
// at 10 kt each. Both are constrained but neither is boxed in.
func headOnTaxiWindow() ([]State, []performance.Envelope) {
	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	states := []State{
		{
			Time:     at,
			Callsign: "AAL100",
			Position: geometry.Geographic{Latitude: 33.9400, Longitude: -118.4081},
			Velocity: VelocityFromTrack(10, 0),
		},
		{
			Time:     at,
			Callsign: "UAL200",
			Position: geometry.Geographic{Latitude: 33.9500, Longitude: -118.4081},
			Velocity: VelocityFromTrack(10, 180),
		},
	}
	taxi := performance.Lookup("TAXI")
	return states, []performance.Envelope{taxi, taxi}
}

func TestAnalyzeWindowDegenerateInputs(t *testing.T) {
	engine := NewEngine(DefaultParams())
	states, envs := headOnTaxiWindow()

	t.Run("Single aircraft yields no results", func(t *testing.T) {
		if got := engine.AnalyzeWindow(states[:1], envs[:1]); got != nil {
			t.Errorf("Expected nil results, got %d", len(got))
		}
	})

	t.Run("Empty window yields no results", func(t *testing.T) {
		if got := engine.AnalyzeWindow(nil, nil); got != nil {
			t.Errorf("Expected nil results, got %d", len(got))
		}
	})

	t.Run("Mismatched slices yield no results", func(t *testing.T) {
		if got := engine.AnalyzeWindow(states, envs[:1]); got != nil {
			t.Errorf("Expected nil results, got %d", len(got))
		}
	})
}

func TestAnalyzeWindowHeadOn(t *testing.T) {
	engine := NewEngine(DefaultParams())
	states, envs := headOnTaxiWindow()

	results := engine.AnalyzeWindow(states, envs)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	for i, res := range results {
		if res.Callsign != states[i].Callsign {
			t.Errorf("Result %d: expected callsign %s, got %s", i, states[i].Callsign, res.Callsign)
		}
		if !res.Defined {
			t.Errorf("Result %d: expected a defined metric", i)
		}
		if res.FPF <= 0 || res.FPF >= 1 {
			t.Errorf("Result %d: expected 0 < fpf < 1 for constrained traffic, got %.6f", i, res.FPF)
		}
	}
}

func TestAnalyzeWindowIdempotent(t *testing.T) {
	engine := NewEngine(DefaultParams())
	states, envs := headOnTaxiWindow()

	first := engine.AnalyzeWindow(states, envs)
	second := engine.AnalyzeWindow(states, envs)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Result %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAnalyzeWindowNoNeighbors(t *testing.T) {
	t.Run("Out-of-range traffic leaves the ring free", func(t *testing.T) {
		params := DefaultParams()
		params.ADSBRangeMeters = 500 // pair distance ~1.1 km
		engine := NewEngine(params)

		states, envs := headOnTaxiWindow()
		results := engine.AnalyzeWindow(states, envs)

		for i, res := range results {
			if !res.Defined || res.FPF != 1 {
				t.Errorf("Result %d: expected fpf exactly 1 with no in-range neighbors, got %+v", i, res)
			}
		}
	})

	t.Run("Duplicate callsigns never obstruct each other", func(t *testing.T) {
		engine := NewEngine(DefaultParams())
		states, envs := headOnTaxiWindow()
		states[1].Callsign = states[0].Callsign

		results := engine.AnalyzeWindow(states, envs)
		for i, res := range results {
			if !res.Defined || res.FPF != 1 {
				t.Errorf("Result %d: expected fpf exactly 1 for duplicate records, got %+v", i, res)
			}
		}
	})
}

func TestAnalyzeWindowUndefined(t *testing.T) {
	// A zero-width envelope has no reachable velocities at all; the metric
	// cannot be computed and must be reported as undefined, not as 0 or 1.
	engine := NewEngine(DefaultParams())
	states, _ := headOnTaxiWindow()
	stopped := performance.Envelope{Vmin: 0, Vmax: 0, Separation: 60}
	envs := []performance.Envelope{stopped, stopped}

	results := engine.AnalyzeWindow(states, envs)
	for i, res := range results {
		if res.Defined {
			t.Errorf("Result %d: expected undefined metric for zero-width envelope, got fpf %.6f", i, res.FPF)
		}
	}
}

func TestVelocityRegionPartition(t *testing.T) {
	// FRV and ARV partition the reachable ring, so their areas must sum to
	// the sampled ring area up to clipping tolerance.
	engine := NewEngine(DefaultParams())
	states, envs := headOnTaxiWindow()

	separation := envs[0].Separation
	positions := []geometry.Geographic{states[0].Position, states[1].Position}
	pairs := geometry.Compute(positions, separation)

	for i := range states {
		frv, arv := engine.velocityRegionAreas(i, states, envs[i], pairs, separation)
		if frv <= 0 || arv <= 0 {
			t.Fatalf("Aircraft %d: expected both regions non-empty, got frv=%.4f arv=%.4f", i, frv, arv)
		}

		ring := VelocityRing(envs[i].Vmin, envs[i].Vmax, engine.Params().RingSamples)
		want := ring.Area()
		got := frv + arv
		if relErr := math.Abs(got-want) / want; relErr > 1e-6 {
			t.Errorf("Aircraft %d: frv+arv=%.6f does not match ring area %.6f (rel err %.2e)",
				i, got, want, relErr)
		}
	}
}

func TestAnalyzeWindowParallel(t *testing.T) {
	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// A small crowd of taxiing aircraft in a rough line.
	var states []State
	var envs []performance.Envelope
	callsigns := []string{"AAL1", "UAL2", "DAL3", "SWA4", "JBU5", "ASA6"}
	for i, cs := range callsigns {
		states = append(states, State{
			Time:     at,
			Callsign: cs,
			Position: geometry.Geographic{Latitude: 33.94 + 0.002*float64(i), Longitude: -118.4081},
			Velocity: VelocityFromTrack(float64(5+i), float64(i*60)),
		})
		envs = append(envs, performance.Lookup("TAXI"))
	}

	serial := NewEngine(Params{LookaheadSeconds: 1, RingSamples: 180, Workers: 1}).AnalyzeWindow(states, envs)
	parallel := NewEngine(Params{LookaheadSeconds: 1, RingSamples: 180, Workers: 4}).AnalyzeWindow(states, envs)

	if len(serial) != len(parallel) {
		t.Fatalf("Expected equal result counts, got %d and %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Errorf("Result %d differs: serial %+v vs parallel %+v", i, serial[i], parallel[i])
		}
	}
}

func TestNewEngineDefaults(t *testing.T) {
	engine := NewEngine(Params{LookaheadSeconds: 2})
	p := engine.Params()

	if p.RingSamples != DefaultRingSamples {
		t.Errorf("Expected ring samples default %d, got %d", DefaultRingSamples, p.RingSamples)
	}
	if p.ADSBRangeMeters != DefaultADSBRangeMeters {
		t.Errorf("Expected sensor range default %.1f, got %.1f", DefaultADSBRangeMeters, p.ADSBRangeMeters)
	}
	if got := p.WindowWidth(); got != 2*time.Second {
		t.Errorf("Expected 2 s window width, got %v", got)
	}
}
