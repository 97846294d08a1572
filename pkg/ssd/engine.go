package ssd

import (
	"sync"
	"time"

	"github.com/unklstewy/groundscope/pkg/geometry"
	"github.com/unklstewy/groundscope/pkg/performance"
)

// State is one aircraft's snapshot within an analysis window.
type State struct {
	// Time the sample was recorded
	Time time.Time

	// Callsign uniquely identifies the aircraft within the window
	Callsign string

	// Position in WGS84 decimal degrees
	Position geometry.Geographic

	// Velocity in knots, east/north components
	Velocity Velocity
}

// Result is the conflict metric for one aircraft in one window. Once emitted
// it is never mutated.
type Result struct {
	// Time of the aircraft's sample
	Time time.Time

	// Callsign of the aircraft
	Callsign string

	// FPF is the Free Path Fraction in [0, 1]: the share of the reachable
	// velocity ring left free of velocity obstacles. 1 = no conflict,
	// 0 = fully blocked. Meaningless when Defined is false.
	FPF float64

	// Defined is false when the metric could not be computed (both region
	// areas degenerate to zero, e.g. a vmin = vmax = 0 envelope). Undefined
	// results are reported, not dropped, so a consumer can tell "no
	// conflict" apart from "not computable".
	Defined bool
}

// Engine computes Free Path Fraction results window by window. Windows are
// independent snapshots; the engine keeps no state between calls and one
// Engine may be shared across goroutines.
type Engine struct {
	params  Params
	newClip func() ClipEngine
}

// NewEngine creates an engine with the given parameters and the default
// polygon clip engine.
func NewEngine(params Params) *Engine {
	return NewEngineWithClipper(params, NewClipEngine)
}

// NewEngineWithClipper creates an engine that obtains a fresh ClipEngine from
// newClip for every per-aircraft computation, keeping each computation's clip
// state exclusively owned.
func NewEngineWithClipper(params Params, newClip func() ClipEngine) *Engine {
	if params.RingSamples <= 0 {
		params.RingSamples = DefaultRingSamples
	}
	if params.ADSBRangeMeters <= 0 {
		params.ADSBRangeMeters = DefaultADSBRangeMeters
	}
	return &Engine{params: params, newClip: newClip}
}

// Params returns the engine's configuration.
func (e *Engine) Params() Params {
	return e.params
}

// AnalyzeWindow computes one Result per aircraft for a single window
// snapshot. states and envelopes are parallel slices.
//
// A window with fewer than 2 aircraft yields no results: with no pairs there
// is no conflict geometry to evaluate, and the window is skipped rather than
// reported. All other conditions resolve inside the engine; per-neighbor
// clip failures drop that neighbor's obstacle and nothing else.
func (e *Engine) AnalyzeWindow(states []State, envelopes []performance.Envelope) []Result {
	if len(states) < 2 || len(states) != len(envelopes) {
		return nil
	}

	// One horizontal separation per window, from the leading aircraft's
	// envelope, applied to the whole pair matrix.
	separation := envelopes[0].Separation

	positions := make([]geometry.Geographic, len(states))
	for i, s := range states {
		positions[i] = s.Position
	}
	pairs := geometry.Compute(positions, separation)

	results := make([]Result, len(states))

	workers := e.params.Workers
	if workers > len(states) {
		workers = len(states)
	}
	if workers < 2 {
		for i := range states {
			results[i] = e.analyzeAircraft(i, states, envelopes, pairs, separation)
		}
		return results
	}

	// Disjoint index stripes; results land in distinct slots and the pair
	// matrix is read-only, so no synchronization beyond the WaitGroup.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(states); i += workers {
				results[i] = e.analyzeAircraft(i, states, envelopes, pairs, separation)
			}
		}(w)
	}
	wg.Wait()

	return results
}

// analyzeAircraft runs the full per-aircraft pipeline: reachable ring,
// neighbor velocity obstacles, clipping into forbidden (FRV) and allowed
// (ARV) regions, and the FPF ratio.
func (e *Engine) analyzeAircraft(i int, states []State, envelopes []performance.Envelope, pairs *geometry.PairMatrix, separation float64) Result {
	env := envelopes[i]
	subject := states[i]

	frvArea, arvArea := e.velocityRegionAreas(i, states, env, pairs, separation)

	res := Result{Time: subject.Time, Callsign: subject.Callsign}
	if total := frvArea + arvArea; total > 0 {
		res.FPF = arvArea / total
		res.Defined = true
	}
	return res
}

// velocityRegionAreas returns the forbidden and allowed reachable-velocity
// areas for aircraft i. The two regions partition the reachable ring, so
// their areas sum to the ring area up to clipping tolerance.
func (e *Engine) velocityRegionAreas(i int, states []State, env performance.Envelope, pairs *geometry.PairMatrix, separation float64) (frvArea, arvArea float64) {
	clip := e.newClip()

	// Union of all in-range neighbors' velocity obstacles. A neighbor whose
	// obstacle the clip engine rejects is dropped from the union; the
	// remaining neighbors still constrain the aircraft.
	obstacles := Region{}
	for j := range states {
		if j == i {
			continue
		}
		// Duplicate records of the same aircraft never obstruct themselves.
		if states[j].Callsign == states[i].Callsign {
			continue
		}
		pair, mirrored, ok := pairs.Between(i, j)
		if !ok || pair.Distance >= e.params.ADSBRangeMeters {
			continue
		}

		vo := VelocityObstacle(pair, mirrored, separation, env.Vmax, states[j].Velocity)
		merged, err := clip.Union(obstacles, Region{vo})
		if err != nil {
			continue
		}
		obstacles = merged
	}

	if obstacles.Empty() {
		// Nothing within sensor range (or every obstacle was rejected):
		// the whole ring is allowed, analytically.
		return 0, AnnulusArea(env.Vmin, env.Vmax)
	}

	ring := VelocityRing(env.Vmin, env.Vmax, e.params.RingSamples)

	frv, errI := clip.Intersect(ring, obstacles)
	arv, errD := clip.Difference(ring, obstacles)
	if errI != nil || errD != nil {
		// The ring itself failed to clip; report the metric as undefined
		// rather than guessing either extreme.
		return 0, 0
	}

	switch {
	case arv.Empty():
		// Fully boxed in.
		return AnnulusArea(env.Vmin, env.Vmax), 0
	case frv.Empty():
		// No portion of the ring is forbidden.
		return 0, AnnulusArea(env.Vmin, env.Vmax)
	default:
		return frv.Area(), arv.Area()
	}
}
