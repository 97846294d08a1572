package trajectory

import (
	"sort"
	"time"

	"github.com/unklstewy/groundscope/pkg/ssd"
)

// Window is one fixed-width slice of the dataset: every sample whose
// timestamp falls in [Start, Start+width).
type Window struct {
	Start   time.Time
	Samples []Sample
}

// Windows groups samples into fixed-width, epoch-aligned windows, returned in
// time order. Sample order within a window is preserved from the input.
// width values below 1 ms fall back to the 1000 ms default.
func Windows(samples []Sample, width time.Duration) []Window {
	if width < time.Millisecond {
		width = time.Second
	}
	widthMs := width.Milliseconds()

	buckets := make(map[int64][]Sample)
	for _, s := range samples {
		ms := s.Time.UnixMilli()
		start := ms - mod(ms, widthMs)
		buckets[start] = append(buckets[start], s)
	}

	starts := make([]int64, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	windows := make([]Window, len(starts))
	for i, start := range starts {
		windows[i] = Window{
			Start:   time.UnixMilli(start).UTC(),
			Samples: buckets[start],
		}
	}
	return windows
}

// mod is a floor modulus: the result has the sign of the divisor, so
// pre-epoch timestamps still bucket onto aligned boundaries.
func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Analyze runs the full pipeline over a dataset: clean the samples, group
// them into windows of the engine's configured width, analyze each window,
// and concatenate the results in window time order. Windows with fewer than
// 2 aircraft contribute nothing.
func Analyze(engine *ssd.Engine, samples []Sample) []ssd.Result {
	cleaned := Clean(samples)
	windows := Windows(cleaned, engine.Params().WindowWidth())

	var results []ssd.Result
	for _, w := range windows {
		states, envs := States(w.Samples)
		results = append(results, engine.AnalyzeWindow(states, envs)...)
	}
	return results
}
