package trajectory

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/unklstewy/groundscope/pkg/ssd"
)

// ReadSamples parses a trajectory dataset from CSV. The first row is a
// header; required columns are time, callsign, latitude, longitude, tas and
// heading, with status optional. Column order is free.
//
// Rows with missing or unparsable required fields are dropped, not failed:
// the dataset boundary is best-effort and only a structurally broken file
// (bad header, unreadable stream) is an error. dropped reports how many rows
// were discarded.
func ReadSamples(r io.Reader) (samples []Sample, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"time", "callsign", "latitude", "longitude", "tas", "heading"} {
		if _, ok := col[required]; !ok {
			return nil, 0, fmt.Errorf("CSV header missing %q column", required)
		}
	}
	statusCol, hasStatus := col["status"]

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read CSV row: %w", err)
		}

		s, ok := parseRow(row, col, statusCol, hasStatus)
		if !ok {
			dropped++
			continue
		}
		samples = append(samples, s)
	}

	return samples, dropped, nil
}

func parseRow(row []string, col map[string]int, statusCol int, hasStatus bool) (Sample, bool) {
	field := func(name string) (string, bool) {
		i := col[name]
		if i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var s Sample
	var ok bool

	raw, ok := field("time")
	if !ok || raw == "" {
		return Sample{}, false
	}
	s.Time, ok = parseTime(raw)
	if !ok {
		return Sample{}, false
	}

	if s.Callsign, ok = field("callsign"); !ok || s.Callsign == "" {
		return Sample{}, false
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"latitude", &s.Latitude},
		{"longitude", &s.Longitude},
		{"tas", &s.TAS},
		{"heading", &s.Heading},
	} {
		raw, ok := field(f.name)
		if !ok || raw == "" {
			return Sample{}, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			return Sample{}, false
		}
		*f.dst = v
	}

	if hasStatus && statusCol < len(row) {
		s.Status = strings.TrimSpace(row[statusCol])
	}

	return s, true
}

// parseTime accepts RFC3339 timestamps or numeric Unix epochs. Fractional
// epochs are interpreted as seconds, large integers as milliseconds.
func parseTime(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, false
	}
	// Heuristic: epochs past ~year 33000 in seconds are millisecond values.
	if v > 1e12 {
		return time.UnixMilli(int64(v)).UTC(), true
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

// WriteResults writes conflict results as CSV with a time,callsign,fpf
// header, in input order. An undefined FPF is written as an empty field so
// consumers can tell it apart from 0 and 1.
func WriteResults(w io.Writer, results []ssd.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "callsign", "fpf"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, res := range results {
		fpf := ""
		if res.Defined {
			fpf = strconv.FormatFloat(res.FPF, 'g', -1, 64)
		}
		if err := cw.Write([]string{res.Time.UTC().Format(time.RFC3339Nano), res.Callsign, fpf}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadResults parses a results CSV previously written by WriteResults.
func ReadResults(r io.Reader) ([]ssd.Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 3 || strings.ToLower(header[0]) != "time" {
		return nil, fmt.Errorf("unexpected results header: %v", header)
	}

	var results []ssd.Result
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(row) < 3 {
			continue
		}

		t, ok := parseTime(strings.TrimSpace(row[0]))
		if !ok {
			continue
		}
		res := ssd.Result{Time: t, Callsign: strings.TrimSpace(row[1])}
		if fpf := strings.TrimSpace(row[2]); fpf != "" {
			v, err := strconv.ParseFloat(fpf, 64)
			if err != nil {
				continue
			}
			res.FPF = v
			res.Defined = true
		}
		results = append(results, res)
	}
	return results, nil
}
