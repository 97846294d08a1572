package trajectory

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/unklstewy/groundscope/pkg/ssd"
)

// resultRecord is the JSON Lines shape of one conflict result. An undefined
// FPF serializes as null.
type resultRecord struct {
	Time     time.Time `json:"time"`
	Callsign string    `json:"callsign"`
	FPF      *float64  `json:"fpf"`
}

// WriteResultsJSONL writes conflict results as JSON Lines, one object per
// result, in input order.
func WriteResultsJSONL(w io.Writer, results []ssd.Result) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		rec := resultRecord{
			Time:     res.Time.UTC(),
			Callsign: res.Callsign,
		}
		if res.Defined {
			fpf := res.FPF
			rec.FPF = &fpf
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}
