package performance

import (
	"math"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantVmax float64
		wantSep  float64 // feet
	}{
		{"Missing status assumes pushback", "", 4, 175},
		{"Pushback", "PUSHBACK", 4, 175},
		{"Gate phases", "ARR_GATE", 4, 175},
		{"On surface", "ONSURFACE", 4, 175},
		{"Taxi", "TAXI", 30, 200},
		{"Taxi substring", "TAXI_OUT", 30, 200},
		{"On ramp", "ONRAMP", 30, 200},
		{"Departing", "DEPARTING", 30, 200},
		{"Takeoff", "TAKEOFF", 200, 2640},
		{"Landing", "LANDING", 200, 2640},
		{"Takeoff or landing composite", "TAKEOFF/LANDING", 200, 2640},
		{"Unknown phase treated as airborne", "HOLDING", 200, 2640},
		{"Case insensitive", "taxi", 30, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Lookup(tt.status)

			if env.Vmin != 0 {
				t.Errorf("Expected vmin 0, got %.1f", env.Vmin)
			}
			if env.Vmax != tt.wantVmax {
				t.Errorf("Expected vmax %.1f kt, got %.1f", tt.wantVmax, env.Vmax)
			}
			wantSep := tt.wantSep * FeetToMeters
			if math.Abs(env.Separation-wantSep) > 1e-9 {
				t.Errorf("Expected separation %.3f m, got %.3f", wantSep, env.Separation)
			}
		})
	}
}

func TestLookupAll(t *testing.T) {
	envs := LookupAll([]string{"PUSHBACK", "TAXI", "TAKEOFF"})
	if len(envs) != 3 {
		t.Fatalf("Expected 3 envelopes, got %d", len(envs))
	}
	if envs[0].Vmax != 4 || envs[1].Vmax != 30 || envs[2].Vmax != 200 {
		t.Errorf("Unexpected envelope order: %+v", envs)
	}
}
