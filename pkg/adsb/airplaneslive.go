package adsb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// AirplanesLiveClient implements Source for the airplanes.live API.
// API Documentation: https://airplanes.live/api-guide/
type AirplanesLiveClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAirplanesLiveClient creates a new airplanes.live API client.
// baseURL should be "https://api.airplanes.live/v2" (or custom for testing).
// minInterval is the minimum time between API calls; values ≤ 0 disable
// client-side rate limiting.
func NewAirplanesLiveClient(baseURL string, minInterval time.Duration) *AirplanesLiveClient {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &AirplanesLiveClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Snapshot returns all aircraft within a radius of a point, using the
// /point/[lat]/[lon]/[radius] endpoint. The API caps the radius at 250
// nautical miles.
func (c *AirplanesLiveClient) Snapshot(ctx context.Context, centerLat, centerLon, radiusNM float64) ([]Aircraft, error) {
	if radiusNM > 250.0 {
		radiusNM = 250.0
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	url := fmt.Sprintf("%s/point/%.4f/%.4f/%.0f", c.baseURL, centerLat, centerLon, radiusNM)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aircraft data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
			Message:    "rate limit exceeded",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp airplanesLiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	// Convert, skipping aircraft without a usable position.
	aircraft := make([]Aircraft, 0, len(apiResp.Aircraft))
	for _, ac := range apiResp.Aircraft {
		if ac.Lat == nil || ac.Lon == nil {
			continue
		}
		aircraft = append(aircraft, convertAirplanesLiveAircraft(ac))
	}

	return aircraft, nil
}

// Close cleanly shuts down the client.
// For airplanes.live this is a no-op as there are no persistent connections.
func (c *AirplanesLiveClient) Close() error {
	return nil
}

// airplanesLiveResponse represents the JSON response from the airplanes.live
// API.
type airplanesLiveResponse struct {
	// Aircraft is the array of aircraft data
	Aircraft []airplanesLiveAircraft `json:"ac"`

	// Total number of aircraft
	Total int `json:"total"`

	// Current timestamp
	Now float64 `json:"now"`
}

// airplanesLiveAircraft is a single aircraft in the API response.
// Field documentation: https://airplanes.live/adsb-field-explanations/
type airplanesLiveAircraft struct {
	// Hex is the ICAO Mode S hex code (e.g., "a12345")
	Hex string `json:"hex"`

	// Flight is the callsign/flight number
	Flight *string `json:"flight"`

	// Lat is latitude in decimal degrees
	Lat *float64 `json:"lat"`

	// Lon is longitude in decimal degrees
	Lon *float64 `json:"lon"`

	// AltBaro is barometric altitude in feet, or the string "ground"
	AltBaro interface{} `json:"alt_baro"`

	// Gs is ground speed in knots
	Gs *float64 `json:"gs"`

	// Track is ground track in degrees (0-360)
	Track *float64 `json:"track"`

	// Seen is seconds since last position update
	Seen *float64 `json:"seen"`
}

// convertAirplanesLiveAircraft converts an API record to our Aircraft type.
func convertAirplanesLiveAircraft(ac airplanesLiveAircraft) Aircraft {
	aircraft := Aircraft{
		ICAO: ac.Hex,
	}

	if ac.Flight != nil {
		aircraft.Callsign = strings.TrimSpace(*ac.Flight)
	}
	if ac.Lat != nil {
		aircraft.Latitude = *ac.Lat
	}
	if ac.Lon != nil {
		aircraft.Longitude = *ac.Lon
	}
	if ac.Gs != nil {
		aircraft.GroundSpeed = *ac.Gs
	}
	if ac.Track != nil {
		aircraft.Track = *ac.Track
	}

	// alt_baro is "ground" for surface traffic, a number when airborne.
	if s, ok := ac.AltBaro.(string); ok && s == "ground" {
		aircraft.OnGround = true
	}

	// Timestamp from "seen" seconds ago.
	if ac.Seen != nil {
		seenDuration := time.Duration(*ac.Seen * float64(time.Second))
		aircraft.LastSeen = time.Now().UTC().Add(-seenDuration)
	} else {
		aircraft.LastSeen = time.Now().UTC()
	}

	return aircraft
}
