package insight

import (
	"time"
)

// Trend is the normalized temperature tendency over the analyzed window.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Insight is a validated, immutable analysis snapshot derived from a window
// of sensor readings. ID and GeneratedAt are assigned by the store at append
// time and are never taken from the generator.
type Insight struct {
	ID string `json:"id"`

	TemperatureAvg   float64 `json:"temperature_avg"`
	HumidityAvg      float64 `json:"humidity_avg"`
	WindAvg          float64 `json:"wind_avg"`
	TemperatureTrend Trend   `json:"temperature_trend"`
	TrendVariance    string  `json:"trend_variance"`
	ComfortScore     float64 `json:"comfort_score"`
	DayType          string  `json:"day_type"`

	// Alerts in the order the generator produced them; may be empty.
	Alerts []string `json:"alerts"`

	Summary        string  `json:"summary"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Candidate is a freshly parsed, untrusted key-value record recovered from
// generator output. It only becomes an Insight after validation.
type Candidate map[string]any
