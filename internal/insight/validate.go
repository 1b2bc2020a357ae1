package insight

import (
	"fmt"
	"math"
	"strings"
)

// candidateFields is the schema in declaration order. Validation walks this
// order inside every pass so the first reported violation is reproducible.
var candidateFields = []string{
	"temperature_avg",
	"humidity_avg",
	"wind_avg",
	"temperature_trend",
	"trend_variance",
	"comfort_score",
	"day_type",
	"alerts",
	"summary",
	"recommendation",
	"confidence",
}

var numberFields = map[string]bool{
	"temperature_avg": true,
	"humidity_avg":    true,
	"wind_avg":        true,
	"comfort_score":   true,
	"confidence":      true,
}

var textFields = map[string]bool{
	"temperature_trend": true,
	"trend_variance":    true,
	"day_type":          true,
	"summary":           true,
	"recommendation":    true,
}

// freeTextFields must carry descriptive content; whitespace-only is rejected.
var freeTextFields = []string{"trend_variance", "day_type", "summary", "recommendation"}

// ValidateCandidate checks every candidate field against the insight schema
// and promotes the candidate to an Insight. Passes run in a fixed order
// (presence, type, range, enum, non-empty text, alert elements) and stop at
// the first violation; a single bad field rejects the whole candidate.
//
// generated_at is never read from the candidate: the store assigns it at
// append time. Extra fields the generator fabricated are ignored.
func ValidateCandidate(c Candidate) (Insight, error) {
	// Presence. No field is silently defaulted.
	for _, name := range candidateFields {
		if _, ok := c[name]; !ok {
			return Insight{}, &SchemaError{Field: name, Reason: "missing"}
		}
	}

	// Types. encoding/json decodes every JSON number as float64.
	for _, name := range candidateFields {
		v := c[name]
		switch {
		case numberFields[name]:
			f, ok := v.(float64)
			if !ok {
				return Insight{}, &SchemaError{Field: name, Reason: fmt.Sprintf("expected a number, got %T", v)}
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return Insight{}, &SchemaError{Field: name, Reason: "must be a finite number"}
			}
		case textFields[name]:
			if _, ok := v.(string); !ok {
				return Insight{}, &SchemaError{Field: name, Reason: fmt.Sprintf("expected a string, got %T", v)}
			}
		case name == "alerts":
			if _, ok := v.([]any); !ok {
				return Insight{}, &SchemaError{Field: name, Reason: fmt.Sprintf("expected an array, got %T", v)}
			}
		}
	}

	// Ranges.
	for _, name := range []string{"comfort_score", "confidence"} {
		f := c[name].(float64)
		if f < 0 || f > 100 {
			return Insight{}, &SchemaError{Field: name, Reason: fmt.Sprintf("must be between 0 and 100, got %v", f)}
		}
	}

	// Enum.
	trend := Trend(c["temperature_trend"].(string))
	switch trend {
	case TrendRising, TrendFalling, TrendStable:
	default:
		return Insight{}, &SchemaError{
			Field:  "temperature_trend",
			Reason: fmt.Sprintf("must be one of rising, falling, stable; got %q", trend),
		}
	}

	// Non-empty free text.
	for _, name := range freeTextFields {
		if strings.TrimSpace(c[name].(string)) == "" {
			return Insight{}, &SchemaError{Field: name, Reason: "must not be empty"}
		}
	}

	// Alert elements, order preserved. An empty list is valid.
	rawAlerts := c["alerts"].([]any)
	alerts := make([]string, 0, len(rawAlerts))
	for i, el := range rawAlerts {
		s, ok := el.(string)
		if !ok {
			return Insight{}, &SchemaError{
				Field:  "alerts",
				Reason: fmt.Sprintf("element %d: expected a string, got %T", i, el),
			}
		}
		alerts = append(alerts, s)
	}

	return Insight{
		TemperatureAvg:   c["temperature_avg"].(float64),
		HumidityAvg:      c["humidity_avg"].(float64),
		WindAvg:          c["wind_avg"].(float64),
		TemperatureTrend: trend,
		TrendVariance:    c["trend_variance"].(string),
		ComfortScore:     c["comfort_score"].(float64),
		DayType:          c["day_type"].(string),
		Alerts:           alerts,
		Summary:          c["summary"].(string),
		Recommendation:   c["recommendation"].(string),
		Confidence:       c["confidence"].(float64),
	}, nil
}
