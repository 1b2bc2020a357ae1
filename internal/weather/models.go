package weather

import (
	"time"
)

// Location is an optional geographic position attached to a reading.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Reading is a single normalized sensor observation.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"` // always UTC
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`

	// Location of the sensor, if the collector reported one.
	Location *Location `json:"location,omitempty"`
}
