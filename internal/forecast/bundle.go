// Package forecast aggregates the three independent Euskalmet forecast
// endpoints for one location into a normalized bundle.
package forecast

import "time"

// Current is the flattened current-conditions record. Fields the report
// did not carry stay nil.
type Current struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	WindSpeed     *float64 `json:"windSpeed,omitempty"`     // m/s
	WindDirection *float64 `json:"windDirection,omitempty"` // degrees
	Precipitation *float64 `json:"precipitation,omitempty"` // mm accumulated
}

// Day is one daily forecast entry. Entries without a condition code are
// dropped during extraction.
type Day struct {
	Time          time.Time `json:"datetime"`
	TempMax       *float64  `json:"temperature,omitempty"`
	TempMin       *float64  `json:"temperatureLow,omitempty"`
	ConditionCode string    `json:"conditionCode"`
	Condition     string    `json:"condition"`
}

// Hour is one hourly forecast entry spanning today and tomorrow.
type Hour struct {
	Time                     time.Time `json:"datetime"`
	Temperature              *float64  `json:"temperature,omitempty"`
	Precipitation            *float64  `json:"precipitation,omitempty"`
	PrecipitationProbability *float64  `json:"precipitationProbability,omitempty"`
	WindSpeed                *float64  `json:"windSpeed,omitempty"`
	WindDirection            *float64  `json:"windDirection,omitempty"`
	Humidity                 *float64  `json:"humidity,omitempty"`
	Pressure                 *float64  `json:"pressure,omitempty"`
	ConditionCode            string    `json:"conditionCode"`
	Condition                string    `json:"condition"`
}

// Bundle is one refresh cycle's complete result. It is replaced whole on
// success and discarded whole on failure; consumers never see a mix of
// two cycles.
type Bundle struct {
	LocationID string    `json:"locationId"`
	Current    *Current  `json:"current,omitempty"`
	Daily      []Day     `json:"forecastDaily,omitempty"`
	Hourly     []Hour    `json:"forecastHourly,omitempty"`
	LastUpdate time.Time `json:"lastUpdate"`
}
