package euskalmet

import (
	"context"
	"time"
)

// The weather payloads below mirror the provider's nested JSON shapes.
// Every field is optional on the wire; decode keeps them as pointers and
// the forecast package flattens them into normalized records.

// ValueField is the provider's ubiquitous {"value": x} wrapper.
type ValueField struct {
	Value *float64 `json:"value"`
}

// PrecipEntry is one period-tagged entry of precipitationAccumulated.
// The measured value hides under two nested "value" wrappers.
type PrecipEntry struct {
	Period *int        `json:"period"`
	Value  *ValueField `json:"value"`
}

// ReportBody is the current-conditions record of the reports endpoint.
// Beware: winddirection actually carries wind speed in km/h and
// windspeed carries the direction. See forecast.CorrectKnownFieldSwap.
type ReportBody struct {
	Temperature              *ValueField   `json:"temperature"`
	Humidity                 *ValueField   `json:"humidity"`
	Pressure                 *ValueField   `json:"pressure"`
	WindDirection            *ValueField   `json:"winddirection"`
	WindSpeed                *ValueField   `json:"windspeed"`
	PrecipitationAccumulated []PrecipEntry `json:"precipitationAccumulated"`
}

type ReportPayload struct {
	Report *ReportBody `json:"report"`
}

// DailyTrend is one per-day forecast entry of the trends endpoint.
type DailyTrend struct {
	Date             string `json:"date"`
	TemperatureRange *struct {
		Max *float64 `json:"max"`
		Min *float64 `json:"min"`
	} `json:"temperatureRange"`
	Weather *struct {
		ID string `json:"id"`
	} `json:"weather"`
}

type TrendsPayload struct {
	TrendsByDate *struct {
		Set []DailyTrend `json:"set"`
	} `json:"trendsByDate"`
}

// HourlyTrend is one time-range bucket of the trends/measures endpoint.
// Range encodes the hour as "LocalTime:[HH:00:00:000..HH:59:59:999]".
type HourlyTrend struct {
	Range                    string      `json:"range"`
	Temperature              *ValueField `json:"temperature"`
	Precipitation            *ValueField `json:"precipitation"`
	PrecipitationProbability *ValueField `json:"precipitationProbability"`
	WindSpeed                *ValueField `json:"windspeed"`
	WindDirection            *ValueField `json:"winddirection"`
	Humidity                 *ValueField `json:"humidity"`
	Pressure                 *ValueField `json:"pressure"`
	SymbolSet                *struct {
		Weather *struct {
			ID string `json:"id"`
		} `json:"weather"`
	} `json:"symbolSet"`
}

type HourlyTrendsPayload struct {
	Trends *struct {
		Set []HourlyTrend `json:"set"`
	} `json:"trends"`
}

// FetchReport retrieves the latest current-conditions report for a
// location. A missing payload comes back as (nil, nil); only auth and
// transport failures error.
func (c *Client) FetchReport(ctx context.Context, regionID, zoneID, locationID string, day time.Time) (*ReportBody, error) {
	var payload ReportPayload
	found, err := c.getJSON(ctx, reportPath(regionID, zoneID, locationID, day), 30*time.Second, &payload)
	if err != nil {
		return nil, err
	}
	if !found || payload.Report == nil {
		return nil, nil
	}
	return payload.Report, nil
}

// FetchDailyTrends retrieves the daily trend forecast issued at `at`.
func (c *Client) FetchDailyTrends(ctx context.Context, regionID, zoneID, locationID string, at time.Time) ([]DailyTrend, error) {
	var payload TrendsPayload
	found, err := c.getJSON(ctx, trendsPath(regionID, zoneID, locationID, at, at), 30*time.Second, &payload)
	if err != nil {
		return nil, err
	}
	if !found || payload.TrendsByDate == nil {
		return nil, nil
	}
	return payload.TrendsByDate.Set, nil
}

// FetchHourlyTrends retrieves the hourly trend buckets for forDay, as
// issued at `at`.
func (c *Client) FetchHourlyTrends(ctx context.Context, regionID, zoneID, locationID string, at, forDay time.Time) ([]HourlyTrend, error) {
	var payload HourlyTrendsPayload
	found, err := c.getJSON(ctx, hourlyTrendsPath(regionID, zoneID, locationID, at, forDay), 30*time.Second, &payload)
	if err != nil {
		return nil, err
	}
	if !found || payload.Trends == nil {
		return nil, nil
	}
	return payload.Trends.Set, nil
}
