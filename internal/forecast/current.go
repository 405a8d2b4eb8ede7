package forecast

import (
	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

// CorrectKnownFieldSwap compensates for a long-standing upstream bug in
// the reports endpoint: the field literally named "winddirection"
// carries the wind speed in km/h, and "windspeed" carries the direction.
// Speed is converted to m/s on the way through. Kept as its own function
// so the workaround stays discoverable and testable against the API.
func CorrectKnownFieldSwap(windDirectionField, windSpeedField *euskalmet.ValueField) (speedMS, direction *float64) {
	if windDirectionField != nil && windDirectionField.Value != nil {
		ms := *windDirectionField.Value / 3.6
		speedMS = &ms
	}
	if windSpeedField != nil && windSpeedField.Value != nil {
		deg := *windSpeedField.Value
		direction = &deg
	}
	return speedMS, direction
}

// extractCurrent flattens a report body into a Current record.
func extractCurrent(report *euskalmet.ReportBody) *Current {
	if report == nil {
		return nil
	}

	current := &Current{}
	current.Temperature = fieldValue(report.Temperature)
	current.Humidity = fieldValue(report.Humidity)
	current.Pressure = fieldValue(report.Pressure)
	current.WindSpeed, current.WindDirection = CorrectKnownFieldSwap(report.WindDirection, report.WindSpeed)
	current.Precipitation = extractPrecipitation(report.PrecipitationAccumulated)
	return current
}

// extractPrecipitation picks the accumulated precipitation entry tagged
// with a 60-unit period, falling back to the last entry, then unwraps
// the nested value structure.
func extractPrecipitation(entries []euskalmet.PrecipEntry) *float64 {
	if len(entries) == 0 {
		return nil
	}

	chosen := entries[len(entries)-1]
	for _, entry := range entries {
		if entry.Period != nil && *entry.Period == 60 {
			chosen = entry
			break
		}
	}

	if chosen.Value == nil {
		return nil
	}
	return chosen.Value.Value
}

func fieldValue(f *euskalmet.ValueField) *float64 {
	if f == nil {
		return nil
	}
	return f.Value
}
