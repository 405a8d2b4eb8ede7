package forecast

import (
	"fmt"
	"testing"
	"time"

	"github.com/urtzik/euskalmet-bridge/internal/condition"
	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

var testMapper = condition.Mapper{Latitude: 43.263, Longitude: -2.935}

func f(v float64) *float64 { return &v }

func field(v float64) *euskalmet.ValueField {
	return &euskalmet.ValueField{Value: &v}
}

func TestCorrectKnownFieldSwap(t *testing.T) {
	// The "wind direction" field carries 36 km/h of wind speed; the
	// "wind speed" field carries a 270 degree direction.
	speed, direction := CorrectKnownFieldSwap(field(36), field(270))

	if speed == nil || *speed != 10.0 {
		t.Errorf("wind speed = %v, want 10.0 m/s", speed)
	}
	if direction == nil || *direction != 270 {
		t.Errorf("wind direction = %v, want 270", direction)
	}

	speed, direction = CorrectKnownFieldSwap(nil, nil)
	if speed != nil || direction != nil {
		t.Errorf("expected nil results for missing fields, got %v / %v", speed, direction)
	}
}

func TestExtractCurrent(t *testing.T) {
	report := &euskalmet.ReportBody{
		Temperature:   field(18.5),
		Humidity:      field(71),
		WindDirection: field(36), // actually speed, km/h
		WindSpeed:     field(180),
		PrecipitationAccumulated: []euskalmet.PrecipEntry{
			{Period: intp(10), Value: &euskalmet.ValueField{Value: f(0.1)}},
			{Period: intp(60), Value: &euskalmet.ValueField{Value: f(1.4)}},
			{Period: intp(720), Value: &euskalmet.ValueField{Value: f(9.9)}},
		},
	}

	current := extractCurrent(report)
	if current.Temperature == nil || *current.Temperature != 18.5 {
		t.Errorf("temperature = %v, want 18.5", current.Temperature)
	}
	if current.Pressure != nil {
		t.Errorf("pressure should be absent, got %v", *current.Pressure)
	}
	if current.WindSpeed == nil || *current.WindSpeed != 10.0 {
		t.Errorf("wind speed = %v, want 10.0", current.WindSpeed)
	}
	// The 60-unit period entry wins over the last one.
	if current.Precipitation == nil || *current.Precipitation != 1.4 {
		t.Errorf("precipitation = %v, want 1.4", current.Precipitation)
	}
}

func TestExtractPrecipitationFallsBackToLast(t *testing.T) {
	entries := []euskalmet.PrecipEntry{
		{Period: intp(10), Value: &euskalmet.ValueField{Value: f(0.1)}},
		{Period: intp(720), Value: &euskalmet.ValueField{Value: f(9.9)}},
	}
	got := extractPrecipitation(entries)
	if got == nil || *got != 9.9 {
		t.Errorf("precipitation = %v, want last entry 9.9", got)
	}

	if got := extractPrecipitation(nil); got != nil {
		t.Errorf("precipitation = %v, want nil for empty list", got)
	}
}

func TestExtractDailyFiltersPastDays(t *testing.T) {
	// "Now" is noon UTC; local time is UTC for determinism.
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	trends := []euskalmet.DailyTrend{
		dailyTrend("2025-03-11T23:00:00Z", "01"), // tomorrow
		dailyTrend("2025-03-09T23:00:00Z", "00"), // yesterday: dropped
		dailyTrend("2025-03-10T23:00:00Z", "13"), // today
		dailyTrend("2025-03-12T23:00:00Z", ""),   // no condition: dropped
	}

	days := extractDaily(trends, now, time.UTC, testMapper)
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].Time.Day() != 10 || days[1].Time.Day() != 11 {
		t.Errorf("days not sorted ascending: %v, %v", days[0].Time, days[1].Time)
	}
	if days[0].ConditionCode != "13" || days[0].Condition != condition.Rainy {
		t.Errorf("today = %s/%s, want 13/rainy", days[0].ConditionCode, days[0].Condition)
	}
}

func TestExtractDailyClearDayStaysSunny(t *testing.T) {
	// The provider stamps daily trends near midnight UTC. A clear-sky
	// entry for tomorrow must still map as a day condition, not as the
	// clear-night variant of its own timestamp.
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	trends := []euskalmet.DailyTrend{
		dailyTrend("2025-03-11T23:00:00Z", "00"),
	}
	days := extractDaily(trends, now, time.UTC, testMapper)
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if days[0].Condition != condition.Sunny {
		t.Errorf("clear day mapped to %q, want %q", days[0].Condition, condition.Sunny)
	}
}

func TestExtractDailyLocalDateBoundary(t *testing.T) {
	// A UTC timestamp of 23:00 yesterday is already "today" one hour
	// east of Greenwich: it must survive the past-day filter.
	madrid := time.FixedZone("CET", 3600)
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, madrid)

	trends := []euskalmet.DailyTrend{
		dailyTrend("2025-03-09T23:00:00Z", "04"),
	}
	days := extractDaily(trends, now, madrid, testMapper)
	if len(days) != 1 {
		t.Fatalf("entry at 23:00Z should count as today in CET; got %d entries", len(days))
	}
}

func TestParseRangeHour(t *testing.T) {
	hour, err := parseRangeHour("LocalTime:[14:00:00:000..14:59:59:999]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != 14 {
		t.Errorf("hour = %d, want 14", hour)
	}

	for _, bad := range []string{"", "LocalTime:14", "LocalTime:[xx:00]"} {
		if _, err := parseRangeHour(bad); err == nil {
			t.Errorf("parseRangeHour(%q) should fail", bad)
		}
	}
}

func TestHourlyFiltering(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 14, 25, 0, 0, time.UTC)

	trends := []euskalmet.HourlyTrend{
		hourlyTrend(16, "01"),
		hourlyTrend(13, "01"), // before current hour: dropped
		hourlyTrend(14, "13"), // current hour: kept
		hourlyTrend(15, ""),   // no condition: dropped
	}

	hours := filterAndSortHourly(extractHourly(trends, day, testMapper), now)
	if len(hours) != 2 {
		t.Fatalf("got %d hours, want 2", len(hours))
	}
	if hours[0].Time.Hour() != 14 || hours[1].Time.Hour() != 16 {
		t.Errorf("hours = %d, %d; want 14, 16 ascending", hours[0].Time.Hour(), hours[1].Time.Hour())
	}
	if hours[0].Condition != condition.Rainy {
		t.Errorf("condition = %q, want rainy", hours[0].Condition)
	}
}

func TestExtractHourlyFields(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	trend := euskalmet.HourlyTrend{
		Range:                    "LocalTime:[09:00:00:000..09:59:59:999]",
		Temperature:              field(12.5),
		Precipitation:            field(0.4),
		PrecipitationProbability: field(65),
		WindSpeed:                field(18),
		WindDirection:            field(300),
		Humidity:                 field(80),
		SymbolSet:                symbol("11"),
	}

	hours := extractHourly([]euskalmet.HourlyTrend{trend}, day, testMapper)
	if len(hours) != 1 {
		t.Fatalf("got %d hours, want 1", len(hours))
	}
	h := hours[0]
	if *h.Temperature != 12.5 || *h.PrecipitationProbability != 65 || *h.WindDirection != 300 {
		t.Errorf("unexpected extracted fields: %+v", h)
	}
	if h.Pressure != nil {
		t.Errorf("pressure should be absent")
	}
}

func intp(v int) *int { return &v }

func dailyTrend(date, code string) euskalmet.DailyTrend {
	trend := euskalmet.DailyTrend{Date: date}
	trend.TemperatureRange = &struct {
		Max *float64 `json:"max"`
		Min *float64 `json:"min"`
	}{Max: f(17), Min: f(8)}
	if code != "" {
		trend.Weather = &struct {
			ID string `json:"id"`
		}{ID: code}
	}
	return trend
}

func symbol(code string) *struct {
	Weather *struct {
		ID string `json:"id"`
	} `json:"weather"`
} {
	return &struct {
		Weather *struct {
			ID string `json:"id"`
		} `json:"weather"`
	}{Weather: &struct {
		ID string `json:"id"`
	}{ID: code}}
}

func hourlyTrend(hour int, code string) euskalmet.HourlyTrend {
	trend := euskalmet.HourlyTrend{
		Range:       formatRange(hour),
		Temperature: field(10),
	}
	if code != "" {
		trend.SymbolSet = symbol(code)
	}
	return trend
}

func formatRange(hour int) string {
	return fmt.Sprintf("LocalTime:[%02d:00:00:000..%02d:59:59:999]", hour, hour)
}
