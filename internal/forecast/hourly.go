package forecast

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/urtzik/euskalmet-bridge/internal/condition"
	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

// parseRangeHour extracts the starting hour from a textual bucket range
// of the form "LocalTime:[HH:00:00:000..HH:59:59:999]".
func parseRangeHour(s string) (int, error) {
	_, after, found := strings.Cut(s, "[")
	if !found {
		return 0, fmt.Errorf("no interval in range %q", s)
	}
	hourStr, _, found := strings.Cut(after, ":")
	if !found {
		return 0, fmt.Errorf("no hour in range %q", s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("bad hour %q in range %q", hourStr, s)
	}
	return hour, nil
}

// extractHourly flattens one day's hourly buckets onto the target date.
// Entries without a condition code are dropped.
func extractHourly(trends []euskalmet.HourlyTrend, targetDay time.Time, mapper condition.Mapper) []Hour {
	var hours []Hour
	for _, trend := range trends {
		hour, err := parseRangeHour(trend.Range)
		if err != nil {
			log.Printf("forecast: could not parse time range: %v", err)
			continue
		}

		if trend.SymbolSet == nil || trend.SymbolSet.Weather == nil || trend.SymbolSet.Weather.ID == "" {
			continue
		}
		code := trend.SymbolSet.Weather.ID

		ts := time.Date(targetDay.Year(), targetDay.Month(), targetDay.Day(), hour, 0, 0, 0, targetDay.Location())
		hours = append(hours, Hour{
			Time:                     ts,
			Temperature:              fieldValue(trend.Temperature),
			Precipitation:            fieldValue(trend.Precipitation),
			PrecipitationProbability: fieldValue(trend.PrecipitationProbability),
			WindSpeed:                fieldValue(trend.WindSpeed),
			WindDirection:            fieldValue(trend.WindDirection),
			Humidity:                 fieldValue(trend.Humidity),
			Pressure:                 fieldValue(trend.Pressure),
			ConditionCode:            code,
			Condition:                mapper.Map(code, ts),
		})
	}
	return hours
}

// filterAndSortHourly combines both days' buckets, sorts ascending and
// keeps only entries at or after the current hour.
func filterAndSortHourly(hours []Hour, now time.Time) []Hour {
	cutoff := now.Truncate(time.Hour)

	var kept []Hour
	for _, h := range hours {
		if h.Time.Before(cutoff) {
			continue
		}
		kept = append(kept, h)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Time.Before(kept[j].Time) })
	return kept
}
