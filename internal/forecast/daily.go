package forecast

import (
	"log"
	"sort"
	"time"

	"github.com/urtzik/euskalmet-bridge/internal/condition"
	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

// extractDaily flattens daily trend entries, drops entries whose local
// calendar date precedes today and entries without a condition code, and
// returns the rest sorted ascending. The API publishes timestamps in UTC
// with a trailing zone marker; the date comparison must happen after an
// explicit UTC-to-local conversion, not on the raw strings.
func extractDaily(trends []euskalmet.DailyTrend, now time.Time, loc *time.Location, mapper condition.Mapper) []Day {
	today := dateOnly(now.In(loc))

	var days []Day
	for _, trend := range trends {
		if trend.Date == "" {
			continue
		}

		ts, err := time.Parse(time.RFC3339, trend.Date)
		if err != nil {
			log.Printf("forecast: could not parse trend date %q: %v", trend.Date, err)
			continue
		}

		if dateOnly(ts.In(loc)).Before(today) {
			continue
		}

		if trend.Weather == nil || trend.Weather.ID == "" {
			log.Printf("forecast: skipping day %s without condition code", trend.Date)
			continue
		}

		day := Day{
			Time:          ts,
			ConditionCode: trend.Weather.ID,
			Condition:     mapper.MapDay(trend.Weather.ID),
		}
		if trend.TemperatureRange != nil {
			day.TempMax = trend.TemperatureRange.Max
			day.TempMin = trend.TemperatureRange.Min
		}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Time.Before(days[j].Time) })
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
