package euskalmet

import (
	"fmt"
	"time"
)

// DefaultBaseURL is the public Euskalmet open-data API root.
const DefaultBaseURL = "https://api.euskadi.eus/euskalmet/"

func stationsPath() string {
	return "stations"
}

func stationCurrentPath(stationID string) string {
	return fmt.Sprintf("stations/%s/current", stationID)
}

func sensorPath(sensorID string) string {
	return fmt.Sprintf("sensors/%s", sensorID)
}

// readingPath addresses one hour's readings bucket. The hour components
// come from the caller, already shifted for publication latency.
func readingPath(stationID, sensorID, measureType, measureID string, at time.Time) string {
	return fmt.Sprintf("readings/forStation/%s/%s/measures/%s/%s/at/%04d/%02d/%02d/%02d",
		stationID, sensorID, measureType, measureID,
		at.Year(), at.Month(), at.Day(), at.Hour())
}

func regionsPath() string {
	return "geo/regions"
}

func zonesPath(regionID string) string {
	return fmt.Sprintf("geo/regions/%s/zones", regionID)
}

func locationsPath(regionID, zoneID string) string {
	return fmt.Sprintf("geo/regions/%s/zones/%s/locations", regionID, zoneID)
}

func reportPath(regionID, zoneID, locationID string, day time.Time) string {
	return fmt.Sprintf("weather/regions/%s/zones/%s/locations/%s/reports/for/%04d/%02d/%02d/last",
		regionID, zoneID, locationID, day.Year(), day.Month(), day.Day())
}

func trendsPath(regionID, zoneID, locationID string, at, forDay time.Time) string {
	return fmt.Sprintf("weather/regions/%s/zones/%s/locations/%s/forecast/trends/at/%04d/%02d/%02d/for/%04d%02d%02d",
		regionID, zoneID, locationID,
		at.Year(), at.Month(), at.Day(),
		forDay.Year(), forDay.Month(), forDay.Day())
}

func hourlyTrendsPath(regionID, zoneID, locationID string, at, forDay time.Time) string {
	return fmt.Sprintf("weather/regions/%s/zones/%s/locations/%s/forecast/trends/measures/at/%04d/%02d/%02d/for/%04d%02d%02d",
		regionID, zoneID, locationID,
		at.Year(), at.Month(), at.Day(),
		forDay.Year(), forDay.Month(), forDay.Day())
}
