package station

// Logical measurement names exposed by the bridge.
const (
	Temperature       = "temperature"
	Humidity          = "humidity"
	WindSpeed         = "wind_speed"
	WindSpeedMax      = "wind_speed_max"
	WindDirection     = "wind_direction"
	Pressure          = "pressure"
	Precipitation     = "precipitation"
	Irradiance        = "irradiance"
	SheetLevel1       = "sheet_level_1"
	SheetLevel2       = "sheet_level_2"
	SheetLevel3       = "sheet_level_3"
	Flow1             = "flow_1_computed"
	Flow2             = "flow_2_computed"
	MaxWaveHeight     = "max_wave_height"
	SignificantHeight = "significant_height"
	SurfPeriod        = "surf_period"
	PeakPeriod        = "peak_period"
	SpeedSigma        = "speed_sigma"
	DirectionSigma    = "direction_sigma"
)

// MeasureKey is a provider (measurement-type, measurement-id) pair.
type MeasureKey struct {
	MeasureType string
	MeasureID   string
}

// measurementMapping is the fixed table translating logical names into
// provider measure pairs. Matching is by exact pair equality.
var measurementMapping = map[string]MeasureKey{
	Temperature:       {"measuresForAir", "temperature"},
	Humidity:          {"measuresForAir", "humidity"},
	WindSpeed:         {"measuresForWind", "mean_speed"},
	WindSpeedMax:      {"measuresForWind", "max_speed"},
	WindDirection:     {"measuresForWind", "mean_direction"},
	SpeedSigma:        {"measuresForWind", "speed_sigma"},
	DirectionSigma:    {"measuresForWind", "direction_sigma"},
	Pressure:          {"measuresForAtmosphere", "pressure"},
	Precipitation:     {"measuresForWater", "precipitation"},
	Irradiance:        {"measuresForSun", "irradiance"},
	SheetLevel1:       {"measuresForWater", "sheet_level_1"},
	SheetLevel2:       {"measuresForWater", "sheet_level_2"},
	SheetLevel3:       {"measuresForWater", "sheet_level_3"},
	Flow1:             {"measuresForWater", "flow_1_computed"},
	Flow2:             {"measuresForWater", "flow_2_computed"},
	MaxWaveHeight:     {"measuresForWaves", "max_wave_height"},
	SignificantHeight: {"measuresForWaves", "significant_height"},
	SurfPeriod:        {"measuresForWaves", "surf_period"},
	PeakPeriod:        {"measuresForWaves", "peak_period"},
}

// logicalNamesFor returns the logical names matching one capability pair.
// Distinct logical names never share a pair today, but the lookup stays
// general.
func logicalNamesFor(key MeasureKey) []string {
	var names []string
	for name, mapped := range measurementMapping {
		if mapped == key {
			names = append(names, name)
		}
	}
	return names
}
