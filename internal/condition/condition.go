// Package condition translates Euskalmet weather condition codes into the
// normalized condition vocabulary, with day/night variants for clear sky.
package condition

import (
	"log"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Normalized condition tags.
const (
	Sunny          = "sunny"
	ClearNight     = "clear-night"
	PartlyCloudy   = "partlycloudy"
	Cloudy         = "cloudy"
	Fog            = "fog"
	Rainy          = "rainy"
	Pouring        = "pouring"
	Snowy          = "snowy"
	Lightning      = "lightning"
	LightningRainy = "lightning-rainy"
	SnowyRainy     = "snowy-rainy"
	Hail           = "hail"
	Windy          = "windy"
	Exceptional    = "exceptional"
)

// codeMap translates Euskalmet icon codes. Reference:
// https://www.euskalmet.euskadi.eus/media/assets/icons/euskalmet/
var codeMap = map[string]string{
	"00": Sunny, // despejado; night variant handled in Map

	"01": PartlyCloudy,
	"02": PartlyCloudy,
	"03": Cloudy,
	"04": Cloudy, // cubierto

	"05": Fog,
	"06": Fog, // niebla dispersa
	"07": Fog, // niebla en bancos
	"08": Fog, // niebla helada
	"09": Fog, // bruma

	"10": Rainy, // chubascos débiles
	"11": Rainy, // chubascos
	"12": Rainy, // lluvia débil
	"13": Rainy,
	"14": Pouring, // lluvia fuerte

	"15": Snowy,
	"16": Snowy,
	"17": Snowy,

	"18": Lightning,
	"19": LightningRainy,
	"20": LightningRainy,

	"21": SnowyRainy, // aguanieve
	"22": Hail,

	"23": Windy,
	"24": Exceptional, // viento muy fuerte
}

// Mapper resolves condition codes for one geographic point.
type Mapper struct {
	Latitude  float64
	Longitude float64
}

// Map translates a provider code into a normalized condition tag. Code
// "00" becomes clear-night after sunset. Unknown codes fall back to
// exceptional with a warning, never an error.
func (m Mapper) Map(code string, at time.Time) string {
	if code == "00" {
		if m.isNight(at) {
			return ClearNight
		}
		return Sunny
	}
	return m.mapCode(code)
}

// MapDay translates a code for a whole-day entry. The provider stamps
// daily forecasts near midnight, so the night variant never applies:
// a clear day stays sunny.
func (m Mapper) MapDay(code string) string {
	if code == "00" {
		return Sunny
	}
	return m.mapCode(code)
}

func (m Mapper) mapCode(code string) string {
	if code == "" {
		return Exceptional
	}
	tag, ok := codeMap[code]
	if !ok {
		log.Printf("condition: unknown weather condition code %q, using %q", code, Exceptional)
		return Exceptional
	}
	return tag
}

// isNight reports whether at falls strictly before sunrise or strictly
// after sunset at the mapper's coordinates. When the astronomical
// computation degenerates (polar day/night), a plain hour heuristic
// takes over.
func (m Mapper) isNight(at time.Time) bool {
	utc := at.UTC()
	rise, set := sunrise.SunriseSunset(m.Latitude, m.Longitude, utc.Year(), utc.Month(), utc.Day())
	if rise.IsZero() || set.IsZero() {
		h := at.Hour()
		return h < 6 || h >= 20
	}
	return utc.Before(rise) || utc.After(set)
}
