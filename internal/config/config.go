package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// AppConfig is the persisted configuration blob: API credentials plus
// either a station identity, a forecast location identity, or both.
type AppConfig struct {
	// Credentials. The private key may be given inline (PEM) or as a
	// file path; Load resolves it to PEM bytes.
	PrivateKeyPEM []byte `validate:"required"`
	Fingerprint   string `validate:"required"`

	// Station sensor polling (optional).
	StationID string

	// Forecast polling (optional): the provider's geographic hierarchy
	// plus coordinates for sunrise/sunset computation.
	RegionID   string
	ZoneID     string
	LocationID string
	Latitude   float64
	Longitude  float64

	// Local timezone for calendar-date and hour arithmetic.
	Timezone *time.Location

	BaseURL  string
	TokenTTL time.Duration

	// Poll intervals.
	StationInterval time.Duration
	WeatherInterval time.Duration

	// Discovery cache lifetimes. Zero keeps the classic policy:
	// inventory cached until restart, capabilities refetched per cycle.
	InventoryTTL  time.Duration
	CapabilityTTL time.Duration

	// In-memory store retention.
	StoreMaxHistory int
	StoreMaxAge     time.Duration

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Fingerprint: os.Getenv("EUSKALMET_FINGERPRINT"),
		StationID:   os.Getenv("EUSKALMET_STATION_ID"),
		RegionID:    getenvDefault("EUSKALMET_REGION_ID", "basque_country"),
		ZoneID:      os.Getenv("EUSKALMET_ZONE_ID"),
		LocationID:  os.Getenv("EUSKALMET_LOCATION_ID"),
		BaseURL:     os.Getenv("EUSKALMET_BASE_URL"),
		Port:        getenvDefault("PORT", "8080"),
	}

	key, err := loadPrivateKey()
	if err != nil {
		return nil, err
	}
	cfg.PrivateKeyPEM = key

	cfg.Latitude = getenvFloat("EUSKALMET_LATITUDE", 43.263)
	cfg.Longitude = getenvFloat("EUSKALMET_LONGITUDE", -2.935)

	tzName := getenvDefault("EUSKALMET_TIMEZONE", "Europe/Madrid")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid EUSKALMET_TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = tz

	durations := []struct {
		dst *time.Duration
		env string
		def string
	}{
		{&cfg.TokenTTL, "EUSKALMET_TOKEN_TTL", "1h"},
		{&cfg.StationInterval, "STATION_INTERVAL", "10m"},
		{&cfg.WeatherInterval, "WEATHER_INTERVAL", "30m"},
		{&cfg.InventoryTTL, "INVENTORY_CACHE_TTL", "0s"},
		{&cfg.CapabilityTTL, "CAPABILITY_CACHE_TTL", "0s"},
		{&cfg.StoreMaxAge, "STORE_MAX_AGE", "24h"},
		{&cfg.HTTPTimeout, "HTTP_TIMEOUT", "30s"},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getenvDefault(d.env, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.env, err)
		}
		*d.dst = v
	}

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 144) // roughly 24h at 10-minute intervals

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.StationID == "" && cfg.LocationID == "" {
		return nil, fmt.Errorf("either EUSKALMET_STATION_ID or EUSKALMET_LOCATION_ID must be set")
	}
	if cfg.LocationID != "" && cfg.ZoneID == "" {
		return nil, fmt.Errorf("EUSKALMET_ZONE_ID is required when a location is configured")
	}

	return cfg, nil
}

// loadPrivateKey resolves the signing key from EUSKALMET_PRIVATE_KEY
// (inline PEM) or EUSKALMET_PRIVATE_KEY_FILE.
func loadPrivateKey() ([]byte, error) {
	if inline := os.Getenv("EUSKALMET_PRIVATE_KEY"); inline != "" {
		return []byte(inline), nil
	}
	if path := os.Getenv("EUSKALMET_PRIVATE_KEY_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading private key file: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("EUSKALMET_PRIVATE_KEY or EUSKALMET_PRIVATE_KEY_FILE must be set")
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
