package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
	"github.com/urtzik/euskalmet-bridge/internal/store"
)

var validate = validator.New()

// Handlers bundles what the HTTP surface projects: the snapshot store
// written by the refresh jobs, plus the upstream client for the
// discovery pass-through routes.
type Handlers struct {
	Store  *store.MemoryStore
	Client *euskalmet.Client
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Readings
// and forecast routes are pure projections of the latest successful
// cycle; they never trigger an upstream fetch.
func RegisterRoutes(app *fiber.App, h Handlers) {
	v1 := app.Group("/api/v1")

	v1.Get("/readings/current", func(c *fiber.Ctx) error {
		stationID := c.Query("station")
		if stationID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "station query parameter is required")
		}

		set, err := h.Store.LatestReadings(stationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no readings for requested station")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch readings")
		}

		return c.JSON(fiber.Map{
			"stationId":   set.StationID,
			"stationName": set.StationName,
			"values":      set.Values,
			"available":   set.AvailableNames(),
			"lastUpdate":  set.LastUpdate,
		})
	})

	v1.Get("/readings/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sets, err := h.Store.ReadingsRange(req.Station, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no reading history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch reading history")
		}

		return c.JSON(fiber.Map{
			"station":  req.Station,
			"from":     req.From,
			"to":       req.To,
			"readings": sets,
		})
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		locationID := c.Query("location")
		if locationID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
		}

		bundle, err := h.Store.LatestForecast(locationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch forecast")
		}

		return c.JSON(bundle)
	})

	// Discovery pass-through, mainly for picking station and location
	// identifiers during configuration.
	v1.Get("/stations", func(c *fiber.Ctx) error {
		stations, err := h.Client.FetchStations(c.Context())
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(stations)
	})

	v1.Get("/geo/regions", func(c *fiber.Ctx) error {
		regions, err := h.Client.FetchRegions(c.Context())
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(regions)
	})

	v1.Get("/geo/zones", func(c *fiber.Ctx) error {
		regionID := c.Query("region")
		if regionID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "region query parameter is required")
		}
		zones, err := h.Client.FetchZones(c.Context(), regionID)
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(zones)
	})

	v1.Get("/geo/locations", func(c *fiber.Ctx) error {
		regionID := c.Query("region")
		zoneID := c.Query("zone")
		if regionID == "" || zoneID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "region and zone query parameters are required")
		}
		locations, err := h.Client.FetchLocations(c.Context(), regionID, zoneID)
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(locations)
	})
}

func upstreamError(err error) error {
	switch {
	case errors.Is(err, euskalmet.ErrAuthFailed):
		return fiber.NewError(fiber.StatusBadGateway, "upstream rejected credentials")
	case errors.Is(err, euskalmet.ErrTransport):
		return fiber.NewError(fiber.StatusBadGateway, "upstream unreachable")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "upstream error")
	}
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Station string    `validate:"required"`
	From    time.Time `validate:"required"`
	To      time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.Station = c.Query("station")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
