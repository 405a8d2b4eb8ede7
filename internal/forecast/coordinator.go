package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/urtzik/euskalmet-bridge/internal/condition"
	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

// Coordinator owns the forecast refresh state for one location of the
// region/zone/location hierarchy.
type Coordinator struct {
	client     *euskalmet.Client
	regionID   string
	zoneID     string
	locationID string
	loc        *time.Location
	mapper     condition.Mapper

	// now is swappable for tests.
	now func() time.Time
}

func NewCoordinator(client *euskalmet.Client, regionID, zoneID, locationID string, tz *time.Location, lat, lon float64) *Coordinator {
	if tz == nil {
		tz = time.Local
	}
	return &Coordinator{
		client:     client,
		regionID:   regionID,
		zoneID:     zoneID,
		locationID: locationID,
		loc:        tz,
		mapper:     condition.Mapper{Latitude: lat, Longitude: lon},
		now:        time.Now,
	}
}

// LocationID returns the configured location identity.
func (c *Coordinator) LocationID() string {
	return c.locationID
}

// Refresh issues the three independent fetches and assembles a Bundle.
// Losing the current-conditions report kills the cycle; losing either
// forecast degrades that field alone to absent.
func (c *Coordinator) Refresh(ctx context.Context) (Bundle, error) {
	cycle := uuid.NewString()
	nowUTC := c.now().UTC()
	nowLocal := nowUTC.In(c.loc)

	report, err := c.client.FetchReport(ctx, c.regionID, c.zoneID, c.locationID, nowUTC)
	if err != nil {
		if errors.Is(err, euskalmet.ErrAuthFailed) {
			return Bundle{}, err
		}
		return Bundle{}, fmt.Errorf("%w: current conditions for %s: %v", euskalmet.ErrTemporary, c.locationID, err)
	}
	current := extractCurrent(report)
	if current == nil {
		return Bundle{}, fmt.Errorf("%w: no current conditions report for %s", euskalmet.ErrTemporary, c.locationID)
	}

	daily := c.fetchDaily(ctx, cycle, nowUTC, nowLocal)
	hourly := c.fetchHourly(ctx, cycle, nowUTC, nowLocal)

	return Bundle{
		LocationID: c.locationID,
		Current:    current,
		Daily:      daily,
		Hourly:     hourly,
		LastUpdate: nowUTC,
	}, nil
}

func (c *Coordinator) fetchDaily(ctx context.Context, cycle string, nowUTC, nowLocal time.Time) []Day {
	trends, err := c.client.FetchDailyTrends(ctx, c.regionID, c.zoneID, c.locationID, nowUTC)
	if err != nil {
		log.Printf("forecast %s cycle %s: daily trends unavailable: %v", c.locationID, cycle, err)
		return nil
	}
	if len(trends) == 0 {
		log.Printf("forecast %s cycle %s: no daily trend data", c.locationID, cycle)
		return nil
	}
	return extractDaily(trends, nowLocal, c.loc, c.mapper)
}

// fetchHourly covers a rolling 24-hour-plus window with two calls, one
// for today and one for tomorrow.
func (c *Coordinator) fetchHourly(ctx context.Context, cycle string, nowUTC, nowLocal time.Time) []Hour {
	var all []Hour
	for dayOffset := 0; dayOffset <= 1; dayOffset++ {
		targetDay := nowLocal.AddDate(0, 0, dayOffset)

		trends, err := c.client.FetchHourlyTrends(ctx, c.regionID, c.zoneID, c.locationID, nowUTC, targetDay)
		if err != nil {
			log.Printf("forecast %s cycle %s: hourly trends for day+%d unavailable: %v", c.locationID, cycle, dayOffset, err)
			continue
		}
		all = append(all, extractHourly(trends, targetDay, c.mapper)...)
	}
	return filterAndSortHourly(all, nowLocal)
}
