// Package station discovers a telemetry station's sensor inventory and
// normalizes its readings into a flat set of logical measurements.
package station

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

// ReadingSet is one refresh cycle's worth of normalized measurements.
// Values holds only the logical names that yielded a non-null reading
// this cycle; a missing key means "unavailable now", never "use the
// previous value".
type ReadingSet struct {
	StationID   string             `json:"stationId"`
	StationName string             `json:"stationName,omitempty"`
	Values      map[string]float64 `json:"values"`
	LastUpdate  time.Time          `json:"lastUpdate"`
}

// AvailableNames returns the logical names satisfied in this cycle,
// sorted for stable output.
func (r ReadingSet) AvailableNames() []string {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CacheConfig controls how long discovery results live. Zero means the
// original policy: inventory cached for the coordinator lifetime,
// capability lists refetched every cycle.
type CacheConfig struct {
	InventoryTTL  time.Duration
	CapabilityTTL time.Duration
}

// Coordinator owns the per-station refresh state. The scheduler invokes
// Refresh serially, never concurrently for the same coordinator.
type Coordinator struct {
	client    *euskalmet.Client
	stationID string
	cache     CacheConfig

	stationName     string
	inventory       map[string]euskalmet.SensorRef
	inventoryAt     time.Time
	inventoryLoaded bool
	capabilities    map[string][]euskalmet.Meteor
	capabilitiesAt  map[string]time.Time
}

func NewCoordinator(client *euskalmet.Client, stationID string, cache CacheConfig) *Coordinator {
	return &Coordinator{
		client:         client,
		stationID:      stationID,
		cache:          cache,
		capabilities:   make(map[string][]euskalmet.Meteor),
		capabilitiesAt: make(map[string]time.Time),
	}
}

// StationID returns the configured station identity.
func (c *Coordinator) StationID() string {
	return c.stationID
}

// Refresh runs one full poll cycle and returns a complete ReadingSet, or
// an error that aborts the whole cycle (auth failure, or the inventory
// call failing). One bad sensor never blanks the rest of the set.
func (c *Coordinator) Refresh(ctx context.Context) (ReadingSet, error) {
	cycle := uuid.NewString()

	if err := c.ensureInventory(ctx); err != nil {
		if errors.Is(err, euskalmet.ErrAuthFailed) {
			return ReadingSet{}, err
		}
		return ReadingSet{}, fmt.Errorf("%w: station info for %s: %v", euskalmet.ErrTemporary, c.stationID, err)
	}

	result := ReadingSet{
		StationID:   c.stationID,
		StationName: c.stationName,
		Values:      make(map[string]float64),
		LastUpdate:  time.Now().UTC(),
	}

	for sensorID := range c.inventory {
		meteors, err := c.sensorCapabilities(ctx, sensorID)
		if err != nil {
			if errors.Is(err, euskalmet.ErrAuthFailed) {
				return ReadingSet{}, err
			}
			log.Printf("station %s cycle %s: skipping sensor %s: %v", c.stationID, cycle, sensorID, err)
			continue
		}

		for _, meteor := range meteors {
			key := MeasureKey{MeasureType: meteor.MeasureType, MeasureID: meteor.MeasureID}
			names := logicalNamesFor(key)
			if len(names) == 0 {
				continue
			}

			value, err := c.client.FetchReading(ctx, c.stationID, sensorID, meteor.MeasureType, meteor.MeasureID)
			if err != nil {
				if errors.Is(err, euskalmet.ErrAuthFailed) {
					return ReadingSet{}, err
				}
				log.Printf("station %s cycle %s: reading %s/%s via sensor %s failed: %v",
					c.stationID, cycle, meteor.MeasureType, meteor.MeasureID, sensorID, err)
				continue
			}
			if value == nil {
				continue
			}

			for _, name := range names {
				result.Values[name] = *value
			}
		}
	}

	available := result.AvailableNames()
	if len(available) == 0 {
		log.Printf("station %s cycle %s: completed with no readings", c.stationID, cycle)
	} else {
		log.Printf("INFO: station %s cycle %s: retrieved %v", c.stationID, cycle, available)
	}

	return result, nil
}

// ensureInventory populates the sensor inventory once per coordinator
// lifetime (or per InventoryTTL when configured). The loaded flag is the
// explicit reset condition; emptiness is not used for first-call
// detection.
func (c *Coordinator) ensureInventory(ctx context.Context) error {
	if c.inventoryLoaded {
		if c.cache.InventoryTTL <= 0 || time.Since(c.inventoryAt) < c.cache.InventoryTTL {
			return nil
		}
	}

	info, err := c.client.FetchStationInfo(ctx, c.stationID)
	if err != nil {
		return err
	}

	inventory := make(map[string]euskalmet.SensorRef, len(info.Sensors))
	for _, ref := range info.Sensors {
		id := ref.KeyID()
		if id == "" {
			continue
		}
		inventory[id] = ref
	}

	c.stationName = info.DisplayName()
	c.inventory = inventory
	c.inventoryAt = time.Now()
	c.inventoryLoaded = true

	log.Printf("INFO: station %s initialized: %q with %d sensors", c.stationID, c.stationName, len(inventory))
	return nil
}

// sensorCapabilities fetches the (measureType, measureId) pairs one
// sensor reports, with an optional TTL cache. The default refetches each
// cycle, matching the provider's expectation that capabilities can drift.
func (c *Coordinator) sensorCapabilities(ctx context.Context, sensorID string) ([]euskalmet.Meteor, error) {
	if c.cache.CapabilityTTL > 0 {
		if at, ok := c.capabilitiesAt[sensorID]; ok && time.Since(at) < c.cache.CapabilityTTL {
			return c.capabilities[sensorID], nil
		}
	}

	meteors, err := c.client.FetchSensorDetails(ctx, sensorID)
	if err != nil {
		return nil, err
	}

	if c.cache.CapabilityTTL > 0 {
		c.capabilities[sensorID] = meteors
		c.capabilitiesAt[sensorID] = time.Now()
	}
	return meteors, nil
}
