package euskalmet

import (
	"context"
	"time"
)

// Region, Zone and Location form the geographic hierarchy used to
// address forecasts.
type Region struct {
	ID   string `json:"regionId"`
	Name string `json:"regionName"`
}

type Zone struct {
	ID   string `json:"regionZoneId"`
	Name string `json:"regionZoneName"`
}

type Location struct {
	ID   string `json:"regionZoneLocationId"`
	Name string `json:"regionZoneLocationName"`
}

func (c *Client) FetchRegions(ctx context.Context) ([]Region, error) {
	var regions []Region
	if err := c.GetJSON(ctx, regionsPath(), 10*time.Second, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (c *Client) FetchZones(ctx context.Context, regionID string) ([]Zone, error) {
	var zones []Zone
	if err := c.GetJSON(ctx, zonesPath(regionID), 10*time.Second, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

func (c *Client) FetchLocations(ctx context.Context, regionID, zoneID string) ([]Location, error) {
	var locations []Location
	if err := c.GetJSON(ctx, locationsPath(regionID, zoneID), 10*time.Second, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}
