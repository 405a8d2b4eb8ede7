package euskalmet

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// Station is one entry of the station list endpoint. The API wavers
// between id/name and stationCode/stationName across versions, so both
// spellings are decoded and merged.
type Station struct {
	ID          string `json:"id"`
	StationCode string `json:"stationCode"`
	Name        string `json:"stationName"`
}

// Key returns whichever identifier the payload carried.
func (s Station) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.StationCode
}

// SensorRef is one sensor entry of a station's inventory.
type SensorRef struct {
	SensorKey string `json:"sensorKey"`
}

// KeyID extracts the sensor identity: the last path segment of the
// sensorKey field. Empty means the sensor must be skipped.
func (r SensorRef) KeyID() string {
	if r.SensorKey == "" {
		return ""
	}
	parts := strings.Split(r.SensorKey, "/")
	return parts[len(parts)-1]
}

// StationInfo is the decoded stations/{id}/current payload.
type StationInfo struct {
	Name    map[string]string `json:"name"`
	Sensors []SensorRef       `json:"sensors"`
}

// DisplayName prefers the Spanish station name, falling back to Basque.
func (i StationInfo) DisplayName() string {
	if n := i.Name["SPANISH"]; n != "" {
		return n
	}
	return i.Name["BASQUE"]
}

// Meteor is one (measurement-type, measurement-id) capability pair a
// sensor reports.
type Meteor struct {
	MeasureType string `json:"measureType"`
	MeasureID   string `json:"measureId"`
}

type sensorDetailsPayload struct {
	Meteors []Meteor `json:"meteors"`
}

type readingPayload struct {
	Values []*float64 `json:"values"`
}

// readingLag is how far behind "now" the readings endpoint is queried.
// The provider publishes with latency; the current hour's bucket is
// mostly empty.
const readingLag = 10 * time.Minute

// FetchStations lists all stations. Used by the credential validation
// path, so any miss is fatal for the call.
func (c *Client) FetchStations(ctx context.Context) ([]Station, error) {
	var stations []Station
	if err := c.GetJSON(ctx, stationsPath(), 10*time.Second, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// FetchStationInfo retrieves station metadata and the sensor inventory.
func (c *Client) FetchStationInfo(ctx context.Context, stationID string) (StationInfo, error) {
	var info StationInfo
	if err := c.GetJSON(ctx, stationCurrentPath(stationID), 30*time.Second, &info); err != nil {
		return StationInfo{}, err
	}
	return info, nil
}

// FetchSensorDetails retrieves the capability list for one sensor.
func (c *Client) FetchSensorDetails(ctx context.Context, sensorID string) ([]Meteor, error) {
	var payload sensorDetailsPayload
	if err := c.GetJSON(ctx, sensorPath(sensorID), 30*time.Second, &payload); err != nil {
		return nil, err
	}
	return payload.Meteors, nil
}

// FetchReading returns the most recent non-null value of the hour bucket
// preceding now minus the publication lag, or nil when the bucket is
// empty. Transport failures degrade to nil here: a single unreachable
// reading never aborts the cycle.
func (c *Client) FetchReading(ctx context.Context, stationID, sensorID, measureType, measureID string) (*float64, error) {
	at := time.Now().UTC().Add(-readingLag)
	path := readingPath(stationID, sensorID, measureType, measureID, at)

	var payload readingPayload
	found, err := c.getJSON(ctx, path, 30*time.Second, &payload)
	if err != nil {
		if errors.Is(err, ErrAuthFailed) {
			return nil, err
		}
		log.Printf("euskalmet: reading %s/%s for sensor %s unavailable: %v", measureType, measureID, sensorID, err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	return LastNonNull(payload.Values), nil
}

// LastNonNull scans a values sequence from the end and returns the first
// non-null entry, or nil when every slot is null.
func LastNonNull(values []*float64) *float64 {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != nil {
			return values[i]
		}
	}
	return nil
}
