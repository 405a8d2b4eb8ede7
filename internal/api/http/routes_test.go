package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/urtzik/euskalmet-bridge/internal/station"
	"github.com/urtzik/euskalmet-bridge/internal/store"
)

func newTestApp(memStore *store.MemoryStore) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, Handlers{Store: memStore})
	return app
}

func TestCurrentReadingsNotFound(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(10, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/current?station=C076", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestCurrentReadingsProjection(t *testing.T) {
	memStore := store.NewMemoryStore(10, time.Hour)
	memStore.SaveReadings(station.ReadingSet{
		StationID:   "C076",
		StationName: "Bilbao",
		Values:      map[string]float64{station.Temperature: 18.4},
		LastUpdate:  time.Now().UTC(),
	})
	app := newTestApp(memStore)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/current?station=C076", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		StationName string             `json:"stationName"`
		Values      map[string]float64 `json:"values"`
		Available   []string           `json:"available"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.StationName != "Bilbao" {
		t.Errorf("stationName = %q, want Bilbao", body.StationName)
	}
	if body.Values[station.Temperature] != 18.4 {
		t.Errorf("temperature = %v, want 18.4", body.Values[station.Temperature])
	}
	if len(body.Available) != 1 || body.Available[0] != station.Temperature {
		t.Errorf("available = %v, want [temperature]", body.Available)
	}
}

func TestHistoryValidation(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(10, time.Hour))

	// Missing from/to must return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/history?station=C076", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// to before from must also return 400 (gtefield).
	from := time.Now().UTC().Format(time.RFC3339)
	to := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	url := fmt.Sprintf("/api/v1/readings/history?station=C076&from=%s&to=%s", from, to)
	req = httptest.NewRequest(http.MethodGet, url, nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestForecastNotFound(t *testing.T) {
	app := newTestApp(store.NewMemoryStore(10, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast?location=bilbao", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
