package forecast

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/urtzik/euskalmet-bridge/internal/auth"
	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
)

func testCredential(t *testing.T) auth.Credential {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	cred, err := auth.NewCredential(pemBytes, "ab:cd:ef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cred
}

const reportJSON = `{"report": {
	"temperature": {"value": 18.5},
	"humidity": {"value": 71},
	"winddirection": {"value": 36},
	"windspeed": {"value": 180}
}}`

func newCoordinator(t *testing.T, handler http.HandlerFunc) *Coordinator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := euskalmet.NewClient(srv.Client(), srv.URL+"/", testCredential(t), time.Hour)
	return NewCoordinator(client, "basque_country", "great_bilbao", "bilbao", time.UTC, 43.263, -2.935)
}

func TestRefreshMissingReportKillsCycle(t *testing.T) {
	coord := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := coord.Refresh(context.Background())
	if !errors.Is(err, euskalmet.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
}

func TestRefreshForecastFailureDegrades(t *testing.T) {
	coord := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/reports/") {
			w.Write([]byte(reportJSON))
			return
		}
		// Both forecast endpoints are down.
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	bundle, err := coord.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bundle.Current == nil {
		t.Fatalf("current conditions missing")
	}
	if bundle.Current.WindSpeed == nil || *bundle.Current.WindSpeed != 10.0 {
		t.Errorf("wind speed = %v, want 10.0 m/s after field-swap correction", bundle.Current.WindSpeed)
	}
	if bundle.Daily != nil || bundle.Hourly != nil {
		t.Errorf("forecasts should degrade to absent, got daily=%v hourly=%v", bundle.Daily, bundle.Hourly)
	}
}

func TestRefreshAuthFailurePropagates(t *testing.T) {
	coord := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := coord.Refresh(context.Background())
	if !errors.Is(err, euskalmet.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}
