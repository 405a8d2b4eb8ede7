package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/urtzik/euskalmet-bridge/internal/api/http"
	"github.com/urtzik/euskalmet-bridge/internal/auth"
	"github.com/urtzik/euskalmet-bridge/internal/config"
	"github.com/urtzik/euskalmet-bridge/internal/euskalmet"
	"github.com/urtzik/euskalmet-bridge/internal/forecast"
	"github.com/urtzik/euskalmet-bridge/internal/scheduler"
	"github.com/urtzik/euskalmet-bridge/internal/station"
	"github.com/urtzik/euskalmet-bridge/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cred, err := auth.NewCredential(cfg.PrivateKeyPEM, cfg.Fingerprint)
	if err != nil {
		log.Fatalf("invalid credentials, reconfiguration required: %v", err)
	}

	// Shared HTTP client for outbound API calls; per-call timeouts are
	// applied with request contexts.
	httpClient := &http.Client{}
	client := euskalmet.NewClient(httpClient, cfg.BaseURL, cred, cfg.TokenTTL)

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// One refresh job per configured coordinator.
	var jobs []*scheduler.Job

	if cfg.StationID != "" {
		coord := station.NewCoordinator(client, cfg.StationID, station.CacheConfig{
			InventoryTTL:  cfg.InventoryTTL,
			CapabilityTTL: cfg.CapabilityTTL,
		})
		jobs = append(jobs, &scheduler.Job{
			Name:     "station " + cfg.StationID,
			Interval: cfg.StationInterval,
			Run: func(ctx context.Context) error {
				set, err := coord.Refresh(ctx)
				if err != nil {
					return err
				}
				memStore.SaveReadings(set)
				return nil
			},
		})
	}

	if cfg.LocationID != "" {
		coord := forecast.NewCoordinator(client, cfg.RegionID, cfg.ZoneID, cfg.LocationID,
			cfg.Timezone, cfg.Latitude, cfg.Longitude)
		jobs = append(jobs, &scheduler.Job{
			Name:     "forecast " + cfg.LocationID,
			Interval: cfg.WeatherInterval,
			Run: func(ctx context.Context) error {
				bundle, err := coord.Refresh(ctx)
				if err != nil {
					return err
				}
				memStore.SaveForecast(bundle)
				return nil
			},
		})
	}

	sched := scheduler.New(cfg.Timezone, jobs)

	// Prime the store before the first scheduled tick.
	sched.RunAllOnce()

	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "euskalmet-bridge",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "euskalmet-bridge",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Handlers{Store: memStore, Client: client})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
