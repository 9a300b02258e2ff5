package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"supply-curves/internal/api"
	"supply-curves/internal/config"
	"supply-curves/internal/curve"
	"supply-curves/internal/emission"
	"supply-curves/internal/logging"
	"supply-curves/internal/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := logging.FromEnv()

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	production := os.Getenv("API_ENV") == "production"

	cfg := config.Default()
	if path := os.Getenv("SUPPLY_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logger.Error("failed to load config", "path", path, "error", err)
			os.Exit(1)
		}
		cfg = loaded
		logger.Info("config loaded", "path", path)
	}

	metrics.Init()

	var cache *emission.Cache
	if enabled, _ := strconv.ParseBool(os.Getenv("ENABLE_CALIBRATION_CACHE")); enabled {
		ttl := time.Hour
		if raw := os.Getenv("CALIBRATION_CACHE_TTL"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				logger.Error("invalid CALIBRATION_CACHE_TTL", "value", raw, "error", err)
				os.Exit(1)
			}
			ttl = d
		}
		cache = emission.NewCache(ttl)
		defer cache.Close()
		logger.Info("calibration cache enabled", "ttl", ttl)
	}

	consts := cfg.Model()
	cal := emission.NewCalibrator(consts, cache, metrics.Recorder{})

	start := time.Now()
	reference := cfg.BaselineSeries()
	logger.Info("reference curve computed",
		"years", len(reference),
		"steps_per_year", consts.StepsPerYear,
		"elapsed", time.Since(start),
	)

	// Set up Gin router
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Options{
		Orchestrator: curve.NewOrchestrator(reference, cal),
		Calibrator:   cal,
		Curves:       cfg.Curves,
		SelectedYear: cfg.SelectedYear,
		Logger:       logger,
		CORSOrigins:  os.Getenv("CORS_ALLOWED_ORIGINS"),
	})

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		logger.Info("serving static files", "dir", staticDir)
	} else {
		logger.Info("static directory not found, skipping static file serving", "dir", staticDir)
	}

	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting API server", "addr", addr, "curves", len(cfg.Curves))
	if err := router.Run(addr); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
