// Package api assembles the HTTP surface of the supply-curve service.
package api

import (
	"log/slog"

	"supply-curves/internal/api/handlers"
	"supply-curves/internal/api/middleware"
	"supply-curves/internal/curve"
	"supply-curves/internal/emission"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options are the dependencies of the router.
type Options struct {
	Orchestrator *curve.Orchestrator
	Calibrator   *emission.Calibrator
	Curves       []curve.Spec
	SelectedYear int
	Logger       *slog.Logger
	// CORSOrigins is a comma-separated allow list; empty allows any origin.
	CORSOrigins string
}

// NewRouter wires middleware, health, metrics and the /api/v1 routes.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	constantsHandler := handlers.NewConstantsHandler(opts.Orchestrator)
	simulateHandler := handlers.NewSimulateHandler(opts.Calibrator, logger)
	curvesHandler := handlers.NewCurvesHandler(opts.Orchestrator, opts.Curves, opts.SelectedYear, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/constants", constantsHandler.GetConstants)
		v1.GET("/reference", constantsHandler.GetReference)

		v1.POST("/simulate", simulateHandler.Simulate)
		v1.POST("/calibrate", simulateHandler.Calibrate)

		v1.GET("/curves", curvesHandler.ListCurves)
		v1.GET("/export", curvesHandler.Export)
		v1.GET("/curves/:name/table", curvesHandler.GetTable)
	}

	return router
}
