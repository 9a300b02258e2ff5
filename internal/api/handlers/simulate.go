package handlers

import (
	"log/slog"
	"net/http"

	"supply-curves/internal/analysis"
	"supply-curves/internal/api/models"
	"supply-curves/internal/emission"
	"supply-curves/internal/metrics"
	"supply-curves/internal/model"

	"github.com/gin-gonic/gin"
)

// SimulateHandler runs single decay simulations and calibrations.
type SimulateHandler struct {
	cal    *emission.Calibrator
	logger *slog.Logger
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(cal *emission.Calibrator, logger *slog.Logger) *SimulateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulateHandler{cal: cal, logger: logger}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	consts := h.cal.Constants()
	params := req.Params()
	if err := params.Validate(consts.Horizon()); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMS", err, nil)
		return
	}

	res := emission.SimulateDecay(consts, params, consts.HorizonYears)
	metrics.ObserveSimulation(model.PolicyDecay)

	c.JSON(http.StatusOK, models.SimulateResponse{
		Params:      params,
		FinalSupply: model.Some(res.FinalSupply),
		SeriesResponse: models.SeriesResponse{
			Policy:  model.PolicyDecay,
			Series:  res.Series,
			Summary: analysis.Summarize(string(model.PolicyDecay), res.Series, consts.SupplyCap),
		},
	})
}

// Calibrate handles POST /api/v1/calibrate
func (h *SimulateHandler) Calibrate(c *gin.Context) {
	var req models.CalibrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	consts := h.cal.Constants()
	params := req.Params()
	if err := params.Validate(consts.Horizon()); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMS", err, nil)
		return
	}

	res := h.cal.Calibrate(params.StartingSupply, params.StartYear, params.InitialRatePercent)
	params.DecayRatePercent = res.DecayRatePercent
	h.logger.Debug("calibrated decay rate",
		"starting_supply", params.StartingSupply,
		"start_year", params.StartYear,
		"initial_rate_percent", params.InitialRatePercent,
		"decay_rate_percent", res.DecayRatePercent,
	)

	c.JSON(http.StatusOK, models.CalibrateResponse{
		Params:           params,
		DecayRatePercent: res.DecayRatePercent,
		FinalSupply:      model.Some(res.FinalSupply),
		SeriesResponse: models.SeriesResponse{
			Policy:  model.PolicyDecay,
			Series:  res.Series,
			Summary: analysis.Summarize(string(model.PolicyDecay), res.Series, consts.SupplyCap),
		},
	})
}
