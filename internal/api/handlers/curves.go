package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"supply-curves/internal/analysis"
	"supply-curves/internal/api/models"
	"supply-curves/internal/curve"
	"supply-curves/internal/metrics"
	"supply-curves/internal/model"
	"supply-curves/internal/report"

	"github.com/gin-gonic/gin"
)

var exportContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
}

// CurvesHandler serves the configured alternative curves.
type CurvesHandler struct {
	orch        *curve.Orchestrator
	specs       []curve.Spec
	defaultYear int
	logger      *slog.Logger
}

// NewCurvesHandler creates a new curves handler
func NewCurvesHandler(orch *curve.Orchestrator, specs []curve.Spec, defaultYear int, logger *slog.Logger) *CurvesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurvesHandler{orch: orch, specs: specs, defaultYear: defaultYear, logger: logger}
}

// ListCurves handles GET /api/v1/curves
// ?rate= adds a fixed-rate curve named "custom".
func (h *CurvesHandler) ListCurves(c *gin.Context) {
	consts := h.orch.Constants()
	year, ok := selectedYear(c, consts.Horizon(), h.defaultYear)
	if !ok {
		return
	}
	specs, ok := h.curveSpecs(c)
	if !ok {
		return
	}

	results, err := h.orch.BuildAll(specs, year)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CURVE_BUILD_FAILED", err, nil)
		return
	}
	h.logger.Info("curves built", "selected_year", year, "count", len(results))

	ref := h.orch.Reference()
	resp := models.CurvesResponse{
		SelectedYear:   year,
		StartingSupply: h.orch.StartingSupply(year),
		Reference: models.SeriesResponse{
			Policy:  model.PolicyReference,
			Series:  ref,
			Summary: analysis.Summarize(string(model.PolicyReference), ref, consts.SupplyCap),
		},
		Curves:  make([]models.CurveResponse, 0, len(results)),
		Ranking: analysis.RankByDistance(results, consts.SupplyCap),
	}
	for _, r := range results {
		resp.Curves = append(resp.Curves, models.CurveResponse{Result: r, Label: r.Label()})
	}
	c.JSON(http.StatusOK, resp)
}

// GetTable handles GET /api/v1/curves/:name/table
// The name "reference" returns the baseline table.
func (h *CurvesHandler) GetTable(c *gin.Context) {
	year, ok := selectedYear(c, h.orch.Constants().Horizon(), h.defaultYear)
	if !ok {
		return
	}

	name := c.Param("name")
	if name == string(model.PolicyReference) {
		c.JSON(http.StatusOK, models.TableResponse{
			Name:         name,
			Label:        name,
			SelectedYear: year,
			Rows:         analysis.BuildTable(h.orch.Reference()),
		})
		return
	}

	specs, ok := h.curveSpecs(c)
	if !ok {
		return
	}
	spec, err := curve.Find(specs, name)
	if err != nil {
		respondError(c, http.StatusNotFound, "CURVE_NOT_FOUND", err, map[string]interface{}{
			"available": names(specs),
		})
		return
	}
	r, err := h.orch.Build(spec, year)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CURVE_BUILD_FAILED", err, nil)
		return
	}
	c.JSON(http.StatusOK, models.TableResponse{
		Name:         r.Name,
		Label:        r.Label(),
		SelectedYear: year,
		Rows:         analysis.BuildTable(r.Calibration.Series),
	})
}

// Export handles GET /api/v1/export?format=csv|xlsx|pdf
func (h *CurvesHandler) Export(c *gin.Context) {
	consts := h.orch.Constants()
	year, ok := selectedYear(c, consts.Horizon(), h.defaultYear)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	contentType, known := exportContentTypes[format]
	if !known {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", errors.New("format must be csv, xlsx or pdf"), map[string]interface{}{
			"format": format,
		})
		return
	}
	specs, ok := h.curveSpecs(c)
	if !ok {
		return
	}

	results, err := h.orch.BuildAll(specs, year)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CURVE_BUILD_FAILED", err, nil)
		return
	}
	title := fmt.Sprintf("Supply curves from %d", year)
	raw, err := report.Render(format, report.NewBundle(title, consts.SupplyCap, h.orch.Reference(), results))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err, nil)
		return
	}
	metrics.ObserveExport(format)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="supply-curves-%d.%s"`, year, format))
	c.Data(http.StatusOK, contentType, raw)
}

// curveSpecs returns the configured curves plus a custom one when ?rate= is set.
// It writes the error response itself and returns ok=false on failure.
func (h *CurvesHandler) curveSpecs(c *gin.Context) ([]curve.Spec, bool) {
	raw := c.Query("rate")
	if raw == "" {
		return h.specs, true
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err == nil {
		var specs []curve.Spec
		if specs, err = curve.WithCustom(h.specs, rate); err == nil {
			return specs, true
		}
	}
	respondError(c, http.StatusBadRequest, "INVALID_RATE", errors.New("rate must be a number >= 0"), map[string]interface{}{
		"rate": raw,
	})
	return nil, false
}

func names(specs []curve.Spec) []string {
	out := make([]string, 0, len(specs)+1)
	out = append(out, string(model.PolicyReference))
	for _, s := range specs {
		out = append(out, s.Name)
	}
	return out
}
