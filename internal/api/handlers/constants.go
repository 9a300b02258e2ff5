package handlers

import (
	"net/http"

	"supply-curves/internal/analysis"
	"supply-curves/internal/api/models"
	"supply-curves/internal/curve"
	"supply-curves/internal/model"

	"github.com/gin-gonic/gin"
)

// ConstantsHandler serves the read-only baseline data.
type ConstantsHandler struct {
	orch *curve.Orchestrator
}

// NewConstantsHandler creates a new constants handler
func NewConstantsHandler(orch *curve.Orchestrator) *ConstantsHandler {
	return &ConstantsHandler{orch: orch}
}

// GetConstants handles GET /api/v1/constants
func (h *ConstantsHandler) GetConstants(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewConstantsResponse(h.orch.Constants()))
}

// GetReference handles GET /api/v1/reference
func (h *ConstantsHandler) GetReference(c *gin.Context) {
	ref := h.orch.Reference()
	c.JSON(http.StatusOK, models.SeriesResponse{
		Policy:  model.PolicyReference,
		Series:  ref,
		Summary: analysis.Summarize(string(model.PolicyReference), ref, h.orch.Constants().SupplyCap),
	})
}
