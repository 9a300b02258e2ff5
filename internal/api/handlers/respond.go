package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"supply-curves/internal/api/models"
	"supply-curves/internal/model"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code string, err error, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
			Details: details,
		},
	})
}

// selectedYear reads ?year=, falling back to def, and checks it against h.
// It writes the error response itself and returns ok=false on failure.
func selectedYear(c *gin.Context, h model.Horizon, def int) (int, bool) {
	year := def
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_YEAR", errors.New("year must be an integer"), map[string]interface{}{
				"year": raw,
			})
			return 0, false
		}
		year = y
	}
	if err := model.CheckYear(h, year); err != nil {
		respondError(c, http.StatusBadRequest, "YEAR_OUT_OF_RANGE", err, map[string]interface{}{
			"first_year": h.BaseYear,
			"last_year":  h.LastYear(),
		})
		return 0, false
	}
	return year, true
}
