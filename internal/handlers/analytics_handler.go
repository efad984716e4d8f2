package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kabukiran/agriaid/internal/errors"
	"github.com/kabukiran/agriaid/internal/services"
)

// AnalyticsHandler handles distribution analytics HTTP requests.
type AnalyticsHandler struct {
	service services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance.
func NewAnalyticsHandler(service services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// DistributionSummary handles GET /api/v1/analytics/distribution-summary.
func (h *AnalyticsHandler) DistributionSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to compute distribution summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
