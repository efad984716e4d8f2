package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kabukiran/agriaid/internal/errors"
	"github.com/kabukiran/agriaid/internal/middleware"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/services"
)

// RequestHandler handles farmer aid-request HTTP requests.
type RequestHandler struct {
	service services.RequestService
}

// NewRequestHandler creates a new RequestHandler instance.
func NewRequestHandler(service services.RequestService) *RequestHandler {
	return &RequestHandler{
		service: service,
	}
}

// AidRequestBody represents the body for submitting an aid request.
type AidRequestBody struct {
	FarmerID int64  `json:"farmer_id" binding:"required"`
	Category string `json:"category" binding:"required"`
	ReqNote  string `json:"req_note"`
}

// AidRequestQuery represents the query parameters for the request list.
type AidRequestQuery struct {
	FarmerID int64 `form:"farmer_id"`
}

// AidRequestCreatedResponse represents the response for a submitted request.
type AidRequestCreatedResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// AidRequestListResponse represents the response for the request list.
type AidRequestListResponse struct {
	Requests []models.AidRequest `json:"requests"`
	Count    int                 `json:"count"`
}

// Create handles POST /api/v1/aid-requests.
func (h *RequestHandler) Create(c *gin.Context) {
	var body AidRequestBody
	if !bindJSON(c, &body) {
		return
	}

	request := &models.AidRequest{
		FarmerID: body.FarmerID,
		Category: body.Category,
		ReqNote:  body.ReqNote,
	}
	if err := h.service.CreateRequest(c.Request.Context(), request); err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			apierrors.NotFound(c, "Farmer not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to submit aid request", err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Aid request submitted", map[string]interface{}{
			"request_id": request.ID,
			"farmer_id":  request.FarmerID,
			"category":   request.Category,
		})
	}

	c.JSON(http.StatusCreated, AidRequestCreatedResponse{
		Success: true,
		ID:      request.ID,
		Message: "Aid request submitted",
	})
}

// List handles GET /api/v1/aid-requests. An optional farmer_id query narrows
// the list to one farmer's requests.
func (h *RequestHandler) List(c *gin.Context) {
	var query AidRequestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	requests, err := h.service.ListRequests(c.Request.Context(), query.FarmerID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch aid requests", err)
		return
	}

	c.JSON(http.StatusOK, AidRequestListResponse{
		Requests: requests,
		Count:    len(requests),
	})
}
