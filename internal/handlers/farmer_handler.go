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

// FarmerHandler handles farmer registry HTTP requests.
type FarmerHandler struct {
	service services.FarmerService
}

// NewFarmerHandler creates a new FarmerHandler instance.
func NewFarmerHandler(service services.FarmerService) *FarmerHandler {
	return &FarmerHandler{
		service: service,
	}
}

// CropInput is one crop entry in a farmer create/update body.
type CropInput struct {
	Name   string `json:"name" binding:"required"`
	Season string `json:"season" binding:"required,oneof=Wet Dry"`
}

// FarmerRequest represents the body for creating or updating a farmer.
type FarmerRequest struct {
	Name              string      `json:"name" binding:"required"`
	Birthday          *string     `json:"birthday"`
	Age               *int        `json:"age"`
	Gender            *string     `json:"gender"`
	Phone             *string     `json:"phone"`
	FarmLocation      string      `json:"farm_location" binding:"required"`
	LandSize          string      `json:"land_size"`
	FarmOwner         bool        `json:"farm_owner"`
	Income            float64     `json:"income" binding:"gte=0"`
	Image             *string     `json:"image"`
	FarmOwnershipType *string     `json:"farm_ownership_type"`
	FarmerTypes       []string    `json:"farmer_type"`
	Crops             []CropInput `json:"crops" binding:"dive"`
}

// FarmerListQuery represents the query parameters for the farmer list.
type FarmerListQuery struct {
	Barangay string `form:"barangay"`
}

// FarmerListResponse represents the response for the farmer list endpoint.
type FarmerListResponse struct {
	Farmers []models.Farmer `json:"farmers"`
	Count   int             `json:"count"`
}

// FarmerResponse represents the response for single-farmer endpoints.
type FarmerResponse struct {
	Farmer *models.Farmer `json:"farmer"`
}

// List handles GET /api/v1/farmers. An optional barangay query narrows the
// roster to one barangay.
func (h *FarmerHandler) List(c *gin.Context) {
	var query FarmerListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	farmers, err := h.service.ListFarmers(c.Request.Context(), query.Barangay)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch farmers", err)
		return
	}

	c.JSON(http.StatusOK, FarmerListResponse{
		Farmers: farmers,
		Count:   len(farmers),
	})
}

// Get handles GET /api/v1/farmers/:id.
func (h *FarmerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	farmer, err := h.service.GetFarmer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			apierrors.NotFound(c, "Farmer not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to fetch farmer", err)
		return
	}

	c.JSON(http.StatusOK, FarmerResponse{Farmer: farmer})
}

// Create handles POST /api/v1/farmers. The farmer ID and username are
// assigned server-side.
func (h *FarmerHandler) Create(c *gin.Context) {
	var req FarmerRequest
	if !bindJSON(c, &req) {
		return
	}

	farmer := req.toModel()
	if err := h.service.CreateFarmer(c.Request.Context(), farmer); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			apierrors.Conflict(c, "Username is already taken")
			return
		}
		apierrors.InternalServerError(c, "Failed to create farmer", err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Farmer registered", map[string]interface{}{
			"farmer_id": farmer.ID,
			"username":  farmer.Username,
		})
	}

	c.JSON(http.StatusCreated, FarmerResponse{Farmer: farmer})
}

// Update handles PUT /api/v1/farmers/:id. Crops are wholesale replaced with
// the submitted list.
func (h *FarmerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FarmerRequest
	if !bindJSON(c, &req) {
		return
	}

	farmer := req.toModel()
	farmer.ID = id
	for i := range farmer.Crops {
		farmer.Crops[i].FarmerID = id
	}

	if err := h.service.UpdateFarmer(c.Request.Context(), farmer); err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			apierrors.NotFound(c, "Farmer not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to update farmer", err)
		return
	}

	c.JSON(http.StatusOK, FarmerResponse{Farmer: farmer})
}

// Deactivate handles DELETE /api/v1/farmers/:id. The farmer record and its
// allocation history are kept; the farmer just leaves every roster.
func (h *FarmerHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeactivateFarmer(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			apierrors.NotFound(c, "Farmer not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to deactivate farmer", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// toModel converts the request DTO into the domain model.
func (r *FarmerRequest) toModel() *models.Farmer {
	farmerTypes := r.FarmerTypes
	if farmerTypes == nil {
		farmerTypes = []string{}
	}

	crops := make([]models.Crop, 0, len(r.Crops))
	for _, crop := range r.Crops {
		crops = append(crops, models.Crop{
			Name:   crop.Name,
			Season: models.CropSeason(crop.Season),
		})
	}

	return &models.Farmer{
		Name:              r.Name,
		Birthday:          r.Birthday,
		Age:               r.Age,
		Gender:            r.Gender,
		Phone:             r.Phone,
		FarmLocation:      r.FarmLocation,
		LandSize:          r.LandSize,
		FarmOwner:         r.FarmOwner,
		Income:            r.Income,
		Image:             r.Image,
		FarmOwnershipType: r.FarmOwnershipType,
		FarmerTypes:       farmerTypes,
		Active:            true,
		Crops:             crops,
	}
}
