package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/kabukiran/agriaid/internal/errors"
	"github.com/kabukiran/agriaid/internal/middleware"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/services"
	"github.com/shopspring/decimal"
)

// ProgramHandler handles aid-program HTTP requests, including the
// distribution endpoint.
type ProgramHandler struct {
	programs     services.ProgramService
	distribution services.DistributionService
}

// NewProgramHandler creates a new ProgramHandler instance.
func NewProgramHandler(programs services.ProgramService, distribution services.DistributionService) *ProgramHandler {
	return &ProgramHandler{
		programs:     programs,
		distribution: distribution,
	}
}

// ProgramRequest represents the body for creating or updating a program.
type ProgramRequest struct {
	Name               string                    `json:"name" binding:"required"`
	Category           string                    `json:"category" binding:"required"`
	ResourceAllocation models.ResourceAllocation `json:"resource_allocation"`
	Eligibility        models.EligibilityRules   `json:"eligibility"`
	AssignedBarangay   string                    `json:"assigned_barangay" binding:"required"`
	FarmerTypes        []string                  `json:"farmer_type"`
}

// ProgramListResponse represents the response for the program list endpoint.
type ProgramListResponse struct {
	Programs []models.AidProgram `json:"programs"`
	Count    int                 `json:"count"`
}

// ProgramResponse represents the response for single-program endpoints.
type ProgramResponse struct {
	Program *models.AidProgram `json:"program"`
}

// EligibleFarmersResponse represents the response for the eligible-farmers
// endpoint.
type EligibleFarmersResponse struct {
	Farmers []models.Farmer `json:"farmers"`
	Count   int             `json:"count"`
}

// BeneficiariesResponse represents the response for the beneficiaries
// endpoint: the recipient rows plus the program's resource account.
type BeneficiariesResponse struct {
	Program          *models.AidProgram   `json:"program"`
	Beneficiaries    []models.Beneficiary `json:"beneficiaries"`
	Count            int                  `json:"count"`
	TotalDistributed string               `json:"total_distributed"`
	Remaining        string               `json:"remaining"`
}

// DistributionEntry is one (farmer, quantity) pair in a distribute request.
// Quantity zero means "use the program's declared per-farmer quantity".
// The field names are camelCase; they predate this service and the municipal
// portal still sends them that way.
type DistributionEntry struct {
	FarmerID int64   `json:"farmerId" binding:"required"`
	Quantity float64 `json:"quantity" binding:"gte=0"`
}

// DistributeRequest represents the body for the distribute endpoint.
type DistributeRequest struct {
	Distributions []DistributionEntry `json:"distributions" binding:"required,min=1,dive"`
}

// DistributeResponse represents the response for a recorded batch.
type DistributeResponse struct {
	Success  bool   `json:"success"`
	Recorded int    `json:"recorded"`
	Message  string `json:"message"`
}

// parseIDParam extracts a positive integer id from the named path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "Invalid "+name+" parameter", nil)
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body, translating validator failures into the
// structured validation response.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return false
	}
	return true
}

// List handles GET /api/v1/aid-programs.
func (h *ProgramHandler) List(c *gin.Context) {
	programs, err := h.programs.ListPrograms(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch aid programs", err)
		return
	}

	c.JSON(http.StatusOK, ProgramListResponse{
		Programs: programs,
		Count:    len(programs),
	})
}

// Get handles GET /api/v1/aid-programs/:id.
func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	program, err := h.programs.GetProgram(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			apierrors.NotFound(c, "Aid program not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to fetch aid program", err)
		return
	}

	c.JSON(http.StatusOK, ProgramResponse{Program: program})
}

// Create handles POST /api/v1/aid-programs.
func (h *ProgramHandler) Create(c *gin.Context) {
	var req ProgramRequest
	if !bindJSON(c, &req) {
		return
	}

	program := req.toModel()
	if err := h.programs.CreateProgram(c.Request.Context(), program); err != nil {
		apierrors.InternalServerError(c, "Failed to create aid program", err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Aid program created", map[string]interface{}{
			"program_id": program.ID,
			"category":   program.Category,
		})
	}

	c.JSON(http.StatusCreated, ProgramResponse{Program: program})
}

// Update handles PUT /api/v1/aid-programs/:id.
func (h *ProgramHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProgramRequest
	if !bindJSON(c, &req) {
		return
	}

	program := req.toModel()
	program.ID = id
	if err := h.programs.UpdateProgram(c.Request.Context(), program); err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			apierrors.NotFound(c, "Aid program not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to update aid program", err)
		return
	}

	c.JSON(http.StatusOK, ProgramResponse{Program: program})
}

// Delete handles DELETE /api/v1/aid-programs/:id.
func (h *ProgramHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.programs.DeleteProgram(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			apierrors.NotFound(c, "Aid program not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete aid program", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// EligibleFarmers handles GET /api/v1/aid-programs/:id/eligible-farmers.
func (h *ProgramHandler) EligibleFarmers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	farmers, err := h.programs.GetEligibleFarmers(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			apierrors.NotFound(c, "Aid program not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to compute eligible farmers", err)
		return
	}

	c.JSON(http.StatusOK, EligibleFarmersResponse{
		Farmers: farmers,
		Count:   len(farmers),
	})
}

// Beneficiaries handles GET /api/v1/aid-programs/:id/beneficiaries.
func (h *ProgramHandler) Beneficiaries(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.programs.GetBeneficiaries(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			apierrors.NotFound(c, "Aid program not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to fetch beneficiaries", err)
		return
	}

	c.JSON(http.StatusOK, BeneficiariesResponse{
		Program:          &view.Program,
		Beneficiaries:    view.Beneficiaries,
		Count:            len(view.Beneficiaries),
		TotalDistributed: view.Account.TotalDistributed.Display(),
		Remaining:        view.Account.Remaining.Display(),
	})
}

// Distribute handles POST /api/v1/aid-programs/:id/distribute.
// The batch is recorded atomically: any failure leaves no allocation rows.
func (h *ProgramHandler) Distribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DistributeRequest
	if !bindJSON(c, &req) {
		return
	}

	batch := make([]services.Distribution, 0, len(req.Distributions))
	for _, d := range req.Distributions {
		batch = append(batch, services.Distribution{
			FarmerID: d.FarmerID,
			Quantity: decimal.NewFromFloat(d.Quantity),
		})
	}

	err := h.distribution.Distribute(c.Request.Context(), id, batch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProgramNotFound):
			apierrors.NotFound(c, "Aid program not found")
		case errors.Is(err, services.ErrInsufficientResources):
			apierrors.InsufficientResources(c, "Batch exceeds remaining program resources")
		case errors.Is(err, services.ErrEmptyBatch), errors.Is(err, services.ErrInvalidQuantity):
			apierrors.BadRequest(c, err.Error(), nil)
		default:
			apierrors.InternalServerError(c, "Failed to record distribution", err)
		}
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Distribution batch recorded", map[string]interface{}{
			"program_id": id,
			"recorded":   len(batch),
		})
	}

	c.JSON(http.StatusOK, DistributeResponse{
		Success:  true,
		Recorded: len(batch),
		Message:  "Aid distributed successfully",
	})
}

// toModel converts the request DTO into the domain model.
func (r *ProgramRequest) toModel() *models.AidProgram {
	farmerTypes := r.FarmerTypes
	if farmerTypes == nil {
		farmerTypes = []string{}
	}
	return &models.AidProgram{
		Name:               r.Name,
		Category:           models.ProgramCategory(r.Category),
		ResourceAllocation: r.ResourceAllocation,
		Eligibility:        r.Eligibility,
		AssignedBarangay:   r.AssignedBarangay,
		FarmerTypes:        farmerTypes,
	}
}
