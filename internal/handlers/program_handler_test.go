package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kabukiran/agriaid/internal/errors"
	"github.com/kabukiran/agriaid/internal/logger"
	"github.com/kabukiran/agriaid/internal/middleware"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupProgramTestRouter creates a test router with middleware and program routes.
func setupProgramTestRouter(programs services.ProgramService, distribution services.DistributionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	log := logger.New("test")
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	handler := NewProgramHandler(programs, distribution)
	v1 := router.Group("/api/v1")
	{
		programGroup := v1.Group("/aid-programs")
		{
			programGroup.GET("", handler.List)
			programGroup.POST("", handler.Create)
			programGroup.GET("/:id", handler.Get)
			programGroup.PUT("/:id", handler.Update)
			programGroup.DELETE("/:id", handler.Delete)
			programGroup.GET("/:id/eligible-farmers", handler.EligibleFarmers)
			programGroup.GET("/:id/beneficiaries", handler.Beneficiaries)
			programGroup.POST("/:id/distribute", handler.Distribute)
		}
	}

	return router
}

func sampleProgram() *models.AidProgram {
	return &models.AidProgram{
		ID:       7,
		Name:     "Palay Seed Subsidy",
		Category: models.CategorySeedDistribution,
		ResourceAllocation: models.ResourceAllocation{
			Type:     "kg",
			Quantity: 100,
		},
		AssignedBarangay: "San Isidro",
		FarmerTypes:      []string{"Rice Farmer"},
	}
}

func TestProgramList(t *testing.T) {
	programs := new(MockProgramService)
	programs.On("ListPrograms", mock.Anything).Return([]models.AidProgram{*sampleProgram()}, nil)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aid-programs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ProgramListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "Palay Seed Subsidy", response.Programs[0].Name)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProgramGet_NotFound(t *testing.T) {
	programs := new(MockProgramService)
	programs.On("GetProgram", mock.Anything, int64(99)).Return(nil, services.ErrProgramNotFound)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aid-programs/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apierrors.ErrNotFound, response.Error.Code)
	assert.NotEmpty(t, response.Error.RequestID)
}

func TestProgramGet_InvalidID(t *testing.T) {
	programs := new(MockProgramService)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aid-programs/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	programs.AssertNotCalled(t, "GetProgram")
}

func TestProgramCreate(t *testing.T) {
	programs := new(MockProgramService)
	programs.On("CreateProgram", mock.Anything, mock.MatchedBy(func(p *models.AidProgram) bool {
		return p.Name == "Calamity Cash Aid" && p.Category == models.CategoryFinancialAssistance
	})).Return(nil)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	body := `{
		"name": "Calamity Cash Aid",
		"category": "Financial Assistance",
		"resource_allocation": {"budget": 50000},
		"assigned_barangay": "Poblacion"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aid-programs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	programs.AssertExpectations(t)
}

func TestProgramCreate_MissingName(t *testing.T) {
	programs := new(MockProgramService)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	body := `{"category": "Seed Distribution", "assigned_barangay": "Poblacion"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aid-programs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apierrors.ErrValidation, response.Error.Code)
	assert.NotNil(t, response.Error.Details)
	programs.AssertNotCalled(t, "CreateProgram")
}

func TestProgramUpdate_NotFound(t *testing.T) {
	programs := new(MockProgramService)
	programs.On("UpdateProgram", mock.Anything, mock.Anything).Return(services.ErrProgramNotFound)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	body := `{
		"name": "Palay Seed Subsidy",
		"category": "Seed Distribution",
		"assigned_barangay": "San Isidro"
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/aid-programs/42", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgramDelete(t *testing.T) {
	programs := new(MockProgramService)
	programs.On("DeleteProgram", mock.Anything, int64(7)).Return(nil)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/aid-programs/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	programs.AssertExpectations(t)
}

func TestEligibleFarmers(t *testing.T) {
	programs := new(MockProgramService)
	programs.On("GetEligibleFarmers", mock.Anything, int64(7)).Return([]models.Farmer{
		{ID: 1111111111111, Name: "Juan Dela Cruz"},
		{ID: 2222222222222, Name: "Maria Santos"},
	}, nil)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aid-programs/7/eligible-farmers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response EligibleFarmersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "Juan Dela Cruz", response.Farmers[0].Name)
}

func TestBeneficiaries(t *testing.T) {
	programs := new(MockProgramService)
	program := sampleProgram()
	programs.On("GetBeneficiaries", mock.Anything, int64(7)).Return(&services.ProgramBeneficiaries{
		Program: *program,
		Beneficiaries: []models.Beneficiary{
			{FarmerID: 1111111111111, Name: "Juan Dela Cruz", QuantityReceived: "20 kg"},
		},
		Account: services.AccountFor(program, []models.AidAllocation{
			{QuantityReceived: "20 kg"},
		}),
	}, nil)
	router := setupProgramTestRouter(programs, new(MockDistributionService))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aid-programs/7/beneficiaries", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response BeneficiariesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "20 kg", response.TotalDistributed)
	assert.Equal(t, "80 kg", response.Remaining)
}

func TestDistribute(t *testing.T) {
	distribution := new(MockDistributionService)
	distribution.On("Distribute", mock.Anything, int64(7), mock.MatchedBy(func(batch []services.Distribution) bool {
		return len(batch) == 2 && batch[0].FarmerID == 1111111111111
	})).Return(nil)
	router := setupProgramTestRouter(new(MockProgramService), distribution)

	body := `{"distributions": [
		{"farmerId": 1111111111111, "quantity": 20},
		{"farmerId": 2222222222222, "quantity": 30}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aid-programs/7/distribute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response DistributeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 2, response.Recorded)
	distribution.AssertExpectations(t)
}

func TestDistribute_InsufficientResources(t *testing.T) {
	distribution := new(MockDistributionService)
	distribution.On("Distribute", mock.Anything, int64(7), mock.Anything).
		Return(services.ErrInsufficientResources)
	router := setupProgramTestRouter(new(MockProgramService), distribution)

	body := `{"distributions": [{"farmerId": 1111111111111, "quantity": 500}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aid-programs/7/distribute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apierrors.ErrInsufficientResources, response.Error.Code)
}

func TestDistribute_ProgramNotFound(t *testing.T) {
	distribution := new(MockDistributionService)
	distribution.On("Distribute", mock.Anything, int64(99), mock.Anything).
		Return(services.ErrProgramNotFound)
	router := setupProgramTestRouter(new(MockProgramService), distribution)

	body := `{"distributions": [{"farmerId": 1111111111111, "quantity": 20}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aid-programs/99/distribute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDistribute_EmptyBatch(t *testing.T) {
	distribution := new(MockDistributionService)
	router := setupProgramTestRouter(new(MockProgramService), distribution)

	body := `{"distributions": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aid-programs/7/distribute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Rejected by request validation before the service is reached.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	distribution.AssertNotCalled(t, "Distribute")
}
