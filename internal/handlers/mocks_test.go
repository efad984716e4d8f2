package handlers

import (
	"context"

	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockProgramService is a testify mock of services.ProgramService.
type MockProgramService struct {
	mock.Mock
}

func (m *MockProgramService) ListPrograms(ctx context.Context) ([]models.AidProgram, error) {
	args := m.Called(ctx)
	programs, _ := args.Get(0).([]models.AidProgram)
	return programs, args.Error(1)
}

func (m *MockProgramService) GetProgram(ctx context.Context, id int64) (*models.AidProgram, error) {
	args := m.Called(ctx, id)
	program, _ := args.Get(0).(*models.AidProgram)
	return program, args.Error(1)
}

func (m *MockProgramService) CreateProgram(ctx context.Context, program *models.AidProgram) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramService) UpdateProgram(ctx context.Context, program *models.AidProgram) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramService) DeleteProgram(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgramService) GetEligibleFarmers(ctx context.Context, programID int64) ([]models.Farmer, error) {
	args := m.Called(ctx, programID)
	farmers, _ := args.Get(0).([]models.Farmer)
	return farmers, args.Error(1)
}

func (m *MockProgramService) GetBeneficiaries(ctx context.Context, programID int64) (*services.ProgramBeneficiaries, error) {
	args := m.Called(ctx, programID)
	view, _ := args.Get(0).(*services.ProgramBeneficiaries)
	return view, args.Error(1)
}

// MockDistributionService is a testify mock of services.DistributionService.
type MockDistributionService struct {
	mock.Mock
}

func (m *MockDistributionService) Distribute(ctx context.Context, programID int64, batch []services.Distribution) error {
	args := m.Called(ctx, programID, batch)
	return args.Error(0)
}

// MockFarmerService is a testify mock of services.FarmerService.
type MockFarmerService struct {
	mock.Mock
}

func (m *MockFarmerService) ListFarmers(ctx context.Context, barangay string) ([]models.Farmer, error) {
	args := m.Called(ctx, barangay)
	farmers, _ := args.Get(0).([]models.Farmer)
	return farmers, args.Error(1)
}

func (m *MockFarmerService) GetFarmer(ctx context.Context, id int64) (*models.Farmer, error) {
	args := m.Called(ctx, id)
	farmer, _ := args.Get(0).(*models.Farmer)
	return farmer, args.Error(1)
}

func (m *MockFarmerService) CreateFarmer(ctx context.Context, farmer *models.Farmer) error {
	args := m.Called(ctx, farmer)
	return args.Error(0)
}

func (m *MockFarmerService) UpdateFarmer(ctx context.Context, farmer *models.Farmer) error {
	args := m.Called(ctx, farmer)
	return args.Error(0)
}

func (m *MockFarmerService) DeactivateFarmer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRequestService is a testify mock of services.RequestService.
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) CreateRequest(ctx context.Context, request *models.AidRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestService) ListRequests(ctx context.Context, farmerID int64) ([]models.AidRequest, error) {
	args := m.Called(ctx, farmerID)
	requests, _ := args.Get(0).([]models.AidRequest)
	return requests, args.Error(1)
}

// MockAnalyticsService is a testify mock of services.AnalyticsService.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Summary(ctx context.Context) (*services.DistributionSummary, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(*services.DistributionSummary)
	return summary, args.Error(1)
}
