package services

import (
	"context"

	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockProgramRepository is a mock implementation of repository.ProgramRepository.
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) FindByID(ctx context.Context, id int64) (*models.AidProgram, error) {
	args := m.Called(ctx, id)
	program, _ := args.Get(0).(*models.AidProgram)
	return program, args.Error(1)
}

func (m *MockProgramRepository) FindAll(ctx context.Context) ([]models.AidProgram, error) {
	args := m.Called(ctx)
	programs, _ := args.Get(0).([]models.AidProgram)
	return programs, args.Error(1)
}

func (m *MockProgramRepository) Create(ctx context.Context, program *models.AidProgram) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramRepository) Update(ctx context.Context, program *models.AidProgram) (bool, error) {
	args := m.Called(ctx, program)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgramRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockFarmerRepository is a mock implementation of repository.FarmerRepository.
type MockFarmerRepository struct {
	mock.Mock
}

func (m *MockFarmerRepository) FindByID(ctx context.Context, id int64) (*models.Farmer, error) {
	args := m.Called(ctx, id)
	farmer, _ := args.Get(0).(*models.Farmer)
	return farmer, args.Error(1)
}

func (m *MockFarmerRepository) FindAll(ctx context.Context, barangay string) ([]models.Farmer, error) {
	args := m.Called(ctx, barangay)
	farmers, _ := args.Get(0).([]models.Farmer)
	return farmers, args.Error(1)
}

func (m *MockFarmerRepository) FindActiveByBarangay(ctx context.Context, barangay string) ([]models.Farmer, error) {
	args := m.Called(ctx, barangay)
	farmers, _ := args.Get(0).([]models.Farmer)
	return farmers, args.Error(1)
}

func (m *MockFarmerRepository) Create(ctx context.Context, farmer *models.Farmer) error {
	args := m.Called(ctx, farmer)
	return args.Error(0)
}

func (m *MockFarmerRepository) Update(ctx context.Context, farmer *models.Farmer) (bool, error) {
	args := m.Called(ctx, farmer)
	return args.Bool(0), args.Error(1)
}

func (m *MockFarmerRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFarmerRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockAllocationRepository is a mock implementation of repository.AllocationRepository.
type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) FindByProgram(ctx context.Context, programID int64) ([]models.AidAllocation, error) {
	args := m.Called(ctx, programID)
	allocations, _ := args.Get(0).([]models.AidAllocation)
	return allocations, args.Error(1)
}

func (m *MockAllocationRepository) FindBeneficiaries(ctx context.Context, programID int64) ([]models.Beneficiary, error) {
	args := m.Called(ctx, programID)
	beneficiaries, _ := args.Get(0).([]models.Beneficiary)
	return beneficiaries, args.Error(1)
}

func (m *MockAllocationRepository) FarmerIDsWithAllocation(ctx context.Context, programID int64) (map[int64]struct{}, error) {
	args := m.Called(ctx, programID)
	ids, _ := args.Get(0).(map[int64]struct{})
	return ids, args.Error(1)
}

func (m *MockAllocationRepository) RecordBatch(ctx context.Context, programID int64, batch []repository.NewAllocation) error {
	args := m.Called(ctx, programID, batch)
	return args.Error(0)
}

// MockRequestRepository is a mock implementation of repository.RequestRepository.
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *models.AidRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) FindAll(ctx context.Context, farmerID int64) ([]models.AidRequest, error) {
	args := m.Called(ctx, farmerID)
	requests, _ := args.Get(0).([]models.AidRequest)
	return requests, args.Error(1)
}
