package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kabukiran/agriaid/internal/logger"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/repository"
)

// Service-level errors
var (
	ErrProgramNotFound = errors.New("aid program not found")
)

// ProgramBeneficiaries is the beneficiaries view of one program: the program
// itself, everyone who received aid under it, and its resource account.
type ProgramBeneficiaries struct {
	Program       models.AidProgram
	Beneficiaries []models.Beneficiary
	Account       ResourceAccount
}

// ProgramService defines the interface for aid program business logic.
type ProgramService interface {
	// ListPrograms returns every aid program, newest first.
	ListPrograms(ctx context.Context) ([]models.AidProgram, error)

	// GetProgram returns one program. Returns ErrProgramNotFound when the
	// id does not exist.
	GetProgram(ctx context.Context, id int64) (*models.AidProgram, error)

	// CreateProgram stores a new program.
	CreateProgram(ctx context.Context, program *models.AidProgram) error

	// UpdateProgram rewrites a program. Returns ErrProgramNotFound when the
	// id does not exist.
	UpdateProgram(ctx context.Context, program *models.AidProgram) error

	// DeleteProgram removes a program. Returns ErrProgramNotFound when the
	// id does not exist.
	DeleteProgram(ctx context.Context, id int64) error

	// GetEligibleFarmers returns the subset of the program's barangay
	// roster eligible for its aid, excluding farmers who already received
	// it. Returns ErrProgramNotFound when the id does not exist.
	GetEligibleFarmers(ctx context.Context, programID int64) ([]models.Farmer, error)

	// GetBeneficiaries returns the beneficiaries view of a program.
	// Returns ErrProgramNotFound when the id does not exist.
	GetBeneficiaries(ctx context.Context, programID int64) (*ProgramBeneficiaries, error)
}

// programService is the concrete implementation of ProgramService.
type programService struct {
	programs    repository.ProgramRepository
	farmers     repository.FarmerRepository
	allocations repository.AllocationRepository
	log         *logger.Logger
}

// NewProgramService creates a new instance of ProgramService.
func NewProgramService(
	programs repository.ProgramRepository,
	farmers repository.FarmerRepository,
	allocations repository.AllocationRepository,
	log *logger.Logger,
) ProgramService {
	return &programService{
		programs:    programs,
		farmers:     farmers,
		allocations: allocations,
		log:         log,
	}
}

func (s *programService) ListPrograms(ctx context.Context) ([]models.AidProgram, error) {
	programs, err := s.programs.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list aid programs", err, nil)
		return nil, fmt.Errorf("failed to list aid programs: %w", err)
	}
	return programs, nil
}

func (s *programService) GetProgram(ctx context.Context, id int64) (*models.AidProgram, error) {
	program, err := s.programs.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to fetch aid program", err, map[string]interface{}{"program_id": id})
		return nil, fmt.Errorf("failed to fetch aid program: %w", err)
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}
	return program, nil
}

func (s *programService) CreateProgram(ctx context.Context, program *models.AidProgram) error {
	if err := s.programs.Create(ctx, program); err != nil {
		s.log.Error("Failed to create aid program", err, map[string]interface{}{
			"name":     program.Name,
			"category": program.Category,
		})
		return fmt.Errorf("failed to create aid program: %w", err)
	}

	s.log.Info("Aid program created", map[string]interface{}{
		"program_id": program.ID,
		"name":       program.Name,
		"category":   program.Category,
		"barangay":   program.AssignedBarangay,
	})
	return nil
}

func (s *programService) UpdateProgram(ctx context.Context, program *models.AidProgram) error {
	found, err := s.programs.Update(ctx, program)
	if err != nil {
		s.log.Error("Failed to update aid program", err, map[string]interface{}{"program_id": program.ID})
		return fmt.Errorf("failed to update aid program: %w", err)
	}
	if !found {
		return ErrProgramNotFound
	}

	s.log.Info("Aid program updated", map[string]interface{}{"program_id": program.ID})
	return nil
}

func (s *programService) DeleteProgram(ctx context.Context, id int64) error {
	found, err := s.programs.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete aid program", err, map[string]interface{}{"program_id": id})
		return fmt.Errorf("failed to delete aid program: %w", err)
	}
	if !found {
		return ErrProgramNotFound
	}

	s.log.Info("Aid program deleted", map[string]interface{}{"program_id": id})
	return nil
}

func (s *programService) GetEligibleFarmers(ctx context.Context, programID int64) ([]models.Farmer, error) {
	program, err := s.GetProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	roster, err := s.farmers.FindActiveByBarangay(ctx, program.AssignedBarangay)
	if err != nil {
		s.log.Error("Failed to fetch barangay roster", err, map[string]interface{}{
			"program_id": programID,
			"barangay":   program.AssignedBarangay,
		})
		return nil, fmt.Errorf("failed to fetch barangay roster: %w", err)
	}

	allocated, err := s.allocations.FarmerIDsWithAllocation(ctx, programID)
	if err != nil {
		s.log.Error("Failed to fetch allocated farmers", err, map[string]interface{}{"program_id": programID})
		return nil, fmt.Errorf("failed to fetch allocated farmers: %w", err)
	}

	eligible := EligibleFarmers(program, roster, allocated)

	s.log.Info("Eligibility filter applied", map[string]interface{}{
		"program_id": programID,
		"category":   program.Category,
		"roster":     len(roster),
		"eligible":   len(eligible),
	})
	return eligible, nil
}

func (s *programService) GetBeneficiaries(ctx context.Context, programID int64) (*ProgramBeneficiaries, error) {
	program, err := s.GetProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	beneficiaries, err := s.allocations.FindBeneficiaries(ctx, programID)
	if err != nil {
		s.log.Error("Failed to fetch beneficiaries", err, map[string]interface{}{"program_id": programID})
		return nil, fmt.Errorf("failed to fetch beneficiaries: %w", err)
	}

	allocations, err := s.allocations.FindByProgram(ctx, programID)
	if err != nil {
		s.log.Error("Failed to fetch allocations", err, map[string]interface{}{"program_id": programID})
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}

	return &ProgramBeneficiaries{
		Program:       *program,
		Beneficiaries: beneficiaries,
		Account:       AccountFor(program, allocations),
	}, nil
}
