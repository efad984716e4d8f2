package services

import (
	"context"
	"fmt"

	"github.com/kabukiran/agriaid/internal/logger"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/repository"
)

// ProgramSummary is the per-program line of the distribution summary.
type ProgramSummary struct {
	ProgramID        int64                  `json:"program_id"`
	Name             string                 `json:"name"`
	Category         models.ProgramCategory `json:"category"`
	AssignedBarangay string                 `json:"assigned_barangay"`
	Beneficiaries    int                    `json:"beneficiaries"`
	TotalDistributed string                 `json:"total_distributed"`
	Remaining        string                 `json:"remaining"`
}

// DistributionSummary groups program summaries by category.
type DistributionSummary struct {
	Categories map[models.ProgramCategory][]ProgramSummary `json:"categories"`
	Programs   int                                         `json:"programs"`
}

// AnalyticsService defines the interface for distribution analytics.
type AnalyticsService interface {
	// Summary computes a distribution rollup across all programs by
	// fetching each program's allocations and running the resource
	// account over them.
	Summary(ctx context.Context) (*DistributionSummary, error)
}

// analyticsService is the concrete implementation of AnalyticsService.
type analyticsService struct {
	programs    repository.ProgramRepository
	allocations repository.AllocationRepository
	log         *logger.Logger
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(
	programs repository.ProgramRepository,
	allocations repository.AllocationRepository,
	log *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		programs:    programs,
		allocations: allocations,
		log:         log,
	}
}

func (s *analyticsService) Summary(ctx context.Context) (*DistributionSummary, error) {
	programs, err := s.programs.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to fetch programs for summary", err, nil)
		return nil, fmt.Errorf("failed to fetch programs: %w", err)
	}

	summary := &DistributionSummary{
		Categories: map[models.ProgramCategory][]ProgramSummary{},
		Programs:   len(programs),
	}

	for i := range programs {
		program := &programs[i]

		allocations, err := s.allocations.FindByProgram(ctx, program.ID)
		if err != nil {
			s.log.Error("Failed to fetch allocations for summary", err, map[string]interface{}{
				"program_id": program.ID,
			})
			return nil, fmt.Errorf("failed to fetch allocations for program %d: %w", program.ID, err)
		}

		recipients := map[int64]struct{}{}
		for _, a := range allocations {
			recipients[a.FarmerID] = struct{}{}
		}

		account := AccountFor(program, allocations)
		summary.Categories[program.Category] = append(summary.Categories[program.Category], ProgramSummary{
			ProgramID:        program.ID,
			Name:             program.Name,
			Category:         program.Category,
			AssignedBarangay: program.AssignedBarangay,
			Beneficiaries:    len(recipients),
			TotalDistributed: account.TotalDistributed.Display(),
			Remaining:        account.Remaining.Display(),
		})
	}

	return summary, nil
}
