package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kabukiran/agriaid/internal/logger"
	"github.com/kabukiran/agriaid/internal/repository"
	"github.com/shopspring/decimal"
)

// Distribution errors
var (
	ErrEmptyBatch            = errors.New("distribution batch is empty")
	ErrInvalidQuantity       = errors.New("distribution quantity must not be negative")
	ErrInsufficientResources = errors.New("batch exceeds remaining program resources")
)

// Distribution is one (farmer, quantity) pair submitted for distribution.
// A zero quantity falls back to the program's declared per-farmer quantity.
type Distribution struct {
	FarmerID int64
	Quantity decimal.Decimal
}

// DistributionService defines the interface for recording aid distributions.
type DistributionService interface {
	// Distribute atomically records that each farmer in the batch received
	// aid from the program: either every allocation row is inserted or none
	// is. Returns ErrProgramNotFound before any write when the program is
	// missing, ErrInsufficientResources when the batch would overrun the
	// program's budget or quantity, and a wrapped error on database
	// failure (the transaction is rolled back). A failed batch must be
	// resubmitted wholesale; there is no per-row retry.
	Distribute(ctx context.Context, programID int64, batch []Distribution) error
}

// distributionService is the concrete implementation of DistributionService.
type distributionService struct {
	allocations repository.AllocationRepository
	log         *logger.Logger
}

// NewDistributionService creates a new instance of DistributionService.
func NewDistributionService(allocations repository.AllocationRepository, log *logger.Logger) DistributionService {
	return &distributionService{
		allocations: allocations,
		log:         log,
	}
}

func (s *distributionService) Distribute(ctx context.Context, programID int64, batch []Distribution) error {
	if len(batch) == 0 {
		return ErrEmptyBatch
	}
	for _, d := range batch {
		if d.Quantity.IsNegative() {
			return fmt.Errorf("%w: farmer %d", ErrInvalidQuantity, d.FarmerID)
		}
	}

	rows := make([]repository.NewAllocation, 0, len(batch))
	for _, d := range batch {
		rows = append(rows, repository.NewAllocation{
			FarmerID: d.FarmerID,
			Quantity: d.Quantity,
		})
	}

	err := s.allocations.RecordBatch(ctx, programID, rows)
	if err != nil {
		if errors.Is(err, repository.ErrProgramNotFound) {
			return ErrProgramNotFound
		}
		if errors.Is(err, repository.ErrInsufficientResources) {
			s.log.Warn("Distribution batch rejected for insufficient resources", map[string]interface{}{
				"program_id": programID,
				"batch_size": len(batch),
			})
			return ErrInsufficientResources
		}
		s.log.Error("Distribution batch failed", err, map[string]interface{}{
			"program_id": programID,
			"batch_size": len(batch),
		})
		return fmt.Errorf("failed to record distribution batch: %w", err)
	}

	s.log.Info("Distribution batch recorded", map[string]interface{}{
		"program_id": programID,
		"batch_size": len(batch),
	})
	return nil
}
