package services

import (
	"context"
	"fmt"

	"github.com/kabukiran/agriaid/internal/logger"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/repository"
)

// RequestService defines the interface for the farmer aid request workflow.
// Requests only get created and listed here; linking a request to a program
// or allocation is a manual staff action with no state machine in this
// service.
type RequestService interface {
	// CreateRequest records a pending aid request for a farmer. The farmer
	// must exist; ErrFarmerNotFound otherwise.
	CreateRequest(ctx context.Context, request *models.AidRequest) error

	// ListRequests returns aid requests joined with farmer and program
	// names, newest first. A non-zero farmerID filters to that farmer.
	ListRequests(ctx context.Context, farmerID int64) ([]models.AidRequest, error)
}

// requestService is the concrete implementation of RequestService.
type requestService struct {
	requests repository.RequestRepository
	farmers  repository.FarmerRepository
	log      *logger.Logger
}

// NewRequestService creates a new instance of RequestService.
func NewRequestService(
	requests repository.RequestRepository,
	farmers repository.FarmerRepository,
	log *logger.Logger,
) RequestService {
	return &requestService{
		requests: requests,
		farmers:  farmers,
		log:      log,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, request *models.AidRequest) error {
	farmer, err := s.farmers.FindByID(ctx, request.FarmerID)
	if err != nil {
		s.log.Error("Failed to verify farmer for aid request", err, map[string]interface{}{
			"farmer_id": request.FarmerID,
		})
		return fmt.Errorf("failed to verify farmer: %w", err)
	}
	if farmer == nil {
		return ErrFarmerNotFound
	}

	if err := s.requests.Create(ctx, request); err != nil {
		s.log.Error("Failed to create aid request", err, map[string]interface{}{
			"farmer_id": request.FarmerID,
			"category":  request.Category,
		})
		return fmt.Errorf("failed to create aid request: %w", err)
	}

	s.log.Info("Aid request submitted", map[string]interface{}{
		"request_id": request.ID,
		"farmer_id":  request.FarmerID,
		"category":   request.Category,
	})
	return nil
}

func (s *requestService) ListRequests(ctx context.Context, farmerID int64) ([]models.AidRequest, error) {
	requests, err := s.requests.FindAll(ctx, farmerID)
	if err != nil {
		s.log.Error("Failed to list aid requests", err, map[string]interface{}{"farmer_id": farmerID})
		return nil, fmt.Errorf("failed to list aid requests: %w", err)
	}
	return requests, nil
}
