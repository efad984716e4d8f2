package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/kabukiran/agriaid/internal/logger"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/kabukiran/agriaid/internal/repository"
)

// Farmer errors
var (
	ErrFarmerNotFound = errors.New("farmer not found")
	ErrUsernameTaken  = errors.New("username already taken")
)

// FarmerService defines the interface for farmer record management.
type FarmerService interface {
	// ListFarmers returns active farmers, optionally restricted to one
	// barangay, crops included.
	ListFarmers(ctx context.Context, barangay string) ([]models.Farmer, error)

	// GetFarmer returns one farmer with crops. Returns ErrFarmerNotFound
	// when the id does not exist.
	GetFarmer(ctx context.Context, id int64) (*models.Farmer, error)

	// CreateFarmer registers a farmer: assigns a 13-digit random id,
	// derives a deduplicated username from the name, and inserts the
	// record with its crops. Returns ErrUsernameTaken only when an
	// explicitly provided username collides.
	CreateFarmer(ctx context.Context, farmer *models.Farmer) error

	// UpdateFarmer rewrites a farmer's profile and wholesale replaces its
	// crops. Returns ErrFarmerNotFound when the id does not exist.
	UpdateFarmer(ctx context.Context, farmer *models.Farmer) error

	// DeactivateFarmer soft-deletes a farmer, removing it from rosters
	// while keeping its allocation history. Returns ErrFarmerNotFound when
	// the id does not exist or the farmer is already inactive.
	DeactivateFarmer(ctx context.Context, id int64) error
}

// farmerService is the concrete implementation of FarmerService.
type farmerService struct {
	farmers repository.FarmerRepository
	log     *logger.Logger
}

// NewFarmerService creates a new instance of FarmerService.
func NewFarmerService(farmers repository.FarmerRepository, log *logger.Logger) FarmerService {
	return &farmerService{
		farmers: farmers,
		log:     log,
	}
}

func (s *farmerService) ListFarmers(ctx context.Context, barangay string) ([]models.Farmer, error) {
	farmers, err := s.farmers.FindAll(ctx, barangay)
	if err != nil {
		s.log.Error("Failed to list farmers", err, map[string]interface{}{"barangay": barangay})
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	return farmers, nil
}

func (s *farmerService) GetFarmer(ctx context.Context, id int64) (*models.Farmer, error) {
	farmer, err := s.farmers.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to fetch farmer", err, map[string]interface{}{"farmer_id": id})
		return nil, fmt.Errorf("failed to fetch farmer: %w", err)
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return farmer, nil
}

func (s *farmerService) CreateFarmer(ctx context.Context, farmer *models.Farmer) error {
	if farmer.ID == 0 {
		farmer.ID = newFarmerID()
	}

	if farmer.Username == "" {
		username, err := s.deriveUsername(ctx, farmer.Name)
		if err != nil {
			return err
		}
		farmer.Username = username
	}

	if err := s.farmers.Create(ctx, farmer); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return ErrUsernameTaken
		}
		s.log.Error("Failed to create farmer", err, map[string]interface{}{
			"farmer_id": farmer.ID,
			"username":  farmer.Username,
		})
		return fmt.Errorf("failed to create farmer: %w", err)
	}

	s.log.Info("Farmer registered", map[string]interface{}{
		"farmer_id": farmer.ID,
		"username":  farmer.Username,
		"barangay":  farmer.FarmLocation,
	})
	return nil
}

func (s *farmerService) UpdateFarmer(ctx context.Context, farmer *models.Farmer) error {
	found, err := s.farmers.Update(ctx, farmer)
	if err != nil {
		s.log.Error("Failed to update farmer", err, map[string]interface{}{"farmer_id": farmer.ID})
		return fmt.Errorf("failed to update farmer: %w", err)
	}
	if !found {
		return ErrFarmerNotFound
	}

	s.log.Info("Farmer updated", map[string]interface{}{
		"farmer_id": farmer.ID,
		"crops":     len(farmer.Crops),
	})
	return nil
}

func (s *farmerService) DeactivateFarmer(ctx context.Context, id int64) error {
	found, err := s.farmers.Deactivate(ctx, id)
	if err != nil {
		s.log.Error("Failed to deactivate farmer", err, map[string]interface{}{"farmer_id": id})
		return fmt.Errorf("failed to deactivate farmer: %w", err)
	}
	if !found {
		return ErrFarmerNotFound
	}

	s.log.Info("Farmer deactivated", map[string]interface{}{"farmer_id": id})
	return nil
}

// newFarmerID generates a random 13-digit farmer id. Uniqueness is assumed,
// not verified at generation time; the primary key constraint is the
// backstop.
func newFarmerID() int64 {
	const low = 1_000_000_000_000 // smallest 13-digit number
	return low + rand.Int63n(9*low)
}

// deriveUsername builds a username from the farmer's name (lowercased,
// spaces removed) and deduplicates it with a numeric suffix.
func (s *farmerService) deriveUsername(ctx context.Context, name string) (string, error) {
	base := strings.ToLower(strings.Join(strings.Fields(name), ""))
	if base == "" {
		base = "farmer"
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		exists, err := s.farmers.UsernameExists(ctx, candidate)
		if err != nil {
			s.log.Error("Failed to check username", err, map[string]interface{}{"username": candidate})
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(suffix)
	}
}
