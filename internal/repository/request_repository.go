package repository

import (
	"context"
	"fmt"

	"github.com/kabukiran/agriaid/internal/database"
	"github.com/kabukiran/agriaid/internal/models"
)

// RequestRepository defines the interface for aid request data access.
type RequestRepository interface {
	// Create inserts a pending aid request and fills in its generated ID
	// and request date.
	Create(ctx context.Context, request *models.AidRequest) error

	// FindAll returns aid requests joined with farmer and program names,
	// newest first. A non-zero farmerID filters to that farmer.
	FindAll(ctx context.Context, farmerID int64) ([]models.AidRequest, error)
}

// requestRepository is the concrete implementation of RequestRepository.
type requestRepository struct {
	db *database.Database
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(db *database.Database) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.AidRequest) error {
	query := `
		INSERT INTO aid_requests (farmer_id, category, req_note, status, request_date)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, request_date
	`

	err := r.db.Pool.QueryRow(ctx, query,
		request.FarmerID,
		request.Category,
		request.ReqNote,
		models.RequestPending,
	).Scan(&request.ID, &request.RequestDate)
	if err != nil {
		return fmt.Errorf("failed to insert aid request: %w", err)
	}
	request.Status = models.RequestPending
	return nil
}

func (r *requestRepository) FindAll(ctx context.Context, farmerID int64) ([]models.AidRequest, error) {
	query := `
		SELECT r.id, r.farmer_id, r.category, r.req_note, r.aid_program_id,
			r.distribution_date, r.status, r.request_date,
			f.name, p.name
		FROM aid_requests r
		JOIN farmers f ON f.id = r.farmer_id
		LEFT JOIN aid_programs p ON p.id = r.aid_program_id
	`
	args := []interface{}{}
	if farmerID != 0 {
		query += ` WHERE r.farmer_id = $1`
		args = append(args, farmerID)
	}
	query += ` ORDER BY r.request_date DESC, r.id DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aid requests: %w", err)
	}
	defer rows.Close()

	requests := []models.AidRequest{}
	for rows.Next() {
		var req models.AidRequest
		err := rows.Scan(
			&req.ID,
			&req.FarmerID,
			&req.Category,
			&req.ReqNote,
			&req.AidProgramID,
			&req.DistributionDate,
			&req.Status,
			&req.RequestDate,
			&req.FarmerName,
			&req.ProgramName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aid request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aid request rows: %w", err)
	}

	return requests, nil
}
