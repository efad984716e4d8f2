package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kabukiran/agriaid/internal/database"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/shopspring/decimal"
)

// Batch-level errors surfaced by RecordBatch. The whole batch fails as a
// unit; no partial distribution ever persists.
var (
	ErrProgramNotFound       = errors.New("aid program not found")
	ErrInsufficientResources = errors.New("batch exceeds remaining program resources")
)

// NewAllocation is one (farmer, quantity) pair in a distribution batch. A
// zero Quantity means "use the program's declared per-farmer quantity".
type NewAllocation struct {
	FarmerID int64
	Quantity decimal.Decimal
}

// AllocationRepository defines the interface for aid allocation data access.
type AllocationRepository interface {
	// FindByProgram returns every allocation recorded under a program.
	FindByProgram(ctx context.Context, programID int64) ([]models.AidAllocation, error)

	// FindBeneficiaries returns allocations under a program joined with
	// farmer names, oldest first.
	FindBeneficiaries(ctx context.Context, programID int64) ([]models.Beneficiary, error)

	// FarmerIDsWithAllocation returns the set of farmers that already hold
	// an allocation under the program.
	FarmerIDsWithAllocation(ctx context.Context, programID int64) (map[int64]struct{}, error)

	// RecordBatch atomically records a distribution batch. Inside one
	// transaction it locks the program row, re-checks remaining capacity
	// against existing allocations, and inserts one row per pair with
	// status Distributed. Returns ErrProgramNotFound before any write when
	// the program is missing, and ErrInsufficientResources when the batch
	// would overrun the declared budget or quantity.
	RecordBatch(ctx context.Context, programID int64, batch []NewAllocation) error
}

// allocationRepository is the concrete implementation of AllocationRepository.
type allocationRepository struct {
	db *database.Database
}

// NewAllocationRepository creates a new instance of AllocationRepository.
func NewAllocationRepository(db *database.Database) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) FindByProgram(ctx context.Context, programID int64) ([]models.AidAllocation, error) {
	query := `
		SELECT id, aid_program_id, farmer_id, quantity_received,
			distribution_date, status, remarks
		FROM aid_allocations
		WHERE aid_program_id = $1
		ORDER BY distribution_date, id
	`

	rows, err := r.db.Pool.Query(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for program %d: %w", programID, err)
	}
	defer rows.Close()

	allocations := []models.AidAllocation{}
	for rows.Next() {
		var a models.AidAllocation
		err := rows.Scan(
			&a.ID,
			&a.AidProgramID,
			&a.FarmerID,
			&a.QuantityReceived,
			&a.DistributionDate,
			&a.Status,
			&a.Remarks,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}

	return allocations, nil
}

func (r *allocationRepository) FindBeneficiaries(ctx context.Context, programID int64) ([]models.Beneficiary, error) {
	query := `
		SELECT a.farmer_id, f.name, a.quantity_received, a.distribution_date, a.status
		FROM aid_allocations a
		JOIN farmers f ON f.id = a.farmer_id
		WHERE a.aid_program_id = $1
		ORDER BY a.distribution_date, a.id
	`

	rows, err := r.db.Pool.Query(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaries for program %d: %w", programID, err)
	}
	defer rows.Close()

	beneficiaries := []models.Beneficiary{}
	for rows.Next() {
		var b models.Beneficiary
		err := rows.Scan(&b.FarmerID, &b.Name, &b.QuantityReceived, &b.DistributionDate, &b.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary row: %w", err)
		}
		beneficiaries = append(beneficiaries, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beneficiary rows: %w", err)
	}

	return beneficiaries, nil
}

func (r *allocationRepository) FarmerIDsWithAllocation(ctx context.Context, programID int64) (map[int64]struct{}, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT DISTINCT farmer_id FROM aid_allocations WHERE aid_program_id = $1`,
		programID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocated farmers for program %d: %w", programID, err)
	}
	defer rows.Close()

	ids := map[int64]struct{}{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan farmer id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating farmer ids: %w", err)
	}

	return ids, nil
}

func (r *allocationRepository) RecordBatch(ctx context.Context, programID int64, batch []NewAllocation) error {
	if len(batch) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		// Re-fetch the program inside the transaction and lock its row so
		// concurrent batches against the same program serialize instead of
		// both reading the same remaining-capacity snapshot.
		var (
			category       models.ProgramCategory
			allocationJSON []byte
		)
		err := tx.QueryRow(ctx,
			`SELECT category, resource_allocation FROM aid_programs WHERE id = $1 FOR UPDATE`,
			programID,
		).Scan(&category, &allocationJSON)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrProgramNotFound
			}
			return fmt.Errorf("failed to lock aid program %d: %w", programID, err)
		}
		allocation := models.DecodeResourceAllocation(allocationJSON)

		// Remaining capacity check against allocations already recorded.
		var distributedRows []string
		rows, err := tx.Query(ctx,
			`SELECT quantity_received FROM aid_allocations WHERE aid_program_id = $1`,
			programID,
		)
		if err != nil {
			return fmt.Errorf("failed to query existing allocations for program %d: %w", programID, err)
		}
		for rows.Next() {
			var received string
			if err := rows.Scan(&received); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan allocation amount: %w", err)
			}
			distributedRows = append(distributedRows, received)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating allocation amounts: %w", err)
		}

		distributed := decimal.Zero
		for _, received := range distributedRows {
			distributed = distributed.Add(models.ParseAmount(received).Value)
		}

		capacity := decimal.NewFromFloat(allocation.Quantity)
		if category.IsFinancial() {
			capacity = decimal.NewFromFloat(allocation.Budget)
		}

		defaultQuantity := decimal.NewFromFloat(allocation.Quantity)
		batchTotal := decimal.Zero
		amounts := make([]models.Amount, 0, len(batch))
		for _, pair := range batch {
			quantity := pair.Quantity
			if quantity.IsZero() {
				quantity = defaultQuantity
			}
			batchTotal = batchTotal.Add(quantity)

			if category.IsFinancial() {
				amounts = append(amounts, models.Currency(quantity))
			} else {
				amounts = append(amounts, models.Quantity(quantity, allocation.Type))
			}
		}

		if distributed.Add(batchTotal).GreaterThan(capacity) {
			return ErrInsufficientResources
		}

		insert := &pgx.Batch{}
		for i, pair := range batch {
			insert.Queue(
				`INSERT INTO aid_allocations
					(aid_program_id, farmer_id, quantity_received, distribution_date, status)
				VALUES ($1, $2, $3, NOW(), $4)`,
				programID, pair.FarmerID, amounts[i].Encode(), models.AllocationDistributed,
			)
		}

		results := tx.SendBatch(ctx, insert)
		defer results.Close()
		for range batch {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert allocation: %w", err)
			}
		}
		return results.Close()
	})
}
