package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kabukiran/agriaid/internal/database"
	"github.com/kabukiran/agriaid/internal/models"
)

// ProgramRepository defines the interface for aid program data access.
type ProgramRepository interface {
	// FindByID returns the program with the given id.
	// Returns nil, nil if no program is found (not an error).
	FindByID(ctx context.Context, id int64) (*models.AidProgram, error)

	// FindAll returns every program, newest first.
	FindAll(ctx context.Context) ([]models.AidProgram, error)

	// Create inserts a new program and fills in its generated ID.
	Create(ctx context.Context, program *models.AidProgram) error

	// Update rewrites a program row. Returns false if no row matched.
	Update(ctx context.Context, program *models.AidProgram) (bool, error)

	// Delete removes a program row. Returns false if no row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

// programRepository is the concrete implementation of ProgramRepository.
type programRepository struct {
	db *database.Database
}

// NewProgramRepository creates a new instance of ProgramRepository.
func NewProgramRepository(db *database.Database) ProgramRepository {
	return &programRepository{db: db}
}

const programColumns = `
	id,
	name,
	category,
	resource_allocation,
	eligibility,
	assigned_barangay,
	farmer_type,
	created_at,
	updated_at
`

// scanProgram reads one program row. The three stored-JSON columns are
// decoded with degrade-to-zero semantics: a corrupted blob yields an empty
// struct or list, never a scan error.
func scanProgram(row pgx.Row) (*models.AidProgram, error) {
	var (
		program        models.AidProgram
		allocationJSON []byte
		rulesJSON      []byte
		typesJSON      []byte
	)

	err := row.Scan(
		&program.ID,
		&program.Name,
		&program.Category,
		&allocationJSON,
		&rulesJSON,
		&typesJSON,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	program.ResourceAllocation = models.DecodeResourceAllocation(allocationJSON)
	program.Eligibility = models.DecodeEligibilityRules(rulesJSON)
	program.FarmerTypes = models.DecodeStringList(typesJSON)

	return &program, nil
}

func (r *programRepository) FindByID(ctx context.Context, id int64) (*models.AidProgram, error) {
	query := `SELECT ` + programColumns + ` FROM aid_programs WHERE id = $1`

	program, err := scanProgram(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query aid program %d: %w", id, err)
	}
	return program, nil
}

func (r *programRepository) FindAll(ctx context.Context) ([]models.AidProgram, error) {
	query := `SELECT ` + programColumns + ` FROM aid_programs ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query aid programs: %w", err)
	}
	defer rows.Close()

	programs := []models.AidProgram{}
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aid program row: %w", err)
		}
		programs = append(programs, *program)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aid program rows: %w", err)
	}

	return programs, nil
}

func (r *programRepository) Create(ctx context.Context, program *models.AidProgram) error {
	query := `
		INSERT INTO aid_programs (
			name, category, resource_allocation, eligibility,
			assigned_barangay, farmer_type, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		program.Name,
		program.Category,
		models.EncodeJSON(program.ResourceAllocation),
		models.EncodeJSON(program.Eligibility),
		program.AssignedBarangay,
		models.EncodeJSON(program.FarmerTypes),
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert aid program: %w", err)
	}
	return nil
}

func (r *programRepository) Update(ctx context.Context, program *models.AidProgram) (bool, error) {
	query := `
		UPDATE aid_programs
		SET name = $2,
			category = $3,
			resource_allocation = $4,
			eligibility = $5,
			assigned_barangay = $6,
			farmer_type = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		program.ID,
		program.Name,
		program.Category,
		models.EncodeJSON(program.ResourceAllocation),
		models.EncodeJSON(program.Eligibility),
		program.AssignedBarangay,
		models.EncodeJSON(program.FarmerTypes),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update aid program %d: %w", program.ID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *programRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM aid_programs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete aid program %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
