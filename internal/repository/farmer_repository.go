package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kabukiran/agriaid/internal/database"
	"github.com/kabukiran/agriaid/internal/models"
)

// ErrDuplicateUsername is returned when an insert or update collides with an
// existing farmer username.
var ErrDuplicateUsername = errors.New("username already exists")

// FarmerRepository defines the interface for farmer data access.
type FarmerRepository interface {
	// FindByID returns the farmer with the given id, crops included.
	// Returns nil, nil if no farmer is found (not an error).
	FindByID(ctx context.Context, id int64) (*models.Farmer, error)

	// FindAll returns farmers, optionally filtered by barangay. Inactive
	// farmers are excluded. Crops are loaded for every returned farmer.
	FindAll(ctx context.Context, barangay string) ([]models.Farmer, error)

	// FindActiveByBarangay returns the active roster for one barangay with
	// crops loaded, in insertion order. This is the eligibility pre-filter:
	// active = true AND farm_location = barangay.
	FindActiveByBarangay(ctx context.Context, barangay string) ([]models.Farmer, error)

	// Create inserts a farmer and its crops in one transaction.
	Create(ctx context.Context, farmer *models.Farmer) error

	// Update rewrites a farmer row and wholesale replaces its crops
	// (delete-all then re-insert) in one transaction. Returns false if no
	// farmer row matched.
	Update(ctx context.Context, farmer *models.Farmer) (bool, error)

	// Deactivate soft-deletes a farmer (active = false). Returns false if
	// no row matched.
	Deactivate(ctx context.Context, id int64) (bool, error)

	// UsernameExists reports whether any farmer already has the username.
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// farmerRepository is the concrete implementation of FarmerRepository.
type farmerRepository struct {
	db *database.Database
}

// NewFarmerRepository creates a new instance of FarmerRepository.
func NewFarmerRepository(db *database.Database) FarmerRepository {
	return &farmerRepository{db: db}
}

const farmerColumns = `
	id,
	username,
	name,
	birthday,
	age,
	gender,
	phone,
	farm_location,
	land_size,
	farm_owner,
	income,
	image,
	farm_ownership_type,
	farmer_type,
	active,
	created_at,
	updated_at
`

func scanFarmer(row pgx.Row) (*models.Farmer, error) {
	var (
		farmer    models.Farmer
		typesJSON []byte
	)

	err := row.Scan(
		&farmer.ID,
		&farmer.Username,
		&farmer.Name,
		&farmer.Birthday,
		&farmer.Age,
		&farmer.Gender,
		&farmer.Phone,
		&farmer.FarmLocation,
		&farmer.LandSize,
		&farmer.FarmOwner,
		&farmer.Income,
		&farmer.Image,
		&farmer.FarmOwnershipType,
		&typesJSON,
		&farmer.Active,
		&farmer.CreatedAt,
		&farmer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	farmer.FarmerTypes = models.DecodeStringList(typesJSON)
	farmer.Crops = []models.Crop{}

	return &farmer, nil
}

func (r *farmerRepository) FindByID(ctx context.Context, id int64) (*models.Farmer, error) {
	query := `SELECT ` + farmerColumns + ` FROM farmers WHERE id = $1`

	farmer, err := scanFarmer(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query farmer %d: %w", id, err)
	}

	if err := r.loadCrops(ctx, []*models.Farmer{farmer}); err != nil {
		return nil, err
	}
	return farmer, nil
}

func (r *farmerRepository) FindAll(ctx context.Context, barangay string) ([]models.Farmer, error) {
	query := `SELECT ` + farmerColumns + ` FROM farmers WHERE active = TRUE`
	args := []interface{}{}
	if barangay != "" {
		query += ` AND farm_location = $1`
		args = append(args, barangay)
	}
	query += ` ORDER BY created_at, id`

	return r.queryFarmers(ctx, query, args...)
}

func (r *farmerRepository) FindActiveByBarangay(ctx context.Context, barangay string) ([]models.Farmer, error) {
	query := `SELECT ` + farmerColumns + `
		FROM farmers
		WHERE active = TRUE AND farm_location = $1
		ORDER BY created_at, id`

	return r.queryFarmers(ctx, query, barangay)
}

func (r *farmerRepository) queryFarmers(ctx context.Context, query string, args ...interface{}) ([]models.Farmer, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query farmers: %w", err)
	}
	defer rows.Close()

	var ptrs []*models.Farmer
	for rows.Next() {
		farmer, err := scanFarmer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farmer row: %w", err)
		}
		ptrs = append(ptrs, farmer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating farmer rows: %w", err)
	}

	if err := r.loadCrops(ctx, ptrs); err != nil {
		return nil, err
	}

	farmers := make([]models.Farmer, 0, len(ptrs))
	for _, f := range ptrs {
		farmers = append(farmers, *f)
	}
	return farmers, nil
}

// loadCrops attaches crops to each farmer in one query.
func (r *farmerRepository) loadCrops(ctx context.Context, farmers []*models.Farmer) error {
	if len(farmers) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(farmers))
	byID := make(map[int64]*models.Farmer, len(farmers))
	for _, f := range farmers {
		ids = append(ids, f.ID)
		byID[f.ID] = f
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT farmer_id, name, season FROM crops WHERE farmer_id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to query crops: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var crop models.Crop
		if err := rows.Scan(&crop.FarmerID, &crop.Name, &crop.Season); err != nil {
			return fmt.Errorf("failed to scan crop row: %w", err)
		}
		if farmer, ok := byID[crop.FarmerID]; ok {
			farmer.Crops = append(farmer.Crops, crop)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating crop rows: %w", err)
	}
	return nil
}

func (r *farmerRepository) Create(ctx context.Context, farmer *models.Farmer) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO farmers (
				id, username, name, birthday, age, gender, phone,
				farm_location, land_size, farm_owner, income, image,
				farm_ownership_type, farmer_type, active, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			farmer.ID,
			farmer.Username,
			farmer.Name,
			farmer.Birthday,
			farmer.Age,
			farmer.Gender,
			farmer.Phone,
			farmer.FarmLocation,
			farmer.LandSize,
			farmer.FarmOwner,
			farmer.Income,
			farmer.Image,
			farmer.FarmOwnershipType,
			models.EncodeJSON(farmer.FarmerTypes),
		).Scan(&farmer.CreatedAt, &farmer.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("failed to insert farmer: %w", err)
		}
		farmer.Active = true

		return insertCrops(ctx, tx, farmer.ID, farmer.Crops)
	})
}

func (r *farmerRepository) Update(ctx context.Context, farmer *models.Farmer) (bool, error) {
	found := false
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE farmers
			SET name = $2,
				birthday = $3,
				age = $4,
				gender = $5,
				phone = $6,
				farm_location = $7,
				land_size = $8,
				farm_owner = $9,
				income = $10,
				image = $11,
				farm_ownership_type = $12,
				farmer_type = $13,
				updated_at = NOW()
			WHERE id = $1
		`
		tag, err := tx.Exec(ctx, query,
			farmer.ID,
			farmer.Name,
			farmer.Birthday,
			farmer.Age,
			farmer.Gender,
			farmer.Phone,
			farmer.FarmLocation,
			farmer.LandSize,
			farmer.FarmOwner,
			farmer.Income,
			farmer.Image,
			farmer.FarmOwnershipType,
			models.EncodeJSON(farmer.FarmerTypes),
		)
		if err != nil {
			return fmt.Errorf("failed to update farmer %d: %w", farmer.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		found = true

		// Crops are wholesale replaced, never diffed.
		if _, err := tx.Exec(ctx, `DELETE FROM crops WHERE farmer_id = $1`, farmer.ID); err != nil {
			return fmt.Errorf("failed to clear crops for farmer %d: %w", farmer.ID, err)
		}
		return insertCrops(ctx, tx, farmer.ID, farmer.Crops)
	})
	return found, err
}

func insertCrops(ctx context.Context, tx pgx.Tx, farmerID int64, crops []models.Crop) error {
	for _, crop := range crops {
		_, err := tx.Exec(ctx,
			`INSERT INTO crops (farmer_id, name, season) VALUES ($1, $2, $3)`,
			farmerID, crop.Name, crop.Season,
		)
		if err != nil {
			return fmt.Errorf("failed to insert crop %q for farmer %d: %w", crop.Name, farmerID, err)
		}
	}
	return nil
}

func (r *farmerRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE farmers SET active = FALSE, updated_at = NOW() WHERE id = $1 AND active = TRUE`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate farmer %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *farmerRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM farmers WHERE username = $1)`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username %q: %w", username, err)
	}
	return exists, nil
}
