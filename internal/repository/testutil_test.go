package repository

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/kabukiran/agriaid/internal/config"
	"github.com/kabukiran/agriaid/internal/database"
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the integration test database, skipping the test
// when none is reachable. Requires the migrated agriaid schema.
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := config.DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		Name:     getEnvOrDefault("DB_NAME", "agriaid"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		PoolMin:  2,
		PoolMax:  5,
	}

	db, err := database.NewPostgresPool(context.Background(), cfg)
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// insertTestFarmer creates a farmer row with a unique id and username and
// registers cleanup to remove it.
func insertTestFarmer(t *testing.T, db *database.Database, mutate func(*models.Farmer)) *models.Farmer {
	t.Helper()

	id := 1_000_000_000_000 + rand.Int63n(9_000_000_000_000)
	farmer := &models.Farmer{
		ID:           id,
		Username:     fmt.Sprintf("testfarmer%d", id),
		Name:         "Test Farmer",
		FarmLocation: "Testville",
		LandSize:     "2 hectares",
		Income:       30000,
		FarmerTypes:  []string{"Rice Farmer"},
		Active:       true,
		Crops: []models.Crop{
			{FarmerID: id, Name: "Palay", Season: models.SeasonWet},
		},
	}
	if mutate != nil {
		mutate(farmer)
	}

	repo := NewFarmerRepository(db)
	require.NoError(t, repo.Create(context.Background(), farmer))
	t.Cleanup(func() { cleanupFarmer(t, db, farmer.ID) })

	return farmer
}

// insertTestProgram creates a program row and registers cleanup to remove it
// along with any allocations recorded under it.
func insertTestProgram(t *testing.T, db *database.Database, mutate func(*models.AidProgram)) *models.AidProgram {
	t.Helper()

	program := &models.AidProgram{
		Name:     "Test Seed Subsidy",
		Category: models.CategorySeedDistribution,
		ResourceAllocation: models.ResourceAllocation{
			Type:     "kg",
			Quantity: 100,
		},
		AssignedBarangay: "Testville",
		FarmerTypes:      []string{"Rice Farmer"},
	}
	if mutate != nil {
		mutate(program)
	}

	repo := NewProgramRepository(db)
	require.NoError(t, repo.Create(context.Background(), program))
	t.Cleanup(func() { cleanupProgram(t, db, program.ID) })

	return program
}

func cleanupFarmer(t *testing.T, db *database.Database, id int64) {
	t.Helper()
	ctx := context.Background()
	for _, query := range []string{
		"DELETE FROM aid_allocations WHERE farmer_id = $1",
		"DELETE FROM aid_requests WHERE farmer_id = $1",
		"DELETE FROM crops WHERE farmer_id = $1",
		"DELETE FROM farmers WHERE id = $1",
	} {
		if _, err := db.Pool.Exec(ctx, query, id); err != nil {
			t.Logf("Warning: farmer cleanup failed: %v", err)
		}
	}
}

func cleanupProgram(t *testing.T, db *database.Database, id int64) {
	t.Helper()
	ctx := context.Background()
	for _, query := range []string{
		"DELETE FROM aid_allocations WHERE aid_program_id = $1",
		"DELETE FROM aid_programs WHERE id = $1",
	} {
		if _, err := db.Pool.Exec(ctx, query, id); err != nil {
			t.Logf("Warning: program cleanup failed: %v", err)
		}
	}
}
