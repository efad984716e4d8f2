package repository

import (
	"context"
	"testing"

	"github.com/kabukiran/agriaid/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramRepository_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgramRepository(db)
	ctx := context.Background()

	created := insertTestProgram(t, db, func(p *models.AidProgram) {
		p.Eligibility = models.EligibilityRules{MaxIncome: 50000}
	})
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, created.Name, found.Name)
	assert.Equal(t, models.CategorySeedDistribution, found.Category)
	assert.Equal(t, "kg", found.ResourceAllocation.Type)
	assert.Equal(t, float64(100), found.ResourceAllocation.Quantity)
	assert.Equal(t, float64(50000), found.Eligibility.MaxIncome)
	assert.Equal(t, []string{"Rice Farmer"}, found.FarmerTypes)
}

func TestProgramRepository_FindByID_Miss(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgramRepository(db)

	found, err := repo.FindByID(context.Background(), -1)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProgramRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgramRepository(db)
	ctx := context.Background()

	program := insertTestProgram(t, db, nil)
	program.Name = "Renamed Subsidy"
	program.ResourceAllocation.Quantity = 250

	found, err := repo.Update(ctx, program)
	require.NoError(t, err)
	require.True(t, found)

	reread, err := repo.FindByID(ctx, program.ID)
	require.NoError(t, err)
	require.NotNil(t, reread)
	assert.Equal(t, "Renamed Subsidy", reread.Name)
	assert.Equal(t, float64(250), reread.ResourceAllocation.Quantity)
}

func TestProgramRepository_Update_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgramRepository(db)

	program := &models.AidProgram{ID: -1, Name: "Ghost", Category: models.CategoryFarmTools}
	found, err := repo.Update(context.Background(), program)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProgramRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgramRepository(db)
	ctx := context.Background()

	program := insertTestProgram(t, db, nil)

	found, err := repo.Delete(ctx, program.ID)
	require.NoError(t, err)
	assert.True(t, found)

	reread, err := repo.FindByID(ctx, program.ID)
	require.NoError(t, err)
	assert.Nil(t, reread)

	found, err = repo.Delete(ctx, program.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
