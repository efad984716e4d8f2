package services

import (
	"github.com/kabukiran/agriaid/internal/models"
)

// Income and land-size thresholds of the category policy table.
const (
	financialIncomeCeiling = 50000.0
	livestockIncomeCeiling = 30000.0
	cropLandSizeMin        = 0.5
	cropLandSizeMax        = 5.0
	livestockLandSizeMin   = 1.0
)

// EligibleFarmers filters the roster of a program's barangay down to the
// farmers eligible to receive its aid. The roster must already be restricted
// to active farmers of the assigned barangay; that pre-filter is a query
// condition, not re-checked here. Farmers in alreadyAllocated (those holding
// an allocation under this program) are excluded before the category
// predicate runs. Output order follows input order; the result is recomputed
// fresh on every call.
func EligibleFarmers(program *models.AidProgram, roster []models.Farmer, alreadyAllocated map[int64]struct{}) []models.Farmer {
	eligible := []models.Farmer{}
	for i := range roster {
		farmer := &roster[i]
		if _, received := alreadyAllocated[farmer.ID]; received {
			continue
		}
		if isEligible(program.Category, farmer) {
			eligible = append(eligible, roster[i])
		}
	}
	return eligible
}

// isEligible evaluates the category predicate for one farmer. Land size is
// the leading number of the free-text land_size field; an unparseable value
// reads as 0 and fails every positive lower bound. Unknown categories admit
// everyone.
func isEligible(category models.ProgramCategory, farmer *models.Farmer) bool {
	switch category {
	case models.CategoryFinancialAssistance:
		return farmer.Income < financialIncomeCeiling
	case models.CategoryFertilizerSupport, models.CategorySeedDistribution:
		land := farmer.LandSizeValue()
		return farmer.HasCrops() && land >= cropLandSizeMin && land <= cropLandSizeMax
	case models.CategoryLivestockPoultry:
		return farmer.Income < livestockIncomeCeiling && farmer.LandSizeValue() >= livestockLandSizeMin
	case models.CategoryFarmTools:
		return farmer.HasCrops()
	default:
		return true
	}
}
