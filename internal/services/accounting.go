package services

import (
	"github.com/kabukiran/agriaid/internal/models"
	"github.com/shopspring/decimal"
)

// ResourceAccount is the accounting snapshot of one aid program: how much of
// its declared budget or quantity has been distributed and how much remains.
// Pure computation over fetched rows; no side effects.
type ResourceAccount struct {
	TotalDistributed models.Amount
	Remaining        models.Amount
}

// AccountFor computes the resource account for a program given every
// allocation recorded under it. Each stored quantity_received string is
// decoded once; malformed rows contribute zero. Financial programs account
// against Budget, all others against Quantity. A negative remainder is
// reported as-is rather than clamped; over-distribution is prevented at
// record time, not hidden here.
func AccountFor(program *models.AidProgram, allocations []models.AidAllocation) ResourceAccount {
	distributed := decimal.Zero
	for i := range allocations {
		distributed = distributed.Add(allocations[i].Amount().Value)
	}

	if program.Category.IsFinancial() {
		budget := decimal.NewFromFloat(program.ResourceAllocation.Budget)
		return ResourceAccount{
			TotalDistributed: models.Currency(distributed),
			Remaining:        models.Currency(budget.Sub(distributed)),
		}
	}

	unit := program.ResourceAllocation.Type
	quantity := decimal.NewFromFloat(program.ResourceAllocation.Quantity)
	return ResourceAccount{
		TotalDistributed: models.Quantity(distributed, unit),
		Remaining:        models.Quantity(quantity.Sub(distributed), unit),
	}
}
