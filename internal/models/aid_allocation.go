package models

import "time"

// AllocationStatus is the lifecycle state of one allocation record.
type AllocationStatus string

const (
	AllocationPending     AllocationStatus = "Pending"
	AllocationDistributed AllocationStatus = "Distributed"
)

// AidAllocation is one recorded instance of a farmer receiving aid from a
// program. Rows are immutable after insert; corrections are new rows.
type AidAllocation struct {
	ID               int64            `json:"id"`
	AidProgramID     int64            `json:"aid_program_id"`
	FarmerID         int64            `json:"farmer_id"`
	QuantityReceived string           `json:"quantity_received"`
	DistributionDate time.Time        `json:"distribution_date"`
	Status           AllocationStatus `json:"status"`
	Remarks          *string          `json:"remarks,omitempty"`
}

// Amount decodes the stored quantity_received string.
func (a *AidAllocation) Amount() Amount {
	return ParseAmount(a.QuantityReceived)
}

// Beneficiary is an allocation joined with its farmer's name, as returned by
// the program beneficiaries listing.
type Beneficiary struct {
	FarmerID         int64            `json:"farmer_id"`
	Name             string           `json:"name"`
	QuantityReceived string           `json:"quantity_received"`
	DistributionDate time.Time        `json:"distribution_date"`
	Status           AllocationStatus `json:"status"`
}
