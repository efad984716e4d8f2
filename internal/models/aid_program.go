package models

import (
	"encoding/json"
	"time"
)

// ProgramCategory is the kind of aid a program offers. Values match the
// strings stored in the aid_programs.category column.
type ProgramCategory string

const (
	CategoryFinancialAssistance ProgramCategory = "Financial Assistance"
	CategoryFertilizerSupport   ProgramCategory = "Fertilizer Support"
	CategorySeedDistribution    ProgramCategory = "Seed Distribution"
	CategoryLivestockPoultry    ProgramCategory = "Livestock and Poultry Assistance"
	CategoryFarmTools           ProgramCategory = "Farm Tools and Equipment"
)

// Categories lists every known program category, in display order.
var Categories = []ProgramCategory{
	CategoryFinancialAssistance,
	CategoryFertilizerSupport,
	CategorySeedDistribution,
	CategoryLivestockPoultry,
	CategoryFarmTools,
}

// IsFinancial reports whether the category distributes cash rather than goods.
func (c ProgramCategory) IsFinancial() bool {
	return c == CategoryFinancialAssistance
}

// ResourceAllocation is a program's declared resource pool. Financial
// programs use Budget; physical-good programs use Quantity and Type (the
// unit, e.g. "kg" or "sacks"). Stored serialized in aid_programs.
type ResourceAllocation struct {
	Type     string  `json:"type,omitempty"`
	Quantity float64 `json:"quantity,omitempty"`
	Budget   float64 `json:"budget,omitempty"`
}

// EligibilityRules holds a program's admin-entered eligibility criteria.
// Stored serialized in aid_programs.
type EligibilityRules struct {
	MinIncome         float64 `json:"min_income,omitempty"`
	MaxIncome         float64 `json:"max_income,omitempty"`
	MinLandSize       float64 `json:"min_land_size,omitempty"`
	MaxLandSize       float64 `json:"max_land_size,omitempty"`
	LandOwnershipType string  `json:"land_ownership_type,omitempty"`
	LastUpdated       string  `json:"last_updated,omitempty"`
}

// AidProgram is an administrator-defined offer of a resource to eligible
// farmers in one barangay.
type AidProgram struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	Category           ProgramCategory    `json:"category"`
	ResourceAllocation ResourceAllocation `json:"resource_allocation"`
	Eligibility        EligibilityRules   `json:"eligibility"`
	AssignedBarangay   string             `json:"assigned_barangay"`
	FarmerTypes        []string           `json:"farmer_type"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// DecodeResourceAllocation parses the serialized resource_allocation column.
// Malformed JSON degrades to the zero value, never an error: a corrupted row
// must not take down reads of the programs that reference it.
func DecodeResourceAllocation(raw []byte) ResourceAllocation {
	var ra ResourceAllocation
	if len(raw) == 0 {
		return ra
	}
	if err := json.Unmarshal(raw, &ra); err != nil {
		return ResourceAllocation{}
	}
	return ra
}

// DecodeEligibilityRules parses the serialized eligibility column with the
// same degrade-to-zero behavior as DecodeResourceAllocation.
func DecodeEligibilityRules(raw []byte) EligibilityRules {
	var er EligibilityRules
	if len(raw) == 0 {
		return er
	}
	if err := json.Unmarshal(raw, &er); err != nil {
		return EligibilityRules{}
	}
	return er
}

// DecodeStringList parses a serialized string array column (farmer_type).
// Malformed JSON degrades to an empty list.
func DecodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

// EncodeJSON serializes a stored-JSON field for writing. It is the inverse
// of the Decode helpers; encoding these structs cannot fail.
func EncodeJSON(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return raw
}
