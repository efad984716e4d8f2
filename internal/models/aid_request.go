package models

import "time"

// RequestStatus is the lifecycle state of a farmer-submitted aid request.
// Requests start Pending; linking a request to a concrete program and
// allocation is a manual staff action outside this service.
type RequestStatus string

const (
	RequestPending RequestStatus = "Pending"
)

// AidRequest is a farmer-initiated, unstructured request for aid.
type AidRequest struct {
	ID               int64         `json:"id"`
	FarmerID         int64         `json:"farmer_id"`
	Category         string        `json:"category"`
	ReqNote          string        `json:"req_note"`
	AidProgramID     *int64        `json:"aid_program_id,omitempty"`
	DistributionDate *time.Time    `json:"distribution_date,omitempty"`
	Status           RequestStatus `json:"status"`
	RequestDate      time.Time     `json:"request_date"`

	// Joined display fields, populated by the list query.
	FarmerName  string  `json:"farmer_name,omitempty"`
	ProgramName *string `json:"program_name,omitempty"`
}
