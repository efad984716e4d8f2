package models

import (
	"strconv"
	"strings"
	"time"
)

// CropSeason is the planting season a crop belongs to.
type CropSeason string

const (
	SeasonWet CropSeason = "Wet"
	SeasonDry CropSeason = "Dry"
)

// Crop is a crop grown by one farmer. Crops are owned exclusively by their
// farmer and are wholesale replaced on profile update, never diffed.
type Crop struct {
	FarmerID int64      `json:"farmer_id"`
	Name     string     `json:"name"`
	Season   CropSeason `json:"season"`
}

// Farmer is a registered beneficiary record. The ID is a 13-digit random
// number assigned at creation. Farmers are never hard-deleted; Active=false
// removes them from rosters while keeping their allocation history intact.
type Farmer struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Name              string    `json:"name"`
	Birthday          *string   `json:"birthday,omitempty"`
	Age               *int      `json:"age,omitempty"`
	Gender            *string   `json:"gender,omitempty"`
	Phone             *string   `json:"phone,omitempty"`
	FarmLocation      string    `json:"farm_location"`
	LandSize          string    `json:"land_size"`
	FarmOwner         bool      `json:"farm_owner"`
	Income            float64   `json:"income"`
	Image             *string   `json:"image,omitempty"`
	FarmOwnershipType *string   `json:"farm_ownership_type,omitempty"`
	FarmerTypes       []string  `json:"farmer_type"`
	Active            bool      `json:"active"`
	Crops             []Crop    `json:"crops"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LandSizeValue extracts the numeric part of the free-text land_size field
// ("2 hectares" -> 2). An unparseable value yields 0, which fails every
// positive land-size predicate instead of erroring.
func (f *Farmer) LandSizeValue() float64 {
	return ParseLeadingNumber(f.LandSize)
}

// HasCrops reports whether the farmer grows at least one crop.
func (f *Farmer) HasCrops() bool {
	return len(f.Crops) > 0
}

// ParseLeadingNumber parses the longest numeric prefix of s as a float,
// returning 0 when s has no numeric prefix. "2.5 hectares" -> 2.5,
// "hectares" -> 0.
func ParseLeadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
