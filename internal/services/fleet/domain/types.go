// Package domain defines the departure engine's result and event types
package domain

import "time"

// Trip is one completed departure with the upstream-reported economics
type Trip struct {
	VesselID    int64   `json:"vessel_id"`
	VesselName  string  `json:"vessel_name"`
	Destination string  `json:"destination"`
	RouteName   string  `json:"route_name"`
	Income      float64 `json:"income"`
	HarborFee   float64 `json:"harbor_fee"`
	FuelUsed    float64 `json:"fuel_used"`
	CO2Used     float64 `json:"co2_used"`
	CargoLoaded float64 `json:"cargo_loaded"`
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Speed       float64 `json:"speed"`
	Guards      bool    `json:"guards"`

	TeuDry          float64 `json:"teu_dry"`
	TeuRefrigerated float64 `json:"teu_refrigerated"`
	FuelCargo       float64 `json:"fuel_cargo"`
	CrudeCargo      float64 `json:"crude_cargo"`

	HighFee    bool      `json:"high_fee"`
	DepartedAt time.Time `json:"departed_at"`
}

// FailedVessel is a vessel that did not depart, with a reason an operator
// can act on
type FailedVessel struct {
	VesselID    int64  `json:"vessel_id"`
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
}

// Planned is a departure the engine would have issued in dry-run mode
type Planned struct {
	VesselID     int64   `json:"vessel_id"`
	Name         string  `json:"name"`
	Destination  string  `json:"destination"`
	CargoToLoad  float64 `json:"cargo_to_load"`
	RequiredFuel float64 `json:"required_fuel"`
	Speed        float64 `json:"speed"`
}

// Run-level abort reasons
const (
	ReasonInProgress       = "in_progress"
	ReasonInsufficientFuel = "insufficient_fuel"
)

// DepartureResult is the outcome of one engine invocation. Immutable once
// returned
type DepartureResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`

	Departed []Trip         `json:"departed_vessels"`
	Failed   []FailedVessel `json:"failed_vessels"`
	Warnings []FailedVessel `json:"warning_vessels"`
	HighFee  []string       `json:"high_fee_vessels"`
	Planned  []Planned      `json:"planned_vessels,omitempty"`

	TotalRevenue       float64  `json:"total_revenue"`
	TotalFuelUsed      float64  `json:"total_fuel_used"`
	TotalCO2Used       float64  `json:"total_co2_used"`
	TotalHarborFees    float64  `json:"total_harbor_fees"`
	ContributionGained *float64 `json:"contribution_gained,omitempty"`
}

// PartialStats is what a mid-run rebuy pass gets to work with
type PartialStats struct {
	FuelUsed float64 `json:"fuel_used"`
	CO2Used  float64 `json:"co2_used"`
}

// BatchEvent is the incremental notification flushed every chunk
type BatchEvent struct {
	Departed []Trip         `json:"departed"`
	Failed   []FailedVessel `json:"failed"`
	Fuel     float64        `json:"fuel"`
	CO2      float64        `json:"co2"`
	Cash     float64        `json:"cash"`
}

// VoyageSummary is one day of aggregated trip history
type VoyageSummary struct {
	Day       time.Time `json:"day"`
	Trips     uint64    `json:"trips"`
	Revenue   float64   `json:"revenue"`
	HarborFee float64   `json:"harbor_fee"`
	FuelUsed  float64   `json:"fuel_used"`
}
