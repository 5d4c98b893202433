// Package cargo holds the pure vessel/port math the departure engine and
// the pilots share. No I/O, no state; every function is a plain computation
// over upstream snapshots
package cargo

import (
	"sort"

	"shipmate/internal/adapters/upstream/shipping"
)

// Subtypes returns the cargo subtypes a capacity type can carry
func Subtypes(capacityType string) []string {
	switch capacityType {
	case shipping.CapacityTanker:
		return []string{shipping.CargoFuel, shipping.CargoCrudeOil}
	default:
		return []string{shipping.CargoDry, shipping.CargoRefrigerated}
	}
}

// RemainingDemand sums demand minus consumed over the subtypes valid for the
// capacity type. A negative result means the port is fully consumed
func RemainingDemand(p shipping.Port, capacityType string) float64 {
	var total float64
	for _, sub := range Subtypes(capacityType) {
		total += p.Demand[sub] - p.Consumed[sub]
	}
	return total
}

// TotalCapacity is the vessel's summed maximum over its relevant subtypes
func TotalCapacity(v shipping.Vessel) float64 {
	switch v.CapacityType {
	case shipping.CapacityTanker:
		return v.CapacityMax.Fuel + v.CapacityMax.CrudeOil
	default:
		return v.CapacityMax.Dry + v.CapacityMax.Refrigerated
	}
}

// NextDestination resolves where the vessel sails next. Round-trip vessels
// sitting in their configured destination flip back to the origin. Returns
// "" when the vessel has no route destination at all
func NextDestination(v shipping.Vessel) string {
	if v.RouteDestination == "" {
		return ""
	}
	if v.CurrentPort != "" && v.CurrentPort == v.RouteDestination {
		return v.RouteOrigin
	}
	return v.RouteDestination
}

// CargoToLoad is the amount actually loadable against remaining demand
func CargoToLoad(remainingDemand, capacity float64) float64 {
	if remainingDemand < capacity {
		return remainingDemand
	}
	return capacity
}

// Utilization is cargoToLoad over capacity, zero for a zero-capacity vessel
func Utilization(cargoToLoad, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return cargoToLoad / capacity
}

// AllPricesZero reports whether every relevant cargo subtype has a zero
// unit sale price. Departing such a route can only lose money
func AllPricesZero(prices map[string]float64, capacityType string) bool {
	for _, sub := range Subtypes(capacityType) {
		if prices[sub] > 0 {
			return false
		}
	}
	return true
}

// ResolveSpeed picks the sailing speed: the route's configured speed when
// present, otherwise the vessel's max speed scaled by the operator's speed
// percentage, never below 1 knot
func ResolveSpeed(v shipping.Vessel, speedPct float64) float64 {
	if v.RouteSpeed > 0 {
		return v.RouteSpeed
	}
	s := v.MaxSpeed
	if speedPct > 0 && speedPct < 100 {
		s = v.MaxSpeed * speedPct / 100
	}
	if s < 1 {
		s = 1
	}
	return s
}

// RequiredFuel returns the fuel (tonnes) a departure needs. Route metadata
// wins when the game supplies it; otherwise the burn is derived from the
// hull's hourly consumption at the resolved speed over the route distance.
// Hourly burn scales with the cube of the speed ratio, so sailing slower
// than max speed saves fuel superlinearly
func RequiredFuel(v shipping.Vessel, speedPct float64) float64 {
	if v.RouteFuelReq != nil {
		return *v.RouteFuelReq
	}
	speed := ResolveSpeed(v, speedPct)
	if v.RouteDistance <= 0 || speed <= 0 {
		return 0
	}
	hours := v.RouteDistance / speed

	// baseline tonnes/hour at max speed grows with hull size
	base := 0.8 + TotalCapacity(v)/12000

	ratio := 1.0
	if v.MaxSpeed > 0 {
		ratio = speed / v.MaxSpeed
	}
	return hours * base * ratio * ratio * ratio
}

// SortByCapacityDesc orders vessels largest-first so big hulls claim
// limited demand before small ones. Stable so equal-capacity vessels keep
// their upstream order
func SortByCapacityDesc(vessels []shipping.Vessel) {
	sort.SliceStable(vessels, func(i, j int) bool {
		return TotalCapacity(vessels[i]) > TotalCapacity(vessels[j])
	})
}
