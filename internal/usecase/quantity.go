package usecase

import (
	"math"
	"strings"
)

// Quantity fulfillment labels surfaced in match results.
const (
	QuantityUnknown           = "unknown"
	QuantityIncompatibleUnits = "incompatible_units"
	QuantityFullFulfillment   = "full_fulfillment"
	QuantityNearFull          = "near_full"
	QuantityPartial           = "partial"
	QuantityLowPartial        = "low_partial"
	QuantityVeryLow           = "very_low"
)

var massUnits = map[string]bool{
	"kg": true, "g": true, "tonne": true, "ton": true, "mg": true,
	"kilogram": true, "gram": true, "milligram": true, "metric ton": true,
}

var volumeUnits = map[string]bool{
	"l": true, "ml": true, "litre": true, "liter": true,
	"milliliter": true, "millilitre": true,
}

// canonicalUnit lowercases, trims and strips a trailing plural "s".
func canonicalUnit(unit string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), "s")
}

// normalizeQuantity converts a quantity to its base unit: kilograms for mass,
// liters for volume. Unknown units pass through unchanged.
func normalizeQuantity(qty float64, unit string) float64 {
	switch canonicalUnit(unit) {
	case "kg", "kilogram":
		return qty
	case "g", "gram":
		return qty / 1000.0
	case "tonne", "ton", "metric ton":
		return qty * 1000.0
	case "mg", "milligram":
		return qty / 1000000.0
	case "l", "litre", "liter":
		return qty
	case "ml", "milliliter", "millilitre":
		return qty / 1000.0
	default:
		return qty
	}
}

// unitsComparable reports whether two units normalize into the same family
// (mass-mass, volume-volume, or identical literal unit).
func unitsComparable(unit1, unit2 string) bool {
	if unit1 == "" || unit2 == "" {
		return false
	}

	u1 := canonicalUnit(unit1)
	u2 := canonicalUnit(unit2)

	if u1 == u2 {
		return true
	}
	if massUnits[u1] && massUnits[u2] {
		return true
	}
	if volumeUnits[u1] && volumeUnits[u2] {
		return true
	}
	return false
}

// QuantityScore rates how much of the requested quantity a candidate can
// fulfill. Missing quantities or incomparable units score a neutral 0.5; else
// the fulfillment ratio maps onto fixed bands. The returned percentage is
// rounded and capped at 100, nil when no ratio could be computed.
func QuantityScore(supplyQty *float64, supplyUnit string, demandQty *float64, demandUnit string) (float64, string, *float64) {
	if supplyQty == nil || demandQty == nil || *demandQty <= 0 {
		return 0.5, QuantityUnknown, nil
	}

	if !unitsComparable(supplyUnit, demandUnit) {
		return 0.5, QuantityIncompatibleUnits, nil
	}

	supplyNorm := normalizeQuantity(*supplyQty, supplyUnit)
	demandNorm := normalizeQuantity(*demandQty, demandUnit)
	if demandNorm <= 0 {
		return 0.5, QuantityUnknown, nil
	}

	fulfillment := supplyNorm / demandNorm
	pct := math.Round(math.Min(fulfillment*100, 100))

	switch {
	case fulfillment >= 1.0:
		return 1.0, QuantityFullFulfillment, &pct
	case fulfillment >= 0.8:
		return 0.9, QuantityNearFull, &pct
	case fulfillment >= 0.5:
		return 0.75, QuantityPartial, &pct
	case fulfillment >= 0.25:
		return 0.5, QuantityLowPartial, &pct
	default:
		return 0.3, QuantityVeryLow, &pct
	}
}
