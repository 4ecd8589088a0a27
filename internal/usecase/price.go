package usecase

// Price compatibility labels surfaced in match results.
const (
	PriceBudgetUnknown  = "budget_unknown"
	PriceNegotiable     = "price_negotiable"
	PriceVeryAffordable = "very_affordable"
	PriceUnderBudget    = "under_budget"
	PriceWithinBudget   = "within_budget"
	PriceSlightlyOver   = "slightly_over"
	PriceOverBudget     = "over_budget"
	PriceExpensive      = "expensive"
)

// PriceScore rates how well a supply price fits a demand-side budget,
// returning a score in [0,1] plus a label. The curve is deliberately
// forgiving: unknown prices score neutral-high rather than zero, and even
// far-over-budget candidates stay visible at 0.15 instead of disappearing.
func PriceScore(supplyPrice, demandMaxPrice *float64, tolerance float64) (float64, string) {
	if demandMaxPrice == nil || *demandMaxPrice <= 0 {
		// Unconstrained buyer, assume flexible.
		return 0.8, PriceBudgetUnknown
	}
	if supplyPrice == nil || *supplyPrice <= 0 {
		// Price not listed, assume negotiable.
		return 0.7, PriceNegotiable
	}

	price := *supplyPrice
	maxPrice := *demandMaxPrice

	if price <= maxPrice {
		savingsRatio := 1.0 - price/maxPrice
		switch {
		case savingsRatio > 0.5:
			// Suspiciously cheap, dock a little.
			return 0.95, PriceVeryAffordable
		case savingsRatio > 0.2:
			return 1.0, PriceUnderBudget
		default:
			return 1.0, PriceWithinBudget
		}
	}

	overageRatio := (price - maxPrice) / maxPrice
	switch {
	case overageRatio <= tolerance:
		// Within tolerance: linear decay from 1.0 to 0.6.
		return 1.0 - 0.4*(overageRatio/tolerance), PriceSlightlyOver
	case overageRatio <= tolerance*2:
		// Within 2x tolerance: linear decay from 0.6 to 0.3.
		excess := overageRatio - tolerance
		return 0.6 - 0.3*(excess/tolerance), PriceOverBudget
	default:
		return 0.15, PriceExpensive
	}
}
