package usecase

import (
	"math"

	"github.com/tradelink/backend/internal/domain"
)

// Aggregation weights are fixed domain constants. Similarity is king, followed
// by price and distance, then quantity. They must sum to 1.0.
const (
	weightSimilarity = 0.40
	weightPrice      = 0.25
	weightDistance   = 0.20
	weightQuantity   = 0.15
)

// distanceDecayFactor shapes the exponential distance curve: nearby candidates
// score near 1, candidates at the radius edge land around exp(-2) ~ 0.135.
const distanceDecayFactor = 2.0

// ScoreInput carries the four signals the aggregator combines.
type ScoreInput struct {
	DistanceKm     float64
	MaxDistanceKm  float64
	Similarity     float64
	SupplyPrice    *float64
	DemandMaxPrice *float64
	SupplyQty      *float64
	SupplyUnit     string
	DemandQty      *float64
	DemandUnit     string
	PriceTolerance float64
}

// ScoreDetail is the aggregate score plus its labeled breakdown.
type ScoreDetail struct {
	MatchScore float64
	Breakdown  domain.ScoreBreakdown
	Labels     domain.MatchLabels
}

// CalculateMatchScore combines distance, similarity, price and quantity into
// one weighted score in [0,1] with a per-signal breakdown for explainability.
// Deterministic and side-effect free.
func CalculateMatchScore(in ScoreInput) ScoreDetail {
	// Distance: smooth exponential decay instead of a hard cliff at the
	// radius boundary.
	distScore := 0.0
	if in.MaxDistanceKm > 0 {
		ratio := in.DistanceKm / in.MaxDistanceKm
		distScore = clamp01(math.Exp(-distanceDecayFactor * ratio))
	}

	simScore := clamp01(in.Similarity)

	priceScore, priceLabel := PriceScore(in.SupplyPrice, in.DemandMaxPrice, in.PriceTolerance)

	qtyScore, qtyLabel, fulfillmentPct := QuantityScore(in.SupplyQty, in.SupplyUnit, in.DemandQty, in.DemandUnit)

	overall := clamp01(
		simScore*weightSimilarity +
			priceScore*weightPrice +
			distScore*weightDistance +
			qtyScore*weightQuantity,
	)

	return ScoreDetail{
		MatchScore: round3(overall),
		Breakdown: domain.ScoreBreakdown{
			Similarity: round3(simScore),
			Distance:   round3(distScore),
			Price:      round3(priceScore),
			Quantity:   round3(qtyScore),
		},
		Labels: domain.MatchLabels{
			Price:          priceLabel,
			Quantity:       qtyLabel,
			FulfillmentPct: fulfillmentPct,
		},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
