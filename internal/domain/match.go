package domain

// ScoreBreakdown exposes the four sub-scores behind a match score so the
// frontend can explain why a candidate ranked where it did. Each component is
// in [0,1]. Purely descriptive; never fed back into computation.
type ScoreBreakdown struct {
	Similarity float64 `json:"similarity"`
	Distance   float64 `json:"distance"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
}

// MatchLabels carries human-readable context for the price and quantity
// sub-scores, e.g. "within_budget" or "near_full".
type MatchLabels struct {
	Price          string   `json:"price"`
	Quantity       string   `json:"quantity"`
	FulfillmentPct *float64 `json:"fulfillment_pct,omitempty"`
}

// MatchResult is one scored candidate. Ephemeral, produced per request.
type MatchResult struct {
	ID              int64          `json:"id"`
	OrgID           int64          `json:"org_id"`
	OrgName         string         `json:"org_name"`
	ItemName        string         `json:"item_name"`
	ItemCategory    string         `json:"item_category,omitempty"`
	ItemDescription string         `json:"item_description,omitempty"`
	Price           *float64       `json:"price,omitempty"`
	Currency        string         `json:"currency,omitempty"`
	Quantity        *float64       `json:"quantity,omitempty"`
	QuantityUnit    string         `json:"quantity_unit,omitempty"`
	DistanceKm      float64        `json:"distance_km"`
	NameSimilarity  float64        `json:"name_similarity"`
	MatchScore      float64        `json:"match_score"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown"`
	MatchLabels     MatchLabels    `json:"match_labels"`
	CategoryMatched bool           `json:"category_matched"`
	OrgEmail        string         `json:"org_email,omitempty"`
	OrgPhone        string         `json:"org_phone,omitempty"`
	OrgAddress      string         `json:"org_address,omitempty"`
	OrgLatitude     float64        `json:"org_latitude"`
	OrgLongitude    float64        `json:"org_longitude"`
}
