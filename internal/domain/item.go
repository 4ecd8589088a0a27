package domain

// Item is one supply or demand posting. The engine treats both sides the same
// way; PricePerUnit means "asking price" on the supply side and "maximum
// acceptable price" on the demand side. Optional fields are pointers so that
// "not provided" stays distinguishable from zero.
type Item struct {
	ID           int64    `json:"id"`
	OrgID        int64    `json:"org_id"`
	Name         string   `json:"item_name"`
	Description  string   `json:"item_description,omitempty"`
	CategoryID   *int64   `json:"category_id,omitempty"`
	CategoryName string   `json:"item_category,omitempty"`
	PricePerUnit *float64 `json:"price_per_unit,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	QuantityUnit string   `json:"quantity_unit,omitempty"`
}

// Organization owns items; only its coordinates feed into scoring, the rest is
// echoed back in results for contact display.
type Organization struct {
	ID        int64   `json:"org_id"`
	Name      string  `json:"org_name"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone_number,omitempty"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Candidate pairs one counterpart item with its owning organization.
type Candidate struct {
	Item Item
	Org  Organization
}

// RichText combines name, description and category into the text the
// similarity scorers compare.
func (i Item) RichText() string {
	text := i.Name
	if i.Description != "" {
		text += " " + i.Description
	}
	if i.CategoryName != "" {
		text += " " + i.CategoryName
	}
	return text
}
