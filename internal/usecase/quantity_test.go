package usecase

import "testing"

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		qty      float64
		unit     string
		expected float64
	}{
		{500, "kg", 500},
		{500, "kilograms", 500},
		{2000, "g", 2},
		{1.5, "tonnes", 1500},
		{500000, "mg", 0.5},
		{10, "litres", 10},
		{2500, "ml", 2.5},
		{12, "pieces", 12}, // unknown unit passes through
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got := normalizeQuantity(tt.qty, tt.unit)
			if got != tt.expected {
				t.Errorf("normalizeQuantity(%v, %q) = %v, want %v", tt.qty, tt.unit, got, tt.expected)
			}
		})
	}
}

func TestUnitsComparable(t *testing.T) {
	tests := []struct {
		u1, u2   string
		expected bool
	}{
		{"kg", "tonnes", true},
		{"g", "KG", true},
		{"l", "ml", true},
		{"kg", "l", false},
		{"pieces", "piece", true},
		{"pieces", "boxes", false},
		{"", "kg", false},
		{"kg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.u1+"/"+tt.u2, func(t *testing.T) {
			if got := unitsComparable(tt.u1, tt.u2); got != tt.expected {
				t.Errorf("unitsComparable(%q, %q) = %v, want %v", tt.u1, tt.u2, got, tt.expected)
			}
		})
	}
}

func TestQuantityScore(t *testing.T) {
	t.Run("missing quantities score neutral", func(t *testing.T) {
		score, label, pct := QuantityScore(nil, "kg", floatPtr(100), "kg")
		if score != 0.5 || label != QuantityUnknown || pct != nil {
			t.Errorf("got (%v, %s, %v), want (0.5, %s, nil)", score, label, pct, QuantityUnknown)
		}
	})

	t.Run("incompatible units score neutral with label", func(t *testing.T) {
		score, label, pct := QuantityScore(floatPtr(100), "kg", floatPtr(100), "l")
		if score != 0.5 || label != QuantityIncompatibleUnits || pct != nil {
			t.Errorf("got (%v, %s, %v), want (0.5, %s, nil)", score, label, pct, QuantityIncompatibleUnits)
		}
	})

	t.Run("full fulfillment at exactly the requested amount", func(t *testing.T) {
		score, label, pct := QuantityScore(floatPtr(100), "kg", floatPtr(100), "kg")
		if score != 1.0 || label != QuantityFullFulfillment {
			t.Errorf("got (%v, %s), want (1.0, %s)", score, label, QuantityFullFulfillment)
		}
		if pct == nil || *pct != 100 {
			t.Errorf("pct = %v, want 100", pct)
		}
	})

	t.Run("oversupply caps percentage at 100", func(t *testing.T) {
		score, _, pct := QuantityScore(floatPtr(2), "tonnes", floatPtr(500), "kg")
		if score != 1.0 {
			t.Errorf("score = %v, want 1.0", score)
		}
		if pct == nil || *pct != 100 {
			t.Errorf("pct = %v, want capped at 100", pct)
		}
	})

	t.Run("near full band", func(t *testing.T) {
		score, label, pct := QuantityScore(floatPtr(450), "kg", floatPtr(500), "kg")
		if score != 0.9 || label != QuantityNearFull {
			t.Errorf("got (%v, %s), want (0.9, %s)", score, label, QuantityNearFull)
		}
		if pct == nil || *pct != 90 {
			t.Errorf("pct = %v, want 90", pct)
		}
	})

	t.Run("partial band with cross-unit normalization", func(t *testing.T) {
		// 300000 g = 300 kg against 500 kg requested: 60%.
		score, label, pct := QuantityScore(floatPtr(300000), "g", floatPtr(500), "kg")
		if score != 0.75 || label != QuantityPartial {
			t.Errorf("got (%v, %s), want (0.75, %s)", score, label, QuantityPartial)
		}
		if pct == nil || *pct != 60 {
			t.Errorf("pct = %v, want 60", pct)
		}
	})

	t.Run("low partial band", func(t *testing.T) {
		score, label, _ := QuantityScore(floatPtr(150), "kg", floatPtr(500), "kg")
		if score != 0.5 || label != QuantityLowPartial {
			t.Errorf("got (%v, %s), want (0.5, %s)", score, label, QuantityLowPartial)
		}
	})

	t.Run("very low band", func(t *testing.T) {
		score, label, _ := QuantityScore(floatPtr(50), "kg", floatPtr(500), "kg")
		if score != 0.3 || label != QuantityVeryLow {
			t.Errorf("got (%v, %s), want (0.3, %s)", score, label, QuantityVeryLow)
		}
	})

	t.Run("zero requested quantity scores neutral", func(t *testing.T) {
		score, label, _ := QuantityScore(floatPtr(100), "kg", floatPtr(0), "kg")
		if score != 0.5 || label != QuantityUnknown {
			t.Errorf("got (%v, %s), want (0.5, %s)", score, label, QuantityUnknown)
		}
	})
}
