package usecase

import "testing"

func TestStringSimilarity(t *testing.T) {
	t.Run("empty input scores zero", func(t *testing.T) {
		if got := StringSimilarity("", "rice"); got != 0.0 {
			t.Errorf("StringSimilarity(\"\", rice) = %v, want 0", got)
		}
		if got := StringSimilarity("rice", ""); got != 0.0 {
			t.Errorf("StringSimilarity(rice, \"\") = %v, want 0", got)
		}
	})

	t.Run("identical strings score one", func(t *testing.T) {
		inputs := []string{"rice", "Basmati Rice 500kg", "solar panel, 250W"}
		for _, s := range inputs {
			if got := StringSimilarity(s, s); got != 1.0 {
				t.Errorf("StringSimilarity(%q, %q) = %v, want 1.0", s, s, got)
			}
		}
	})

	t.Run("case and whitespace insensitive equality", func(t *testing.T) {
		if got := StringSimilarity("Basmati Rice", "  basmati rice "); got != 1.0 {
			t.Errorf("score = %v, want 1.0", got)
		}
	})

	t.Run("synonyms raise the score", func(t *testing.T) {
		score := StringSimilarity("basmati premium", "rice premium")
		if score < 0.9 {
			t.Errorf("score = %v, want >= 0.9 (basmati and rice are synonyms)", score)
		}
	})

	t.Run("substring containment floors at 0.7", func(t *testing.T) {
		score := StringSimilarity("generator", "generator with spare fuel tank included")
		if score < 0.7 {
			t.Errorf("score = %v, want >= 0.7", score)
		}
	})

	t.Run("unrelated strings score low", func(t *testing.T) {
		score := StringSimilarity("surgical masks", "timber planks")
		if score > 0.4 {
			t.Errorf("score = %v, want <= 0.4", score)
		}
	})

	t.Run("typos still match via edit distance", func(t *testing.T) {
		score := StringSimilarity("fertilizer", "fertilzer")
		if score < 0.8 {
			t.Errorf("score = %v, want >= 0.8", score)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a, b := "steel pipes 3 inch", "iron tubing three inch"
		if StringSimilarity(a, b) != StringSimilarity(b, a) {
			t.Errorf("similarity not symmetric for %q / %q", a, b)
		}
	})
}

func TestTokenOverlap(t *testing.T) {
	t.Run("empty set scores zero", func(t *testing.T) {
		if got := TokenOverlap(Tokenize(""), Tokenize("rice")); got != 0.0 {
			t.Errorf("overlap = %v, want 0", got)
		}
	})

	t.Run("identical sets score one", func(t *testing.T) {
		a := Tokenize("cement bricks sand")
		b := Tokenize("sand bricks cement")
		if got := TokenOverlap(a, b); got != 1.0 {
			t.Errorf("overlap = %v, want 1.0", got)
		}
	})

	t.Run("partial overlap is proportional", func(t *testing.T) {
		a := Tokenize("cement sand")
		b := Tokenize("cement gravel")
		// 1 exact match over union of 3.
		got := TokenOverlap(a, b)
		if got < 0.3 || got > 0.4 {
			t.Errorf("overlap = %v, want ~0.333", got)
		}
	})

	t.Run("fuzzy pairing accepts near tokens without reuse", func(t *testing.T) {
		// No exact matches; both pairs match by substring containment at
		// 0.85 each: (0.85+0.85)/4 = 0.425.
		a := Tokenize("sanitizer bottles")
		b := Tokenize("sanitizers bottle")
		got := TokenOverlap(a, b)
		if got < 0.4 || got > 0.45 {
			t.Errorf("overlap = %v, want ~0.425", got)
		}
	})

	t.Run("never exceeds one", func(t *testing.T) {
		a := Tokenize("pipe pipes piping tube")
		b := Tokenize("tubes tubing pipe")
		if got := TokenOverlap(a, b); got > 1.0 {
			t.Errorf("overlap = %v, want <= 1.0", got)
		}
	})
}
