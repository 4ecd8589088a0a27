package usecase

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Fuzzy token pairing thresholds
const (
	substringTokenScore = 0.85 // one token contained in the other
	fuzzyAcceptFloor    = 0.70 // minimum score to accept a fuzzy token pair
	containmentFloor    = 0.70 // minimum substring containment score
)

// StringSimilarity computes a multi-strategy similarity score in [0,1] between
// two raw strings. It takes the maximum of three independent estimates so a
// confident match by one method is never diluted by weaker ones:
//  1. Normalized Levenshtein ratio (good for typos)
//  2. Token overlap with synonym awareness (good for reordering)
//  3. Substring containment (one string is part of the other)
//
// Empty input on either side scores 0.
func StringSimilarity(str1, str2 string) float64 {
	if str1 == "" || str2 == "" {
		return 0.0
	}

	s1 := strings.ToLower(strings.TrimSpace(str1))
	s2 := strings.ToLower(strings.TrimSpace(str2))

	if s1 == s2 {
		return 1.0
	}

	levScore := levenshteinRatio(s1, s2)
	tokenScore := TokenOverlap(Tokenize(s1), Tokenize(s2))

	substringScore := 0.0
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		shorter := len(s1)
		longer := len(s2)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		substringScore = float64(shorter) / float64(longer)
		if substringScore < containmentFloor {
			substringScore = containmentFloor
		}
	}

	return max3(levScore, tokenScore, substringScore)
}

// TokenOverlap scores two token sets with a Jaccard-like metric weighted for
// partial matches. Exact canonical matches count 1.0 each; remaining tokens
// are greedily paired with their best fuzzy partner (substring containment or
// edit-distance ratio, accepted at >= 0.70, no reuse of a matched partner).
// The pairing is greedy rather than optimal bipartite assignment; iteration
// order is sorted so ties resolve the same way on every call.
func TokenOverlap(tokens1, tokens2 map[string]bool) float64 {
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	exact := 0
	union := make(map[string]bool, len(tokens1)+len(tokens2))
	for t := range tokens1 {
		union[t] = true
		if tokens2[t] {
			exact++
		}
	}
	for t := range tokens2 {
		union[t] = true
	}

	var remaining1, remaining2 []string
	for _, t := range sortedTokens(tokens1) {
		if !tokens2[t] {
			remaining1 = append(remaining1, t)
		}
	}
	for _, t := range sortedTokens(tokens2) {
		if !tokens1[t] {
			remaining2 = append(remaining2, t)
		}
	}

	fuzzyMatched := 0.0
	used := make(map[string]bool)

	for _, t1 := range remaining1 {
		bestScore := 0.0
		bestMatch := ""
		for _, t2 := range remaining2 {
			if used[t2] {
				continue
			}
			var score float64
			if strings.Contains(t1, t2) || strings.Contains(t2, t1) {
				score = substringTokenScore
			} else {
				score = levenshteinRatio(t1, t2)
			}
			if score >= fuzzyAcceptFloor && score > bestScore {
				bestScore = score
				bestMatch = t2
			}
		}
		if bestMatch != "" {
			fuzzyMatched += bestScore
			used[bestMatch] = true
		}
	}

	total := float64(exact) + fuzzyMatched
	score := total / float64(len(union))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// levenshteinRatio returns normalized edit-distance similarity in [0,1].
func levenshteinRatio(s1, s2 string) float64 {
	sim, err := edlib.StringsSimilarity(s1, s2, edlib.Levenshtein)
	if err != nil {
		return 0.0
	}
	return float64(sim)
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
