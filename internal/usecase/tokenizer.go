package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// Package-level compiled regex pattern for performance
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// stopWords are common English function words plus marketplace filler terms
// that carry no signal for matching ("bulk", "quality", "looking", ...).
var stopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "shall": true, "can": true, "it": true,
	"its": true, "this": true, "that": true, "these": true, "those": true,
	"i": true, "we": true, "you": true, "he": true, "she": true,
	"they": true, "me": true, "us": true, "him": true, "her": true,
	"them": true, "my": true, "our": true, "your": true, "his": true,
	"their": true, "per": true, "each": true, "every": true, "some": true,
	"any": true, "no": true, "not": true, "all": true, "both": true,
	"few": true, "more": true, "most": true, "other": true, "such": true,
	"only": true, "same": true, "so": true, "than": true, "too": true,
	"very": true, "just": true, "also": true, "about": true, "up": true,
	"out": true, "if": true, "then": true, "else": true, "when": true,
	"where": true, "how": true, "what": true, "which": true, "who": true,
	"whom": true, "why": true, "as": true, "into": true,

	// Marketplace filler terms
	"need": true, "needed": true, "needs": true, "want": true, "wanted": true,
	"require": true, "required": true, "looking": true, "seeking": true,
	"available": true, "supply": true, "demand": true, "item": true,
	"items": true, "product": true, "products": true, "material": true,
	"materials": true, "high": true, "quality": true, "good": true,
	"best": true, "new": true, "used": true, "fresh": true, "bulk": true,
	"wholesale": true,
}

// synonymClusters groups trade terms that should collapse to one canonical
// token (the first entry of each cluster) before comparison.
var synonymClusters = [][]string{
	{"rice", "basmati", "paddy", "grain rice"},
	{"wheat", "flour", "atta", "maida"},
	{"steel", "iron", "metal", "alloy"},
	{"wood", "timber", "lumber", "plywood"},
	{"cement", "concrete", "mortar"},
	{"pipe", "pipes", "piping", "tube", "tubes", "tubing"},
	{"generator", "generators", "genset", "power generator"},
	{"solar", "photovoltaic", "pv", "solar panel", "solar panels"},
	{"battery", "batteries", "cell", "cells", "accumulator"},
	{"medical", "healthcare", "pharma", "pharmaceutical"},
	{"mask", "masks", "face mask", "n95", "surgical mask"},
	{"gloves", "glove", "hand gloves", "latex gloves", "nitrile gloves"},
	{"sanitizer", "sanitiser", "hand sanitizer", "disinfectant"},
	{"tablet", "tablets", "pills", "capsules", "medicine"},
	{"cotton", "fabric", "textile", "cloth"},
	{"oil", "cooking oil", "vegetable oil", "edible oil"},
	{"sugar", "jaggery", "sweetener"},
	{"pulses", "dal", "lentils", "beans", "legumes"},
	{"fertilizer", "fertiliser", "manure", "compost"},
	{"pesticide", "insecticide", "herbicide"},
	{"pump", "pumps", "motor pump", "water pump"},
	{"wire", "wires", "cable", "cables", "wiring"},
	{"brick", "bricks", "block", "blocks", "cinder block"},
	{"plastic", "polythene", "polymer", "pvc"},
	{"paper", "cardboard", "packaging"},
	{"tarpaulin", "tarp", "tarps", "tent", "tents", "shelter"},
	{"blanket", "blankets", "bedding", "quilt"},
	{"water", "drinking water", "purified water", "clean water"},
	{"food", "rations", "food packets", "mre"},
	{"kit", "kits", "set", "sets", "package", "packages"},
}

// synonymMap maps every cluster member to its canonical form. Built once at
// init; read-only afterwards.
var synonymMap = buildSynonymMap()

func buildSynonymMap() map[string]string {
	m := make(map[string]string)
	for _, cluster := range synonymClusters {
		canonical := cluster[0]
		for _, word := range cluster {
			m[strings.ToLower(word)] = canonical
		}
	}
	return m
}

// Tokenize normalizes text into a set of meaningful tokens: lowercased,
// punctuation stripped, stop words and single-character tokens dropped,
// synonyms collapsed to their canonical form.
func Tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	if text == "" {
		return tokens
	}

	cleaned := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(text), " ")

	for _, word := range strings.Fields(cleaned) {
		if len(word) < 2 {
			continue
		}
		if stopWords[word] {
			continue
		}
		if canonical, ok := synonymMap[word]; ok {
			word = canonical
		}
		tokens[word] = true
	}

	return tokens
}

// sortedTokens returns set members sorted ascending. Greedy fuzzy pairing
// iterates in this order so ties resolve deterministically.
func sortedTokens(set map[string]bool) []string {
	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}
