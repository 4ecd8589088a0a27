package usecase

import "strings"

// CategoryMatch reports whether two item categories agree. Used identically in
// both match directions:
//  1. ID equality when both ids are present
//  2. Case-insensitive exact name match
//  3. Substring containment either way (e.g. "Grains" in "Grains & Flour")
func CategoryMatch(idA, idB *int64, nameA, nameB string) bool {
	if idA != nil && idB != nil && *idA == *idB {
		return true
	}

	a := strings.ToLower(strings.TrimSpace(nameA))
	b := strings.ToLower(strings.TrimSpace(nameB))

	if a == "" || b == "" {
		return false
	}

	if a == b {
		return true
	}

	return strings.Contains(a, b) || strings.Contains(b, a)
}
