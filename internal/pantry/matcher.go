package pantry

import (
	"strings"

	"larder/internal/models"
)

// FindBestMatch ranks inventory items against an ingredient name and returns
// the best candidate, or nil when nothing matches. Comparison is
// case-insensitive on the raw names. Exact matches are inserted at the front
// of the candidate list and partial matches (either name containing the
// other) are appended, so with several exact matches the last one scanned
// wins. That ordering is long-standing behavior that saved deduction flows
// depend on; keep it.
func FindBestMatch(ingredientName string, inventory []models.Grocery) *models.Grocery {
	target := strings.ToLower(ingredientName)

	var matches []*models.Grocery
	for i := range inventory {
		name := strings.ToLower(inventory[i].Name)
		switch {
		case name == target:
			matches = append([]*models.Grocery{&inventory[i]}, matches...)
		case strings.Contains(name, target) || strings.Contains(target, name):
			matches = append(matches, &inventory[i])
		}
	}

	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
