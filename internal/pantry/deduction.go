package pantry

import (
	"fmt"
	"math"
	"strings"

	"larder/internal/models"
	"larder/internal/units"
)

// DeductionCandidate is a proposed deduction for one recipe ingredient,
// awaiting user confirmation before any inventory mutation.
type DeductionCandidate struct {
	IngredientName string  `json:"ingredient_name"`
	QuantityNeeded float64 `json:"quantity_needed"`
	Unit           string  `json:"unit"`
	BestMatchID    *uint   `json:"best_match_id"`
	SuggestedQty   float64 `json:"suggested_qty"`
	Note           string  `json:"note,omitempty"`
}

// DeductionRequest is one confirmed deduction entry.
type DeductionRequest struct {
	GroceryID uint    `json:"grocery_id"`
	DeductQty float64 `json:"deduct_qty"`
}

// DeductionResult aggregates what ApplyDeductions changed.
type DeductionResult struct {
	UpdatedCount int `json:"updated_count"`
	DeletedCount int `json:"deleted_count"`
}

// Planner builds deduction candidates for a recipe and commits confirmed
// deductions against the store.
type Planner struct {
	store Store
}

// NewPlanner creates a deduction planner backed by the given store.
func NewPlanner(store Store) *Planner {
	return &Planner{store: store}
}

// BuildCandidates proposes a deduction for every recipe ingredient, in input
// order. When the matched inventory item keeps a different unit, the needed
// quantity is converted into the item's unit (with the ingredient name as
// conversion hint) and rounded to two decimals; an unconvertible pair falls
// back to the ingredient's own quantity with no note.
func (p *Planner) BuildCandidates(ingredients []models.RecipeIngredient, inventory []models.Grocery) []DeductionCandidate {
	candidates := make([]DeductionCandidate, 0, len(ingredients))

	for _, ing := range ingredients {
		candidate := DeductionCandidate{
			IngredientName: ing.Name,
			QuantityNeeded: ing.Quantity,
			Unit:           ing.Unit,
			SuggestedQty:   ing.Quantity,
		}

		if match := FindBestMatch(ing.Name, inventory); match != nil {
			id := match.ID
			candidate.BestMatchID = &id

			if ing.Unit != "" && match.Unit != "" && !strings.EqualFold(ing.Unit, match.Unit) {
				if converted, ok := units.Convert(ing.Quantity, ing.Unit, match.Unit, ing.Name); ok {
					candidate.SuggestedQty = round2(converted)
					candidate.Note = fmt.Sprintf("converted from %g %s", ing.Quantity, ing.Unit)
				}
			}
		}

		candidates = append(candidates, candidate)
	}

	return candidates
}

// ApplyDeductions commits confirmed deductions. Entries with a non-positive
// amount or an id that does not resolve to one of the user's items are
// skipped; each entry is processed independently. An item whose quantity is
// fully consumed is deleted rather than kept at zero.
//
// The read-modify-write here carries no optimistic-concurrency token:
// two concurrent deductions against the same item race and the last write
// wins.
func (p *Planner) ApplyDeductions(userID uint, deductions []DeductionRequest) (DeductionResult, error) {
	var result DeductionResult

	for _, d := range deductions {
		if d.GroceryID == 0 || d.DeductQty <= 0 {
			continue
		}

		item, err := p.store.InventoryItem(userID, d.GroceryID)
		if err != nil || item == nil {
			continue
		}

		if item.Quantity <= d.DeductQty {
			if err := p.store.DeleteItem(item); err != nil {
				continue
			}
			result.DeletedCount++
		} else {
			item.Quantity -= d.DeductQty
			if err := p.store.UpdateItem(item); err != nil {
				continue
			}
			result.UpdatedCount++
		}
	}

	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
