package pantry

import (
	"strings"
	"time"

	"larder/internal/models"
	"larder/internal/units"
)

// ScannedItem is one reviewed line item from a scanned grocery bill.
type ScannedItem struct {
	Name     string
	Quantity float64
	Unit     string
	Expiry   time.Time
	MfgDate  *time.Time
	Category string
}

// MergeOutcome describes what happened to a single scanned item.
type MergeOutcome string

const (
	OutcomeMerged  MergeOutcome = "merged"
	OutcomeCreated MergeOutcome = "created"
)

// MergeResult reports the handling of one scanned item.
type MergeResult struct {
	Outcome MergeOutcome   `json:"outcome"`
	Item    models.Grocery `json:"item"`
}

// SaveResult aggregates a whole bill save.
type SaveResult struct {
	Processed int `json:"processed"`
	Merged    int `json:"merged"`
	Created   int `json:"created"`
}

// Resolver decides whether scanned bill items fold into existing inventory
// records or become new ones.
type Resolver struct {
	store Store
}

// NewResolver creates a bill merge resolver backed by the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// MergeOrCreate folds a scanned item into the first existing inventory item
// with the same name (exact, case-insensitive). Matching units add directly;
// differing units add after conversion into the existing item's unit, with
// the item name as conversion hint. When no item matches, or the units
// cannot be reconciled, a new record is created instead.
//
// Like deductions, the merge path is a plain read-modify-write; concurrent
// saves against the same item are last-write-wins.
func (r *Resolver) MergeOrCreate(userID uint, scanned ScannedItem) (MergeResult, error) {
	inventory, err := r.store.Inventory(userID)
	if err != nil {
		return MergeResult{}, err
	}

	for i := range inventory {
		existing := &inventory[i]
		if !strings.EqualFold(existing.Name, scanned.Name) {
			continue
		}

		if strings.EqualFold(existing.Unit, scanned.Unit) {
			existing.Quantity += scanned.Quantity
			if err := r.store.UpdateItem(existing); err != nil {
				return MergeResult{}, err
			}
			return MergeResult{Outcome: OutcomeMerged, Item: *existing}, nil
		}

		if converted, ok := units.Convert(scanned.Quantity, scanned.Unit, existing.Unit, scanned.Name); ok {
			existing.Quantity += converted
			if err := r.store.UpdateItem(existing); err != nil {
				return MergeResult{}, err
			}
			return MergeResult{Outcome: OutcomeMerged, Item: *existing}, nil
		}

		// Units cannot be reconciled; keep the scanned item separate.
		break
	}

	item := models.Grocery{
		Name:       scanned.Name,
		Quantity:   scanned.Quantity,
		Unit:       scanned.Unit,
		Category:   scanned.Category,
		ExpiryDate: scanned.Expiry,
		MfgDate:    scanned.MfgDate,
		UserID:     userID,
	}
	if err := r.store.CreateItem(&item); err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Outcome: OutcomeCreated, Item: item}, nil
}

// SaveItems runs MergeOrCreate for every reviewed bill item. Every input
// increments the processed counter regardless of outcome; a failed item does
// not abort the rest.
func (r *Resolver) SaveItems(userID uint, items []ScannedItem) SaveResult {
	var result SaveResult

	for _, scanned := range items {
		result.Processed++
		merged, err := r.MergeOrCreate(userID, scanned)
		if err != nil {
			continue
		}
		switch merged.Outcome {
		case OutcomeMerged:
			result.Merged++
		case OutcomeCreated:
			result.Created++
		}
	}

	return result
}
