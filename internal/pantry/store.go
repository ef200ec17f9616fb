// Package pantry implements the inventory reconciliation core: matching
// recipe ingredients against a user's pantry, planning and applying
// quantity deductions, and merging scanned bill items into existing stock.
package pantry

import "larder/internal/models"

// Store is the storage collaborator the pantry engine works against.
// All item access is scoped by the owning user; a lookup for another
// user's record behaves like a missing record.
type Store interface {
	Inventory(userID uint) ([]models.Grocery, error)
	InventoryItem(userID, id uint) (*models.Grocery, error)
	CreateItem(item *models.Grocery) error
	UpdateItem(item *models.Grocery) error
	DeleteItem(item *models.Grocery) error
	RecipeIngredients(userID, recipeID uint) ([]models.RecipeIngredient, error)
}
