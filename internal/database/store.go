package database

import (
	"github.com/jinzhu/gorm"

	"larder/internal/models"
)

// Store is the gorm-backed implementation of the pantry storage
// collaborator. Every query is scoped by the owning user.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store around an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Inventory returns all of a user's pantry items ordered by expiry date.
func (s *Store) Inventory(userID uint) ([]models.Grocery, error) {
	var items []models.Grocery
	if err := s.db.Where("user_id = ?", userID).Order("expiry_date").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// InventoryItem fetches one of the user's pantry items by id. A missing row,
// including a row owned by a different user, returns (nil, nil).
func (s *Store) InventoryItem(userID, id uint) (*models.Grocery, error) {
	var item models.Grocery
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem persists a new pantry item.
func (s *Store) CreateItem(item *models.Grocery) error {
	return s.db.Create(item).Error
}

// UpdateItem persists changes to an existing pantry item.
func (s *Store) UpdateItem(item *models.Grocery) error {
	return s.db.Save(item).Error
}

// DeleteItem removes a pantry item.
func (s *Store) DeleteItem(item *models.Grocery) error {
	return s.db.Delete(item).Error
}

// RecipeIngredients returns the structured ingredient list of one of the
// user's saved recipes.
func (s *Store) RecipeIngredients(userID, recipeID uint) ([]models.RecipeIngredient, error) {
	var recipe models.Recipe
	err := s.db.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recipe.GetIngredients()
}
