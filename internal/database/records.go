package database

import (
	"github.com/jinzhu/gorm"

	"larder/internal/models"
)

// SearchInventory filters a user's pantry by name or category substring,
// case-insensitively.
func (s *Store) SearchInventory(userID uint, query string) ([]models.Grocery, error) {
	pattern := "%" + query + "%"
	var items []models.Grocery
	err := s.db.Where("user_id = ?", userID).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)", pattern, pattern).
		Order("expiry_date").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateUser persists a new account.
func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

// UserByUsername fetches an account by username. A missing account returns
// (nil, nil).
func (s *Store) UserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Recipes returns a user's saved recipes, newest first.
func (s *Store) Recipes(userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Recipe fetches one of the user's saved recipes. A missing row returns
// (nil, nil).
func (s *Store) Recipe(userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe persists a saved recipe.
func (s *Store) CreateRecipe(recipe *models.Recipe) error {
	return s.db.Create(recipe).Error
}

// DeleteRecipe removes one of the user's saved recipes.
func (s *Store) DeleteRecipe(userID, id uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.Recipe{Model: gorm.Model{ID: id}}).Error
}

// ShoppingList returns the user's shopping list with grocery details
// preloaded.
func (s *Store) ShoppingList(userID uint) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := s.db.Where("user_id = ?", userID).Preload("Grocery").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddShoppingItem queues a grocery for purchase, incrementing the quantity
// when it is already on the list.
func (s *Store) AddShoppingItem(userID, groceryID uint, quantity uint) error {
	var existing models.ShoppingListItem
	err := s.db.Where("user_id = ? AND grocery_id = ?", userID, groceryID).First(&existing).Error
	if gorm.IsRecordNotFoundError(err) {
		return s.db.Create(&models.ShoppingListItem{
			UserID:    userID,
			GroceryID: groceryID,
			Quantity:  quantity,
		}).Error
	}
	if err != nil {
		return err
	}

	existing.Quantity += quantity
	return s.db.Save(&existing).Error
}

// RemoveShoppingItem takes a grocery off the user's shopping list.
func (s *Store) RemoveShoppingItem(userID, groceryID uint) error {
	return s.db.Where("user_id = ? AND grocery_id = ?", userID, groceryID).
		Delete(&models.ShoppingListItem{}).Error
}
