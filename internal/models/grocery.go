package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// ExpiringSoonWindow is how far ahead an item counts as "expiring soon".
const ExpiringSoonWindow = 7 * 24 * time.Hour

// Grocery represents a single item in a user's pantry inventory.
// Created by manual entry or the bill merge resolver, mutated by quantity
// edits and recipe deductions, and deleted outright when a deduction
// exhausts it; quantity is never persisted at zero.
type Grocery struct {
	gorm.Model
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity" gorm:"default:1"`
	Unit       string     `json:"unit" gorm:"default:'unit'"`
	Category   string     `json:"category" gorm:"default:'Others'"`
	ExpiryDate time.Time  `json:"expiry_date"`
	MfgDate    *time.Time `json:"mfg_date,omitempty"`
	UserID     uint       `json:"user_id" gorm:"index"`
}

// TableName sets the table name for Grocery
func (Grocery) TableName() string {
	return "groceries"
}

// IsExpired reports whether the item's expiry date has passed.
func (g *Grocery) IsExpired() bool {
	return g.ExpiryDate.Before(startOfToday())
}

// IsExpiringSoon reports whether the item expires within the warning window.
func (g *Grocery) IsExpiringSoon() bool {
	today := startOfToday()
	return !g.ExpiryDate.Before(today) && !g.ExpiryDate.After(today.Add(ExpiringSoonWindow))
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// GroceryCategory represents the category of a pantry item
type GroceryCategory string

const (
	// Grocery categories
	CategoryVegetables GroceryCategory = "Vegetables"
	CategoryFruits     GroceryCategory = "Fruits"
	CategoryDairy      GroceryCategory = "Dairy"
	CategoryMeat       GroceryCategory = "Meat"
	CategoryGrains     GroceryCategory = "Grains"
	CategorySpices     GroceryCategory = "Spices"
	CategoryCondiments GroceryCategory = "Condiments & Seasonings"
	CategoryBeverages  GroceryCategory = "Beverages"
	CategorySnacks     GroceryCategory = "Snacks"
	CategoryOthers     GroceryCategory = "Others"
)

// AllCategories lists every grocery category in display order.
func AllCategories() []GroceryCategory {
	return []GroceryCategory{
		CategoryVegetables,
		CategoryFruits,
		CategoryDairy,
		CategoryMeat,
		CategoryGrains,
		CategorySpices,
		CategoryCondiments,
		CategoryBeverages,
		CategorySnacks,
		CategoryOthers,
	}
}

// ShoppingListItem represents a pantry item a user has queued for purchase.
type ShoppingListItem struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index"`
	GroceryID uint    `json:"grocery_id"`
	Quantity  uint    `json:"quantity" gorm:"default:1"`
	Grocery   Grocery `json:"grocery,omitempty" gorm:"foreignkey:GroceryID"`
}

// TableName sets the table name for ShoppingListItem
func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}
