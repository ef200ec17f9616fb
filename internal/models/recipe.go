package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jinzhu/gorm"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// Recipe represents a saved AI-generated recipe. Recipes are immutable once
// saved; re-saving a refined recipe creates a new row.
type Recipe struct {
	gorm.Model
	RecipeID        string      `json:"recipe_id" gorm:"column:recipe_id;unique_index"`
	UserID          uint        `json:"user_id" gorm:"index"`
	Name            string      `json:"name"`
	Description     string      `json:"description" gorm:"type:text"`
	Instructions    StringSlice `json:"instructions" gorm:"type:text"`
	CookingTime     string      `json:"time"`
	Difficulty      string      `json:"difficulty"`
	Calories        string      `json:"calories"`
	Protein         string      `json:"protein"`
	Carbs           string      `json:"carbs"`
	Fats            string      `json:"fats"`
	IngredientsJSON string      `json:"-" gorm:"type:text"`
	// Transient fields (ignored by GORM)
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"-"`
}

// TableName sets the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// GetIngredients returns the deserialized ingredient list
func (r *Recipe) GetIngredients() ([]RecipeIngredient, error) {
	if len(r.Ingredients) > 0 {
		return r.Ingredients, nil
	}
	var ingredients []RecipeIngredient
	if r.IngredientsJSON == "" {
		return ingredients, nil
	}
	if err := json.Unmarshal([]byte(r.IngredientsJSON), &ingredients); err != nil {
		return nil, err
	}
	r.Ingredients = ingredients
	return ingredients, nil
}

// SetIngredients serializes the ingredient list for storage
func (r *Recipe) SetIngredients(ingredients []RecipeIngredient) error {
	data, err := json.Marshal(ingredients)
	if err != nil {
		return err
	}
	r.IngredientsJSON = string(data)
	r.Ingredients = ingredients
	return nil
}

// RecipeIngredient represents one structured ingredient of a saved recipe:
// a (quantity, unit, name) triple produced by the ingredient parser.
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}
