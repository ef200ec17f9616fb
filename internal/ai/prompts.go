package ai

import (
	"fmt"
	"strings"
	"time"
)

// RecipePrompt asks for recipes built from the user's pantry, prioritizing
// ingredients that are about to expire.
func RecipePrompt(expiring, others []string, preferences string) string {
	expiringStr := "None"
	if len(expiring) > 0 {
		expiringStr = strings.Join(expiring, ", ")
	}
	othersStr := "None"
	if len(others) > 0 {
		othersStr = strings.Join(others, ", ")
	}
	if preferences == "" {
		preferences = "None"
	}

	return fmt.Sprintf(`As a creative chef, generate 3 detailed recipes based on these available ingredients.

CRITICAL PRIORITY (Use these if possible as they are expiring):
%s

OTHER AVAILABLE INGREDIENTS:
%s

User Preferences: %s

Rules:
1. You don't have to use ALL ingredients, but try to use the PRIORITY ones to reduce waste.
2. You can assume basic pantry staples (oil, salt, pepper, water) are available.

Return the response ONLY as a valid JSON list of objects. No markdown formatting.
Example format:
[
    {
        "name": "Recipe Name",
        "description": "Brief description",
        "ingredients": ["1 cup Rice", "2 Tomatoes"],
        "instructions": ["Step 1...", "Step 2..."],
        "time": "30 mins",
        "difficulty": "Easy",
        "calories": "300 kcal",
        "macros": { "protein": "20g", "carbs": "45g", "fats": "15g" },
        "uses_expiring": true
    }
]`, expiringStr, othersStr, preferences)
}

// RefinePrompt asks for a modified version of an already generated recipe.
func RefinePrompt(currentRecipe, preferences string) string {
	return fmt.Sprintf(`Modify this recipe based on the following preferences: %s

Current Recipe:
%s

Provide the modified recipe with the same format as before.`, preferences, currentRecipe)
}

// BillPrompt asks for the food line items of a scanned grocery receipt.
func BillPrompt(categories []string, today time.Time) string {
	return fmt.Sprintf(`Analyze this grocery bill/receipt image and extract ONLY the food/grocery items.
Ignore non-food items (like soap, paper towels) and general receipt text (taxes, store name).

For each food item, provide:
1. Generic Ingredient Name ONLY. Remove all brand names, packaging info, and adjectives.
   - Example: "Aashirvaad Shudh Chakki Atta" -> "Whole Wheat Flour" or "Atta"
   - Example: "Amul Gold Milk" -> "Milk"
   - Example: "Tata Salt" -> "Salt"
2. Quantity and unit (default to 1 "unit" if not specified)
3. Estimated Expiry Date (YYYY-MM-DD) - Make a reasonable guess based on the type of food (e.g., Milk: 7 days, Rice: 1 year, Vegetables: 5 days). Today is %s.
4. Category - Choose the best match from this list: [%s]

Format the response as a valid JSON list of objects.
Example format:
[
  {"name": "Milk", "quantity": 1, "unit": "l", "expiry": "2024-02-01", "category": "Dairy"},
  {"name": "Basmati Rice", "quantity": 5, "unit": "kg", "expiry": "2025-01-01", "category": "Grains"}
]
Return ONLY the JSON. Do not include markdown formatting or backticks.`,
		today.Format("2006-01-02"), strings.Join(categories, ", "))
}

// FoodAnalysisPrompt asks for a nutritional breakdown of a food photo.
const FoodAnalysisPrompt = `Analyze this food image and provide:
Name of the dish/food
Estimated calories (total or per serving)
Main ingredients visible
Nutritional breakdown:
   - Protein (approx g)
   - Carbs (approx g)
   - Fats (approx g)
Healthiness rating (1-10) and brief explanation

Format the response in clear Markdown.`
