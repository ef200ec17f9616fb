package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"larder/internal/units"
)

// GeneratedRecipe is the typed form of one recipe in a generation response.
type GeneratedRecipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Time         string   `json:"time"`
	Difficulty   string   `json:"difficulty"`
	Calories     string   `json:"calories"`
	Macros       Macros   `json:"macros"`
	UsesExpiring bool     `json:"uses_expiring"`
}

// Macros is the per-serving macro nutrient estimate of a generated recipe.
type Macros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fats    string `json:"fats"`
}

// BillItem is the typed form of one line item from a scanned bill, with
// every field defaulted so nothing untyped reaches the merge resolver.
type BillItem struct {
	Name     string     `json:"name"`
	Quantity float64    `json:"quantity"`
	Unit     string     `json:"unit"`
	Expiry   time.Time  `json:"expiry"`
	MfgDate  *time.Time `json:"mfd,omitempty"`
	Category string     `json:"category"`
}

// ParseRecipes extracts the recipe list from a generation response. Models
// wrap the list unpredictably ({"recipes": [...]}, double nesting, bare
// list, markdown fences); the recursive search tolerates all of those.
func ParseRecipes(raw string) ([]GeneratedRecipe, error) {
	var payload interface{}
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	list := findList(payload, "recipes")
	if list == nil {
		return nil, fmt.Errorf("no recipe list found in response")
	}

	// Round-trip through JSON to decode into the typed shape.
	data, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	var recipes []GeneratedRecipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("recipe list has unexpected shape: %w", err)
	}
	return recipes, nil
}

// ParseBillItems extracts and defaults the scanned line items of a bill
// response. Items without a name are dropped; malformed quantities default
// to 1 and unparseable expiry dates default to a week from today.
func ParseBillItems(raw string) ([]BillItem, error) {
	var payload interface{}
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	list := findList(payload, "items")
	if list == nil {
		return nil, fmt.Errorf("no item list found in response")
	}

	items := make([]BillItem, 0, len(list))
	for _, entry := range list {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		name := strings.TrimSpace(stringField(fields, "name"))
		if name == "" {
			continue
		}

		item := BillItem{
			Name:     name,
			Quantity: numberField(fields, "quantity", 1),
			Unit:     stringField(fields, "unit"),
			Category: stringField(fields, "category"),
			Expiry:   dateField(fields, "expiry", time.Now().AddDate(0, 0, 7)),
		}
		if item.Unit == "" {
			item.Unit = units.UnitCount
		}
		if item.Category == "" {
			item.Category = "Others"
		}
		if mfd, ok := fields["mfd"]; ok {
			if parsed, err := time.Parse("2006-01-02", fmt.Sprint(mfd)); err == nil {
				item.MfgDate = &parsed
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// stripFences removes markdown code fences the model sometimes adds despite
// instructions.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// findList recursively searches decoded JSON for the payload list. The key
// hint ("recipes", "items") is preferred when present; otherwise any nested
// list found first wins.
func findList(data interface{}, keyHint string) []interface{} {
	if list, ok := data.([]interface{}); ok {
		return list
	}

	obj, ok := data.(map[string]interface{})
	if !ok {
		return nil
	}

	if val, ok := obj[keyHint]; ok {
		if list, ok := val.([]interface{}); ok {
			return list
		}
		if nested, ok := val.(map[string]interface{}); ok {
			if found := findList(nested, keyHint); found != nil {
				return found
			}
		}
	}

	for key, val := range obj {
		if list, ok := val.([]interface{}); ok && strings.Contains(strings.ToLower(key), keyHint) {
			return list
		}
		switch val.(type) {
		case map[string]interface{}, []interface{}:
			if found := findList(val, keyHint); found != nil {
				return found
			}
		}
	}

	return nil
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func numberField(fields map[string]interface{}, key string, fallback float64) float64 {
	switch v := fields[key].(type) {
	case float64:
		if v > 0 {
			return v
		}
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func dateField(fields map[string]interface{}, key string, fallback time.Time) time.Time {
	if s := stringField(fields, key); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			return parsed
		}
	}
	return fallback
}
