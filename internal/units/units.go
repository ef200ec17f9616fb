// Package units normalizes and converts physical quantities between the
// unit tokens that appear in pantry records and AI-generated recipes.
// Conversions are best effort: anything outside the registered volume and
// weight tables (plus a few item-specific kitchen heuristics) reports
// "no conversion" rather than an error.
package units

import "strings"

// UnitClass partitions unit tokens by physical dimension.
type UnitClass string

const (
	ClassVolume UnitClass = "volume"
	ClassWeight UnitClass = "weight"
	ClassCount  UnitClass = "count"
)

// volumeToMl maps volume unit tokens to millilitres.
var volumeToMl = map[string]float64{
	"ml":          1,
	"l":           1000,
	"liter":       1000,
	"cup":         240,
	"tbsp":        15,
	"tablespoon":  15,
	"tsp":         5,
	"teaspoon":    5,
	"gal":         3785,
	"gallon":      3785,
	"oz":          29.57,
	"fluid ounce": 29.57,
}

// weightToG maps weight unit tokens to grams. Note "oz" also appears in the
// volume table as fluid ounce; volume is always tried first, so "oz" only
// resolves as weight when paired with another weight unit.
var weightToG = map[string]float64{
	"g":        1,
	"gram":     1,
	"kg":       1000,
	"kilogram": 1000,
	"lb":       453.59,
	"pound":    453.59,
	"oz":       28.35,
	"ounce":    28.35,
}

// leafyHerbs are sold interchangeably as a "packet" or a "bunch".
var leafyHerbs = []string{"coriander", "spinach", "mint", "methi", "palak"}

const slicesPerBreadPacket = 15

// Normalize trims, lower-cases and strips a trailing plural "s" from a unit
// token so that "Cups " and "cup" resolve to the same table entry.
func Normalize(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	return strings.TrimSuffix(unit, "s")
}

// ClassOf reports which dimension a unit token belongs to. Tokens in neither
// table (piece, packet, bunch, ...) are counts.
func ClassOf(unit string) UnitClass {
	unit = Normalize(unit)
	if _, ok := volumeToMl[unit]; ok {
		return ClassVolume
	}
	if _, ok := weightToG[unit]; ok {
		return ClassWeight
	}
	return ClassCount
}

// Convert converts qty from one unit token to another. itemName, when known,
// enables item-specific conversions that bypass the generic tables (sliced
// bread packets, leafy herb bunches). The second return value is false when
// no conversion applies; callers fall back to the unconverted quantity.
//
// Cross-dimension conversions assume water density (1 ml = 1 g). That is a
// coarse approximation kept for pantry bookkeeping, not a physical truth.
func Convert(qty float64, fromUnit, toUnit, itemName string) (float64, bool) {
	if fromUnit == toUnit {
		return qty, true
	}

	from := Normalize(fromUnit)
	to := Normalize(toUnit)
	if from == to {
		return qty, true
	}

	if qty2, ok := convertForItem(qty, from, to, itemName); ok {
		return qty2, true
	}

	// Same-class conversion through the base unit.
	if ff, ok := volumeToMl[from]; ok {
		if tf, ok := volumeToMl[to]; ok {
			return qty * ff / tf, true
		}
	}
	if ff, ok := weightToG[from]; ok {
		if tf, ok := weightToG[to]; ok {
			return qty * ff / tf, true
		}
	}

	// Volume <-> weight bridge via the 1 ml = 1 g assumption.
	if ff, ok := volumeToMl[from]; ok {
		if tf, ok := weightToG[to]; ok {
			return qty * ff / tf, true
		}
	}
	if ff, ok := weightToG[from]; ok {
		if tf, ok := volumeToMl[to]; ok {
			return qty * ff / tf, true
		}
	}

	return 0, false
}

// convertForItem applies item-name-triggered unit heuristics. Only the exact
// declared unit pairs convert; any other pair falls through to the generic
// tables.
func convertForItem(qty float64, from, to, itemName string) (float64, bool) {
	if itemName == "" {
		return 0, false
	}
	name := strings.ToLower(itemName)

	if strings.Contains(name, "bread") {
		if from == "packet" && to == "slice" {
			return qty * slicesPerBreadPacket, true
		}
		if from == "slice" && to == "packet" {
			return qty / slicesPerBreadPacket, true
		}
	}

	for _, herb := range leafyHerbs {
		if strings.Contains(name, herb) {
			if (from == "packet" && to == "bunch") || (from == "bunch" && to == "packet") {
				return qty, true
			}
			break
		}
	}

	return 0, false
}
