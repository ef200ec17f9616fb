package units

import (
	"regexp"
	"strconv"
	"strings"
)

// Defaults used when an ingredient string carries no usable quantity or unit.
const (
	DefaultQuantity = 1.0
	UnitAsNeeded    = "as needed"
	UnitCount       = "unit"
)

// recognizedUnits is the vocabulary the parser accepts as a unit word
// immediately after the quantity. Values are the canonical singular form.
var recognizedUnits = map[string]string{
	"cup":    "cup",
	"tbsp":   "tbsp",
	"tsp":    "tsp",
	"g":      "g",
	"kg":     "kg",
	"ml":     "ml",
	"l":      "l",
	"oz":     "oz",
	"lb":     "lb",
	"piece":  "piece",
	"slice":  "slice",
	"clove":  "clove",
	"pinch":  "pinch",
	"bunch":  "bunch",
	"packet": "packet",
}

// Leading numeric token shapes, in match priority order.
var (
	mixedFractionRe = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)`)
	fractionRe      = regexp.MustCompile(`^(\d+)/(\d+)`)
	decimalRe       = regexp.MustCompile(`^(\d+\.\d+)`)
	integerRe       = regexp.MustCompile(`^(\d+)`)
)

// ParseIngredient splits a free-text ingredient description such as
// "1 1/2 cup Milk" or "200g Chicken" into a quantity, a unit token and the
// ingredient name. It never fails: unparseable input degrades to quantity 1
// with the original text as the name.
func ParseIngredient(text string) (float64, string, string) {
	text = strings.TrimSpace(text)

	qty, rest, ok := parseQuantity(text)
	if !ok {
		return DefaultQuantity, UnitAsNeeded, text
	}

	words := strings.Fields(rest)
	if len(words) > 0 {
		if canonical, ok := recognizedUnits[Normalize(words[0])]; ok {
			return qty, canonical, strings.Join(words[1:], " ")
		}
	}

	// First word is not a known unit: keep the whole remainder as the name.
	return qty, UnitCount, strings.Join(words, " ")
}

// parseQuantity matches a leading numeric token (mixed fraction, fraction,
// decimal or integer) and returns its value plus the remaining text.
func parseQuantity(text string) (float64, string, bool) {
	if m := mixedFractionRe.FindStringSubmatch(text); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		qty := DefaultQuantity
		if den != 0 {
			qty = whole + num/den
		}
		return qty, text[len(m[0]):], true
	}

	if m := fractionRe.FindStringSubmatch(text); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		qty := DefaultQuantity
		if den != 0 {
			qty = num / den
		}
		return qty, text[len(m[0]):], true
	}

	if m := decimalRe.FindStringSubmatch(text); m != nil {
		qty, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			qty = DefaultQuantity
		}
		return qty, text[len(m[0]):], true
	}

	if m := integerRe.FindStringSubmatch(text); m != nil {
		qty, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			qty = DefaultQuantity
		}
		return qty, text[len(m[0]):], true
	}

	return 0, "", false
}
