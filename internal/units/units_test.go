package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertIdentity(t *testing.T) {
	for _, unit := range []string{"ml", "cup", "kg", "packet", "unit", "as needed"} {
		got, ok := Convert(3.7, unit, unit, "")
		assert.True(t, ok)
		assert.Equal(t, 3.7, got)
	}

	// Tokens differing only in case or pluralization are the same unit.
	got, ok := Convert(2, "Cups", "cup", "")
	assert.True(t, ok)
	assert.Equal(t, 2.0, got)
}

func TestConvertVolume(t *testing.T) {
	got, ok := Convert(1, "tsp", "l", "")
	assert.True(t, ok)
	assert.Equal(t, 0.005, got)

	got, ok = Convert(1, "tbsp", "l", "")
	assert.True(t, ok)
	assert.Equal(t, 0.015, got)

	got, ok = Convert(2, "cup", "ml", "")
	assert.True(t, ok)
	assert.Equal(t, 480.0, got)
}

func TestConvertWeight(t *testing.T) {
	got, ok := Convert(500, "g", "kg", "")
	assert.True(t, ok)
	assert.Equal(t, 0.5, got)

	got, ok = Convert(1, "lb", "g", "")
	assert.True(t, ok)
	assert.InDelta(t, 453.59, got, 1e-9)
}

func TestConvertDensityBridge(t *testing.T) {
	got, ok := Convert(0.5, "cup", "kg", "")
	assert.True(t, ok)
	assert.InDelta(t, 0.12, got, 1e-9)

	got, ok = Convert(0.25, "cup", "g", "")
	assert.True(t, ok)
	assert.InDelta(t, 60, got, 1e-9)

	got, ok = Convert(250, "g", "l", "")
	assert.True(t, ok)
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestConvertOunceIsFluidWithinVolume(t *testing.T) {
	// "oz" lives in both tables; the volume table wins when both endpoints
	// can be volume, so oz -> ml uses the fluid ounce factor.
	got, ok := Convert(1, "oz", "ml", "")
	assert.True(t, ok)
	assert.InDelta(t, 29.57, got, 1e-9)

	// Against a weight-only unit both endpoints sit in the weight table,
	// which wins before any bridging: weight ounce, not fluid ounce.
	got, ok = Convert(1, "oz", "g", "")
	assert.True(t, ok)
	assert.InDelta(t, 28.35, got, 1e-9)
}

func TestConvertLinearity(t *testing.T) {
	q1, q2 := 1.3, 2.9
	a, _ := Convert(q1, "cup", "tbsp", "")
	b, _ := Convert(q2, "cup", "tbsp", "")
	sum, _ := Convert(q1+q2, "cup", "tbsp", "")
	assert.InDelta(t, a+b, sum, 1e-9)
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := [][2]string{{"cup", "ml"}, {"tsp", "gal"}, {"kg", "lb"}, {"oz", "tbsp"}}
	for _, p := range pairs {
		there, ok := Convert(7.5, p[0], p[1], "")
		assert.True(t, ok)
		back, ok := Convert(there, p[1], p[0], "")
		assert.True(t, ok)
		assert.InDelta(t, 7.5, back, 1e-9, "round trip %s<->%s", p[0], p[1])
	}
}

func TestConvertBreadOverride(t *testing.T) {
	got, ok := Convert(1, "packet", "slice", "Sliced Bread Packet")
	assert.True(t, ok)
	assert.Equal(t, 15.0, got)

	got, ok = Convert(30, "slice", "packet", "brown bread")
	assert.True(t, ok)
	assert.Equal(t, 2.0, got)

	// Without the item hint packet/slice have no registered factors.
	_, ok = Convert(1, "packet", "slice", "")
	assert.False(t, ok)
}

func TestConvertHerbOverride(t *testing.T) {
	for _, name := range []string{"Coriander", "baby spinach", "Mint Leaves", "Methi", "palak"} {
		got, ok := Convert(2, "packet", "bunch", name)
		assert.True(t, ok, name)
		assert.Equal(t, 2.0, got)

		got, ok = Convert(2, "bunch", "packet", name)
		assert.True(t, ok, name)
		assert.Equal(t, 2.0, got)
	}

	// Other unit pairs for the same items fall through to the tables.
	_, ok := Convert(1, "packet", "g", "spinach")
	assert.False(t, ok)
}

func TestConvertUnconvertible(t *testing.T) {
	_, ok := Convert(1, "piece", "g", "Egg")
	assert.False(t, ok)

	_, ok = Convert(1, "unit", "ml", "")
	assert.False(t, ok)
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassVolume, ClassOf("Cups"))
	assert.Equal(t, ClassWeight, ClassOf("kilograms"))
	assert.Equal(t, ClassVolume, ClassOf("oz")) // volume table is checked first
	assert.Equal(t, ClassCount, ClassOf("packet"))
}
