package pantry

import (
	"testing"
	"time"

	"larder/internal/models"

	"github.com/stretchr/testify/assert"
)

func expiring(name string, days int) models.Grocery {
	return models.Grocery{Name: name, ExpiryDate: time.Now().AddDate(0, 0, days)}
}

func TestCheckExpiry(t *testing.T) {
	warnings := CheckExpiry([]models.Grocery{
		expiring("Yogurt", -2),
		expiring("Milk", 0),
		expiring("Spinach", 3),
		expiring("Rice", 120),
	})

	assert.Equal(t, 1, warnings.ExpiredCount())
	assert.Equal(t, 2, warnings.ExpiringSoonCount())
	assert.Equal(t, "Yogurt", warnings.Expired[0].Name)
}

func TestCheckExpiryEmpty(t *testing.T) {
	warnings := CheckExpiry(nil)
	assert.Zero(t, warnings.ExpiredCount())
	assert.Zero(t, warnings.ExpiringSoonCount())
}
