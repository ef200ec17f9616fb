package pantry

import "larder/internal/models"

// ExpiryWarnings partitions a user's pantry by expiry status.
type ExpiryWarnings struct {
	Expired      []models.Grocery `json:"expired"`
	ExpiringSoon []models.Grocery `json:"expiring_soon"`
}

// ExpiredCount returns how many items have already expired.
func (w ExpiryWarnings) ExpiredCount() int { return len(w.Expired) }

// ExpiringSoonCount returns how many items expire within the warning window.
func (w ExpiryWarnings) ExpiringSoonCount() int { return len(w.ExpiringSoon) }

// CheckExpiry scans a pantry snapshot and collects expired and soon-to-expire
// items for warning banners and recipe prioritization.
func CheckExpiry(inventory []models.Grocery) ExpiryWarnings {
	var warnings ExpiryWarnings
	for _, item := range inventory {
		switch {
		case item.IsExpired():
			warnings.Expired = append(warnings.Expired, item)
		case item.IsExpiringSoon():
			warnings.ExpiringSoon = append(warnings.ExpiringSoon, item)
		}
	}
	return warnings
}
