package utils

import (
	"strings"

	"tourbook/models"
)

var ValidBookingStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCancelled: true,
}

// NormalizeBookingStatus lowercases and trims a status string.
// Returns the normalized status and whether it's a known status.
func NormalizeBookingStatus(status string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	// "canceled" is accepted as an alias.
	if normalized == "canceled" {
		normalized = models.BookingStatusCancelled
	}
	return normalized, ValidBookingStatuses[normalized]
}
