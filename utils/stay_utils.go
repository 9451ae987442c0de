package utils

import (
	"math"
	"time"
)

// StayNights counts the calendar nights between check-in and check-out,
// reading both dates in the check-in's location.
func StayNights(checkIn, checkOut time.Time) int {
	y1, m1, d1 := checkIn.Date()
	y2, m2, d2 := checkOut.In(checkIn.Location()).Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// StayTotal prices a stay, rounded to cents.
func StayTotal(pricePerNight float64, nights int) float64 {
	return math.Round(pricePerNight*float64(nights)*100) / 100
}

// MinorUnits converts a price to cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
