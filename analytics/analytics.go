// Package analytics derives the admin dashboard figures from booking rows
// that have already been fetched from storage.
package analytics

import (
	"math"
	"time"

	"tourbook/models"
)

// SeriesMonths is the number of monthly buckets in the booking chart.
const SeriesMonths = 6

// BuildMonthlySeries counts bookings per calendar month for the month
// containing ref and the five months before it, oldest first.
//
// Records are matched on the (month, year) of CreatedAt in ref's location.
// Anything outside the window, including future-dated records and zero
// timestamps, is ignored. RelativeHeight is count divided by the largest
// count, floored at 1 so an empty window yields all zero heights.
func BuildMonthlySeries(records []models.Booking, ref time.Time) []models.MonthBucket {
	loc := ref.Location()
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)

	buckets := make([]models.MonthBucket, SeriesMonths)
	index := make(map[monthKey]int, SeriesMonths)
	for i := range buckets {
		// time.Date normalizes negative months, rolling the year back.
		m := time.Date(first.Year(), first.Month()-time.Month(SeriesMonths-1-i), 1, 0, 0, 0, 0, loc)
		buckets[i] = models.MonthBucket{
			MonthLabel: m.Format("Jan"),
			Year:       m.Year(),
		}
		index[monthKey{year: m.Year(), month: m.Month()}] = i
	}

	for _, r := range records {
		if r.CreatedAt.IsZero() {
			continue
		}
		t := r.CreatedAt.In(loc)
		if i, ok := index[monthKey{year: t.Year(), month: t.Month()}]; ok {
			buckets[i].Count++
		}
	}

	maxCount := 1
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for i := range buckets {
		buckets[i].RelativeHeight = float64(buckets[i].Count) / float64(maxCount)
	}

	return buckets
}

type monthKey struct {
	year  int
	month time.Month
}

// SumConfirmedRevenue totals TotalPrice over confirmed bookings. Missing or
// non-finite prices count as zero.
func SumConfirmedRevenue(records []models.Booking) float64 {
	var total float64
	for _, r := range records {
		if r.Status != models.BookingStatusConfirmed || r.TotalPrice == nil {
			continue
		}
		price := *r.TotalPrice
		if math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		total += price
	}
	return total
}

// SelectRecent returns the first n records. Callers pass rows already
// ordered newest first; no sorting happens here.
func SelectRecent(records []models.Booking, n int) []models.Booking {
	if len(records) < n {
		n = len(records)
	}
	if n <= 0 {
		return []models.Booking{}
	}
	return records[:n:n]
}
