package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/models"
)

func price(v float64) *float64 { return &v }

func booking(createdAt time.Time, status string, total *float64) models.Booking {
	return models.Booking{CreatedAt: createdAt, Status: status, TotalPrice: total}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestBuildMonthlySeriesWindow(t *testing.T) {
	ref := date(2024, time.March, 1)

	series := BuildMonthlySeries(nil, ref)
	require.Len(t, series, SeriesMonths)

	want := []struct {
		label string
		year  int
	}{
		{"Oct", 2023}, {"Nov", 2023}, {"Dec", 2023},
		{"Jan", 2024}, {"Feb", 2024}, {"Mar", 2024},
	}
	for i, w := range want {
		assert.Equal(t, w.label, series[i].MonthLabel, "bucket %d", i)
		assert.Equal(t, w.year, series[i].Year, "bucket %d", i)
	}
}

func TestBuildMonthlySeriesScenario(t *testing.T) {
	ref := date(2024, time.March, 1)
	records := []models.Booking{
		booking(date(2024, time.January, 10), models.BookingStatusConfirmed, price(1000)),
		booking(date(2024, time.January, 22), models.BookingStatusConfirmed, price(500)),
		booking(date(2024, time.February, 3), models.BookingStatusPending, price(2000)),
	}

	series := BuildMonthlySeries(records, ref)

	jan, feb := series[3], series[4]
	assert.Equal(t, "Jan", jan.MonthLabel)
	assert.Equal(t, 2, jan.Count)
	assert.Equal(t, 1.0, jan.RelativeHeight)
	assert.Equal(t, "Feb", feb.MonthLabel)
	assert.Equal(t, 1, feb.Count)
	assert.Equal(t, 0.5, feb.RelativeHeight)

	assert.Equal(t, 1500.0, SumConfirmedRevenue(records))
}

func TestBuildMonthlySeriesEmpty(t *testing.T) {
	for _, ref := range []time.Time{date(2024, time.January, 31), date(1999, time.December, 15), time.Now()} {
		series := BuildMonthlySeries([]models.Booking{}, ref)
		require.Len(t, series, SeriesMonths)
		for _, b := range series {
			assert.Zero(t, b.Count)
			assert.Zero(t, b.RelativeHeight)
		}
	}
	assert.Zero(t, SumConfirmedRevenue(nil))
}

func TestBuildMonthlySeriesExcludesOutsideWindow(t *testing.T) {
	ref := date(2024, time.August, 15)
	records := []models.Booking{
		booking(date(2024, time.January, 15), models.BookingStatusConfirmed, price(10)), // seven months back
		booking(date(2024, time.January, 16), models.BookingStatusConfirmed, price(10)),
		booking(date(2024, time.January, 17), models.BookingStatusConfirmed, price(10)),
		booking(date(2024, time.May, 2), models.BookingStatusPending, nil),
		booking(date(2024, time.September, 1), models.BookingStatusPending, nil), // future
		booking(time.Time{}, models.BookingStatusPending, nil),
	}

	series := BuildMonthlySeries(records, ref)

	total := 0
	for _, b := range series {
		total += b.Count
		if b.MonthLabel == "May" {
			assert.Equal(t, 1, b.Count)
			assert.Equal(t, 1.0, b.RelativeHeight)
		}
	}
	assert.Equal(t, 1, total)
}

func TestBuildMonthlySeriesYearBoundary(t *testing.T) {
	ref := date(2025, time.February, 10)
	records := []models.Booking{
		booking(date(2024, time.September, 30), models.BookingStatusConfirmed, nil),
		booking(date(2024, time.December, 31), models.BookingStatusConfirmed, nil),
		booking(date(2023, time.December, 31), models.BookingStatusConfirmed, nil),
	}

	series := BuildMonthlySeries(records, ref)

	assert.Equal(t, "Sep", series[0].MonthLabel)
	assert.Equal(t, 2024, series[0].Year)
	assert.Equal(t, 1, series[0].Count)
	assert.Equal(t, "Dec", series[3].MonthLabel)
	assert.Equal(t, 2024, series[3].Year)
	assert.Equal(t, 1, series[3].Count)
	assert.Equal(t, "Feb", series[5].MonthLabel)
	assert.Equal(t, 2025, series[5].Year)
}

func TestBuildMonthlySeriesUsesReferenceLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	ref := time.Date(2024, time.March, 1, 9, 0, 0, 0, tokyo)
	// 2024-02-29 20:00 UTC is already March 1st in Tokyo.
	records := []models.Booking{booking(time.Date(2024, time.February, 29, 20, 0, 0, 0, time.UTC), models.BookingStatusPending, nil)}

	series := BuildMonthlySeries(records, ref)
	assert.Equal(t, 1, series[5].Count)
	assert.Equal(t, 0, series[4].Count)
}

func TestBuildMonthlySeriesProperties(t *testing.T) {
	ref := date(2024, time.June, 20)
	var records []models.Booking
	for i := 0; i < 40; i++ {
		records = append(records, booking(ref.AddDate(0, 0, -7*i), models.BookingStatusPending, nil))
	}

	series := BuildMonthlySeries(records, ref)

	sum, sawOne := 0, false
	for i, b := range series {
		sum += b.Count
		assert.GreaterOrEqual(t, b.RelativeHeight, 0.0)
		assert.LessOrEqual(t, b.RelativeHeight, 1.0)
		if b.RelativeHeight == 1 {
			sawOne = true
		}
		if i > 0 {
			prev := time.Date(series[i-1].Year, monthOf(t, series[i-1].MonthLabel), 1, 0, 0, 0, 0, time.UTC)
			cur := time.Date(b.Year, monthOf(t, b.MonthLabel), 1, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, prev.AddDate(0, 1, 0), cur, "buckets must be consecutive months")
		}
	}
	assert.LessOrEqual(t, sum, len(records))
	assert.True(t, sawOne)
	assert.Equal(t, "Jun", series[SeriesMonths-1].MonthLabel)
}

func monthOf(t *testing.T, label string) time.Month {
	t.Helper()
	parsed, err := time.Parse("Jan", label)
	require.NoError(t, err)
	return parsed.Month()
}

func TestSumConfirmedRevenue(t *testing.T) {
	records := []models.Booking{
		booking(date(2024, time.January, 1), models.BookingStatusConfirmed, price(120.5)),
		booking(date(2024, time.January, 2), models.BookingStatusConfirmed, nil),
		booking(date(2024, time.January, 3), models.BookingStatusConfirmed, price(math.NaN())),
		booking(date(2024, time.January, 4), models.BookingStatusPending, price(999)),
	}
	base := SumConfirmedRevenue(records)
	assert.Equal(t, 120.5, base)

	withCancelled := append(records, booking(date(2024, time.January, 5), models.BookingStatusCancelled, price(300)))
	assert.Equal(t, base, SumConfirmedRevenue(withCancelled))
}

func TestSelectRecent(t *testing.T) {
	records := []models.Booking{{ID: "c"}, {ID: "b"}, {ID: "a"}}

	got := SelectRecent(records, 5)
	assert.Equal(t, records, got)

	got = SelectRecent(records, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	assert.Empty(t, SelectRecent(records, 0))
	assert.NotNil(t, SelectRecent(nil, 5))
}
