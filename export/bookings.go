// Package export renders admin reports as spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tourbook/analytics"
	"tourbook/models"
)

// BookingsSheet is the worksheet name of the bookings export.
const BookingsSheet = "Bookings"

var bookingColumns = []string{
	"Booking ID", "Property", "Guest", "Email", "Check-in", "Check-out",
	"Guests", "Status", "Total", "Created",
}

// BookingsWorkbook writes one row per booking followed by the confirmed
// revenue total and returns the xlsx bytes.
func BookingsWorkbook(bookings []models.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BookingsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range bookingColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(BookingsSheet, cell, col)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(bookingColumns), 1)
	f.SetCellStyle(BookingsSheet, "A1", lastHeader, headerStyle)

	for i, b := range bookings {
		row := i + 2
		values := []any{
			b.ID,
			deref(b.PropertyName),
			b.GuestName,
			b.GuestEmail,
			b.CheckIn.Format("2006-01-02"),
			b.CheckOut.Format("2006-01-02"),
			b.Guests,
			b.Status,
			totalPrice(b),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(BookingsSheet, cell, v)
		}
	}

	totalRow := len(bookings) + 3
	f.SetCellValue(BookingsSheet, fmt.Sprintf("H%d", totalRow), "Confirmed revenue")
	f.SetCellValue(BookingsSheet, fmt.Sprintf("I%d", totalRow), analytics.SumConfirmedRevenue(bookings))
	f.SetCellStyle(BookingsSheet, fmt.Sprintf("H%d", totalRow), fmt.Sprintf("I%d", totalRow), headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func totalPrice(b models.Booking) float64 {
	if b.TotalPrice == nil {
		return 0
	}
	return *b.TotalPrice
}
