package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tourbook/analytics"
	"tourbook/models"
)

// recentBookingsLimit is how many bookings the dashboard lists.
const recentBookingsLimit = 5

// HandleGetDashboardSummary handles the GET /api/v1/admin/dashboard/summary endpoint.
//
// Counts and the full booking list are fetched concurrently; aggregation
// starts only once every fetch has succeeded.
func (h *Handler) HandleGetDashboardSummary(c *fiber.Ctx) error {
	g, ctx := errgroup.WithContext(c.UserContext())

	var summary models.DashboardSummary
	counts := []struct {
		table string
		dst   *int
	}{
		{"locations", &summary.TotalLocations},
		{"properties", &summary.TotalProperties},
		{"hotels", &summary.TotalHotels},
		{"tours", &summary.TotalTours},
	}
	for _, ct := range counts {
		g.Go(func() error {
			n, err := h.Counter.Count(ctx, ct.table)
			if err != nil {
				return err
			}
			*ct.dst = n
			return nil
		})
	}

	g.Go(func() error {
		n, err := h.Contacts.CountUnread(ctx)
		if err != nil {
			return err
		}
		summary.UnreadContacts = n
		return nil
	})

	var bookings []models.Booking
	g.Go(func() error {
		var err error
		bookings, err = h.Bookings.ListAll(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		h.Log.Error("Error building dashboard summary", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load dashboard data")
	}

	summary.TotalBookings = len(bookings)
	summary.MonthlyBookings = analytics.BuildMonthlySeries(bookings, h.now())
	summary.Revenue = analytics.SumConfirmedRevenue(bookings)
	summary.RecentBookings = analytics.SelectRecent(bookings, recentBookingsLimit)

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   summary,
	})
}
