package repository

import (
	"context"
	"fmt"
)

var countableTables = map[string]bool{
	"locations":  true,
	"properties": true,
	"hotels":     true,
	"tours":      true,
	"bookings":   true,
	"contacts":   true,
	"profiles":   true,
}

// Counter answers COUNT(*) for the known tables.
type Counter struct {
	db DB
}

func NewCounter(db DB) *Counter {
	return &Counter{db: db}
}

func (c *Counter) Count(ctx context.Context, table string) (int, error) {
	if !countableTables[table] {
		return 0, fmt.Errorf("count: unknown table %q", table)
	}
	var n int
	if err := c.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
