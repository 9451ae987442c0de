// Package repository reads and writes the hosted Postgres tables with pgx.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tourbook/models"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("record not found")

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// ListParams controls paging and filtering of list queries.
type ListParams struct {
	Page       int
	PageSize   int
	LocationID string
	Search     string
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Normalize clamps paging values to sane defaults.
func (p ListParams) Normalize() ListParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// Offset is the row offset of the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Pagination describes the page p within total matching rows.
func (p ListParams) Pagination(total int) models.Pagination {
	p = p.Normalize()
	return models.Pagination{
		TotalItems:  total,
		TotalPages:  (total + p.PageSize - 1) / p.PageSize,
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
