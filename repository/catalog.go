package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"tourbook/models"
)

// ErrNoFields is returned by Create and Update when no writable column was supplied.
var ErrNoFields = errors.New("no updatable fields provided")

// CatalogTable describes one public content table.
type CatalogTable struct {
	Name         string
	Columns      []string
	Writable     []string
	SearchColumn string
	// HasLocation enables the location_id filter on List.
	HasLocation bool
}

var (
	LocationsTable = CatalogTable{
		Name:         "locations",
		Columns:      []string{"id", "name", "slug", "country", "description", "image_url", "is_featured", "created_at", "updated_at"},
		Writable:     []string{"name", "slug", "country", "description", "image_url", "is_featured"},
		SearchColumn: "name",
	}
	PropertiesTable = CatalogTable{
		Name:         "properties",
		Columns:      []string{"id", "location_id", "name", "property_type", "description", "price_per_night", "max_guests", "bedrooms", "image_url", "created_at", "updated_at"},
		Writable:     []string{"location_id", "name", "property_type", "description", "price_per_night", "max_guests", "bedrooms", "image_url"},
		SearchColumn: "name",
		HasLocation:  true,
	}
	HotelsTable = CatalogTable{
		Name:         "hotels",
		Columns:      []string{"id", "location_id", "name", "stars", "address", "description", "price_per_night", "image_url", "created_at", "updated_at"},
		Writable:     []string{"location_id", "name", "stars", "address", "description", "price_per_night", "image_url"},
		SearchColumn: "name",
		HasLocation:  true,
	}
	ToursTable = CatalogTable{
		Name:         "tours",
		Columns:      []string{"id", "location_id", "title", "description", "duration_days", "price", "max_group_size", "image_url", "created_at", "updated_at"},
		Writable:     []string{"location_id", "title", "description", "duration_days", "price", "max_group_size", "image_url"},
		SearchColumn: "title",
		HasLocation:  true,
	}
)

// Catalog is CRUD over one content table, scanning rows into T by db tag.
type Catalog[T any] struct {
	db    DB
	table CatalogTable
}

func NewCatalog[T any](db DB, table CatalogTable) *Catalog[T] {
	return &Catalog[T]{db: db, table: table}
}

func NewLocations(db DB) *Catalog[models.Location]   { return NewCatalog[models.Location](db, LocationsTable) }
func NewProperties(db DB) *Catalog[models.Property] { return NewCatalog[models.Property](db, PropertiesTable) }
func NewHotels(db DB) *Catalog[models.Hotel]         { return NewCatalog[models.Hotel](db, HotelsTable) }
func NewTours(db DB) *Catalog[models.Tour]           { return NewCatalog[models.Tour](db, ToursTable) }

// List returns one page of rows, newest first, and the total matching count.
func (c *Catalog[T]) List(ctx context.Context, params ListParams) ([]T, int, error) {
	params = params.Normalize()
	where, args := c.table.filter(params)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", c.table.Name, where)
	if err := c.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", c.table.Name, err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		c.table.selectList(), c.table.Name, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := c.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", c.table.Name, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", c.table.Name, err)
	}
	return items, total, nil
}

// Get fetches a single row by id.
func (c *Catalog[T]) Get(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", c.table.selectList(), c.table.Name)
	return c.one(ctx, query, id)
}

// Create inserts a row from whitelisted fields and returns it.
func (c *Catalog[T]) Create(ctx context.Context, fields map[string]any) (*T, error) {
	query, args, err := c.table.insert(fields)
	if err != nil {
		return nil, err
	}
	return c.one(ctx, query, args...)
}

// Update sets whitelisted fields on the row and returns it.
func (c *Catalog[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	query, args, err := c.table.update(id, fields)
	if err != nil {
		return nil, err
	}
	return c.one(ctx, query, args...)
}

// Delete permanently removes the row.
func (c *Catalog[T]) Delete(ctx context.Context, id string) error {
	tag, err := c.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", c.table.Name), id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.table.Name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Catalog[T]) one(ctx context.Context, query string, args ...any) (*T, error) {
	rows, err := c.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.table.Name, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (t CatalogTable) selectList() string {
	return strings.Join(t.Columns, ", ")
}

func (t CatalogTable) filter(p ListParams) (string, []any) {
	var conditions []string
	var args []any

	if p.Search != "" && t.SearchColumn != "" {
		args = append(args, "%"+p.Search+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", t.SearchColumn, len(args)))
	}
	if p.LocationID != "" && t.HasLocation {
		args = append(args, p.LocationID)
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// writable returns the whitelisted keys of fields in a stable order.
func (t CatalogTable) writable(fields map[string]any) []string {
	var keys []string
	for _, col := range t.Writable {
		if _, ok := fields[col]; ok {
			keys = append(keys, col)
		}
	}
	sort.Strings(keys)
	return keys
}

func (t CatalogTable) insert(fields map[string]any) (string, []any, error) {
	keys := t.writable(fields)
	if len(keys) == 0 {
		return "", nil, ErrNoFields
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[k]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.Name, strings.Join(keys, ", "), strings.Join(placeholders, ", "), t.selectList())
	return query, args, nil
}

func (t CatalogTable) update(id string, fields map[string]any) (string, []any, error) {
	keys := t.writable(fields)
	if len(keys) == 0 {
		return "", nil, ErrNoFields
	}

	setParts := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		setParts[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args = append(args, fields[k])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		t.Name, strings.Join(setParts, ", "), len(args), t.selectList())
	return query, args, nil
}
