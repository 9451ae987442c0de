package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tourbook/models"
)

const profileColumns = "id, email, full_name, role, password_hash, created_at"

// Profiles reads account rows. Lookups by email are case-insensitive.
type Profiles struct {
	db DB
}

func NewProfiles(db DB) *Profiles {
	return &Profiles{db: db}
}

func (r *Profiles) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.one(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = $1", id)
}

func (r *Profiles) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.one(ctx, "SELECT "+profileColumns+" FROM profiles WHERE lower(email) = lower($1)", email)
}

// Create inserts a profile with an already hashed password.
func (r *Profiles) Create(ctx context.Context, p models.Profile) (*models.Profile, error) {
	return r.one(ctx,
		"INSERT INTO profiles (email, full_name, role, password_hash) VALUES ($1, $2, $3, $4) RETURNING "+profileColumns,
		p.Email, p.FullName, p.Role, p.PasswordHash)
}

func (r *Profiles) one(ctx context.Context, query string, args ...any) (*models.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	p, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Profile])
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}
