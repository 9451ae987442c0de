package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tourbook/models"
)

const contactColumns = "id, name, email, subject, message, is_read, created_at"

// Contacts stores guest messages from the contact form.
type Contacts struct {
	db DB
}

func NewContacts(db DB) *Contacts {
	return &Contacts{db: db}
}

func (r *Contacts) Create(ctx context.Context, c models.Contact) (*models.Contact, error) {
	rows, err := r.db.Query(ctx,
		"INSERT INTO contacts (name, email, subject, message) VALUES ($1, $2, $3, $4) RETURNING "+contactColumns,
		c.Name, c.Email, c.Subject, c.Message)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Contact])
	if err != nil {
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	return created, nil
}

// List returns one page of messages, newest first. unreadOnly hides read ones.
func (r *Contacts) List(ctx context.Context, params ListParams, unreadOnly bool) ([]models.Contact, int, error) {
	params = params.Normalize()
	where := ""
	if unreadOnly {
		where = " WHERE is_read = false"
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM contacts"+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+contactColumns+" FROM contacts"+where+" ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	contacts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Contact])
	if err != nil {
		return nil, 0, fmt.Errorf("scan contacts: %w", err)
	}
	return contacts, total, nil
}

func (r *Contacts) MarkRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "UPDATE contacts SET is_read = true WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("mark contact %s read: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Contacts) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Contacts) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM contacts WHERE is_read = false").Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread contacts: %w", err)
	}
	return n, nil
}
