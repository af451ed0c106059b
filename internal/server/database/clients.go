package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ClientFilter narrows a client listing. Search matches first name, last
// name and email, case-insensitively.
type ClientFilter struct {
	Search    string
	VIPStatus *bool
	Page      int
	Size      int
}

// ClientRepository stores customer records.
type ClientRepository struct {
	db *bun.DB
}

func NewClientRepository(db *bun.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (f ClientFilter) apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("first_name LIKE ?", pattern).
				WhereOr("last_name LIKE ?", pattern).
				WhereOr("email LIKE ?", pattern)
		})
	}
	if f.VIPStatus != nil {
		q = q.Where("vip_status = ?", *f.VIPStatus)
	}
	return q
}

// List returns one page of clients and the total match count.
func (r *ClientRepository) List(ctx context.Context, filter ClientFilter) ([]Client, int64, error) {
	var clients []Client
	q := filter.apply(r.db.NewSelect().Model(&clients))

	count, err := q.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	size := filter.Size
	if size <= 0 {
		size = 20
	}
	page := filter.Page
	if page < 0 {
		page = 0
	}

	err = q.Order("id ASC").Limit(size).Offset(page * size).Scan(ctx)
	if err != nil {
		return nil, 0, err
	}
	return clients, int64(count), nil
}

// Get returns one client by ID.
func (r *ClientRepository) Get(ctx context.Context, id int64) (*Client, error) {
	client := new(Client)
	err := r.db.NewSelect().Model(client).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Create inserts the client and fills its ID.
func (r *ClientRepository) Create(ctx context.Context, client *Client) error {
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	_, err := r.db.NewInsert().Model(client).Exec(ctx)
	return err
}

// Update replaces the client's fields except the VIP flag, which has its own
// partial update.
func (r *ClientRepository) Update(ctx context.Context, client *Client) error {
	client.UpdatedAt = time.Now().UTC()
	res, err := r.db.NewUpdate().
		Model(client).
		WherePK().
		ExcludeColumn("created_at", "vip_status").
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the client record.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*Client)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetVIPStatus updates only the VIP flag. A concurrent full update of the
// other fields cannot race with it.
func (r *ClientRepository) SetVIPStatus(ctx context.Context, id int64, vip bool) error {
	res, err := r.db.NewUpdate().
		Model((*Client)(nil)).
		Set("vip_status = ?", vip).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
