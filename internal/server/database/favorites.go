package database

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// FavoriteRepository stores per-account tour bookmarks.
type FavoriteRepository struct {
	db *bun.DB
}

func NewFavoriteRepository(db *bun.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// List returns one page of the account's bookmarks, newest first.
func (r *FavoriteRepository) List(ctx context.Context, userID int64, page, size int) ([]Favorite, int64, error) {
	var favorites []Favorite
	q := r.db.NewSelect().Model(&favorites).Where("user_id = ?", userID)

	count, err := q.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}

	err = q.Order("added_at DESC", "id DESC").Limit(size).Offset(page * size).Scan(ctx)
	if err != nil {
		return nil, 0, err
	}
	return favorites, int64(count), nil
}

// Add bookmarks a tour for the account. Adding twice is a no-op thanks to
// the unique (user_id, tour_id) index.
func (r *FavoriteRepository) Add(ctx context.Context, userID, tourID int64) (*Favorite, error) {
	fav := &Favorite{UserID: userID, TourID: tourID, AddedAt: time.Now().UTC()}
	_, err := r.db.NewInsert().
		Model(fav).
		On("CONFLICT (user_id, tour_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return fav, nil
}

// Remove drops the bookmark.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, tourID int64) error {
	res, err := r.db.NewDelete().
		Model((*Favorite)(nil)).
		Where("user_id = ?", userID).
		Where("tour_id = ?", tourID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether the account bookmarked the tour.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, tourID int64) (bool, error) {
	return r.db.NewSelect().
		Model((*Favorite)(nil)).
		Where("user_id = ?", userID).
		Where("tour_id = ?", tourID).
		Exists(ctx)
}

// Count returns the number of the account's bookmarks.
func (r *FavoriteRepository) Count(ctx context.Context, userID int64) (int64, error) {
	count, err := r.db.NewSelect().
		Model((*Favorite)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	return int64(count), err
}
