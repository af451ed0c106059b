package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// TourFilter narrows a tour listing. ActiveOnly hides unpublished tours on
// the public surface.
type TourFilter struct {
	Destination string
	MinPrice    *float64
	MaxPrice    *float64
	ActiveOnly  bool
	Page        int
	Size        int
}

// TourRepository stores tours and their flight attachments.
type TourRepository struct {
	db *bun.DB
}

func NewTourRepository(db *bun.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (f TourFilter) apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.Destination != "" {
		q = q.Where("destination_city = ?", f.Destination)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	return q
}

// List returns one page of tours and the total match count.
func (r *TourRepository) List(ctx context.Context, filter TourFilter) ([]Tour, int64, error) {
	var tours []Tour
	q := filter.apply(r.db.NewSelect().Model(&tours))

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
	return tours, int64(count), nil
}

// Get returns one tour by ID.
func (r *TourRepository) Get(ctx context.Context, id int64) (*Tour, error) {
	tour := new(Tour)
	err := r.db.NewSelect().Model(tour).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tour, nil
}

// Create inserts the tour and attaches the given flights.
func (r *TourRepository) Create(ctx context.Context, tour *Tour, flightIDs []int64) error {
	now := time.Now().UTC()
	tour.CreatedAt = now
	tour.UpdatedAt = now
	if _, err := r.db.NewInsert().Model(tour).Exec(ctx); err != nil {
		return err
	}
	return r.SetFlights(ctx, tour.ID, flightIDs)
}

// Update replaces the tour's fields and flight attachments.
func (r *TourRepository) Update(ctx context.Context, tour *Tour, flightIDs []int64) error {
	tour.UpdatedAt = time.Now().UTC()
	res, err := r.db.NewUpdate().
		Model(tour).
		WherePK().
		ExcludeColumn("created_at").
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return r.SetFlights(ctx, tour.ID, flightIDs)
}

// Delete removes the tour and its flight attachments.
func (r *TourRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*Tour)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = r.db.NewDelete().Model((*TourFlight)(nil)).Where("tour_id = ?", id).Exec(ctx)
	return err
}

// FlightIDs returns the IDs of the flights attached to a tour.
func (r *TourRepository) FlightIDs(ctx context.Context, tourID int64) ([]int64, error) {
	var links []TourFlight
	err := r.db.NewSelect().Model(&links).Where("tour_id = ?", tourID).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.FlightID)
	}
	return ids, nil
}

// SetFlights replaces the tour's flight attachments.
func (r *TourRepository) SetFlights(ctx context.Context, tourID int64, flightIDs []int64) error {
	if _, err := r.db.NewDelete().Model((*TourFlight)(nil)).Where("tour_id = ?", tourID).Exec(ctx); err != nil {
		return err
	}
	if len(flightIDs) == 0 {
		return nil
	}
	links := make([]TourFlight, 0, len(flightIDs))
	for _, id := range flightIDs {
		links = append(links, TourFlight{TourID: tourID, FlightID: id})
	}
	_, err := r.db.NewInsert().Model(&links).Exec(ctx)
	return err
}

// NamesByID returns a tour-ID-to-name map for display joins.
func (r *TourRepository) NamesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string)
	if len(ids) == 0 {
		return names, nil
	}
	var tours []Tour
	err := r.db.NewSelect().
		Model(&tours).
		Column("id", "name").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tours {
		names[t.ID] = t.Name
	}
	return names, nil
}
