package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// FlightRepository stores flights.
type FlightRepository struct {
	db *bun.DB
}

func NewFlightRepository(db *bun.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// List returns one page of flights and the total count.
func (r *FlightRepository) List(ctx context.Context, page, size int) ([]Flight, int64, error) {
	var flights []Flight
	q := r.db.NewSelect().Model(&flights)

	count, err := q.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if size <= 0 {
		size = 100
	}
	if page < 0 {
		page = 0
	}

	err = q.Order("flight_id ASC").Limit(size).Offset(page * size).Scan(ctx)
	if err != nil {
		return nil, 0, err
	}
	return flights, int64(count), nil
}

// SearchByAirports returns flights between two airport codes.
func (r *FlightRepository) SearchByAirports(ctx context.Context, departure, arrival string, page, size int) ([]Flight, int64, error) {
	var flights []Flight
	q := r.db.NewSelect().
		Model(&flights).
		Where("departure_airport_code = ?", departure).
		Where("arrival_airport_code = ?", arrival)

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

	err = q.Order("scheduled_departure ASC").Limit(size).Offset(page * size).Scan(ctx)
	if err != nil {
		return nil, 0, err
	}
	return flights, int64(count), nil
}

// Get returns one flight by ID.
func (r *FlightRepository) Get(ctx context.Context, id int64) (*Flight, error) {
	flight := new(Flight)
	err := r.db.NewSelect().Model(flight).Where("flight_id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return flight, nil
}

// ByIDs returns the flights with the given IDs, in ID order.
func (r *FlightRepository) ByIDs(ctx context.Context, ids []int64) ([]Flight, error) {
	if len(ids) == 0 {
		return []Flight{}, nil
	}
	var flights []Flight
	err := r.db.NewSelect().
		Model(&flights).
		Where("flight_id IN (?)", bun.In(ids)).
		Order("flight_id ASC").
		Scan(ctx)
	return flights, err
}

// Create inserts the flight and fills its ID.
func (r *FlightRepository) Create(ctx context.Context, flight *Flight) error {
	_, err := r.db.NewInsert().Model(flight).Exec(ctx)
	return err
}

// Update replaces the flight's fields.
func (r *FlightRepository) Update(ctx context.Context, flight *Flight) error {
	res, err := r.db.NewUpdate().Model(flight).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
