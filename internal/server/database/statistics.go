package database

import "context"

// PriceStats is the tour price aggregate.
type PriceStats struct {
	Avg float64 `bun:"avg_price"`
	Min float64 `bun:"min_price"`
	Max float64 `bun:"max_price"`
}

// DestinationRow is the per-destination tour/request aggregate.
type DestinationRow struct {
	Destination  string `bun:"destination"`
	TourCount    int64  `bun:"tour_count"`
	RequestCount int64  `bun:"request_count"`
}

// TourCounts returns total and active tour counts.
func (r *TourRepository) TourCounts(ctx context.Context) (total, active int64, err error) {
	t, err := r.db.NewSelect().Model((*Tour)(nil)).Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	a, err := r.db.NewSelect().Model((*Tour)(nil)).Where("active = ?", true).Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	return int64(t), int64(a), nil
}

// PriceStats returns the average, minimum and maximum tour price.
func (r *TourRepository) PriceStats(ctx context.Context) (PriceStats, error) {
	var stats PriceStats
	err := r.db.NewSelect().
		Model((*Tour)(nil)).
		ColumnExpr("coalesce(avg(price), 0) AS avg_price").
		ColumnExpr("coalesce(min(price), 0) AS min_price").
		ColumnExpr("coalesce(max(price), 0) AS max_price").
		Scan(ctx, &stats)
	return stats, err
}

// TopDestinations ranks destinations by request volume, tours as tiebreak.
func (r *TourRepository) TopDestinations(ctx context.Context, limit int) ([]DestinationRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []DestinationRow
	err := r.db.NewSelect().
		TableExpr("tours AS t").
		ColumnExpr("t.destination_city AS destination").
		ColumnExpr("count(DISTINCT t.id) AS tour_count").
		ColumnExpr("count(cr.id) AS request_count").
		Join("LEFT JOIN client_requests AS cr ON cr.tour_id = t.id").
		GroupExpr("t.destination_city").
		OrderExpr("request_count DESC, tour_count DESC").
		Limit(limit).
		Scan(ctx, &rows)
	return rows, err
}
