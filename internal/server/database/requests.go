package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// RequestFilter narrows a request listing. Dates are ISO date strings
// bounding created_at inclusively. Unassigned selects rows with no employee.
type RequestFilter struct {
	Status     string
	Priority   string
	StartDate  string
	EndDate    string
	EmployeeID *int64
	UserID     *int64
	TourID     *int64
	Unassigned bool
	Page       int
	Size       int
}

// RequestRepository stores booking requests.
type RequestRepository struct {
	db *bun.DB
}

func NewRequestRepository(db *bun.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (f RequestFilter) apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.StartDate != "" {
		q = q.Where("date(created_at) >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date(created_at) <= ?", f.EndDate)
	}
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.TourID != nil {
		q = q.Where("tour_id = ?", *f.TourID)
	}
	if f.Unassigned {
		q = q.Where("employee_id IS NULL")
	}
	return q
}

// List returns one page of requests and the total match count, newest first.
func (r *RequestRepository) List(ctx context.Context, filter RequestFilter) ([]ClientRequest, int64, error) {
	var requests []ClientRequest
	q := filter.apply(r.db.NewSelect().Model(&requests))

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

	err = q.Order("created_at DESC", "id DESC").Limit(size).Offset(page * size).Scan(ctx)
	if err != nil {
		return nil, 0, err
	}
	return requests, int64(count), nil
}

// Get returns one request by ID.
func (r *RequestRepository) Get(ctx context.Context, id int64) (*ClientRequest, error) {
	req := new(ClientRequest)
	err := r.db.NewSelect().Model(req).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Create inserts the request and fills its ID.
func (r *RequestRepository) Create(ctx context.Context, req *ClientRequest) error {
	req.CreatedAt = time.Now().UTC()
	_, err := r.db.NewInsert().Model(req).Exec(ctx)
	return err
}

// UpdateStatus sets the request's status and employee assignment.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status string, employeeID *int64) error {
	res, err := r.db.NewUpdate().
		Model((*ClientRequest)(nil)).
		Set("status = ?", status).
		Set("employee_id = ?", employeeID).
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

// TakeUnassigned assigns an unassigned request to the employee and moves it
// to IN_PROGRESS. The WHERE guard makes the claim atomic: two employees
// racing for the same request cannot both win.
func (r *RequestRepository) TakeUnassigned(ctx context.Context, id, employeeID int64, status string) (bool, error) {
	res, err := r.db.NewUpdate().
		Model((*ClientRequest)(nil)).
		Set("status = ?", status).
		Set("employee_id = ?", employeeID).
		Where("id = ?", id).
		Where("employee_id IS NULL").
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CountByStatus returns request counts grouped by status.
func (r *RequestRepository) CountByStatus(ctx context.Context, startDate, endDate string) (map[string]int64, error) {
	var rows []struct {
		Status string `bun:"status"`
		Count  int64  `bun:"count"`
	}
	q := r.db.NewSelect().
		Model((*ClientRequest)(nil)).
		ColumnExpr("status").
		ColumnExpr("count(*) AS count").
		Group("status")
	if startDate != "" {
		q = q.Where("date(created_at) >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date(created_at) <= ?", endDate)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountByDate returns daily request counts over the range, oldest first.
func (r *RequestRepository) CountByDate(ctx context.Context, startDate, endDate string) ([]DateCount, error) {
	var rows []DateCount
	q := r.db.NewSelect().
		Model((*ClientRequest)(nil)).
		ColumnExpr("date(created_at) AS date").
		ColumnExpr("count(*) AS count").
		GroupExpr("date(created_at)").
		OrderExpr("date(created_at) ASC")
	if startDate != "" {
		q = q.Where("date(created_at) >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date(created_at) <= ?", endDate)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DateCount is one day of the requests-over-time series.
type DateCount struct {
	Date  string `bun:"date"`
	Count int64  `bun:"count"`
}

// CountByClientEmail counts requests per customer email, for the client
// list's totalRequests column.
func (r *RequestRepository) CountByClientEmail(ctx context.Context, emails []string) (map[string]int64, error) {
	counts := make(map[string]int64)
	if len(emails) == 0 {
		return counts, nil
	}
	var rows []struct {
		Email string `bun:"user_email"`
		Count int64  `bun:"count"`
	}
	err := r.db.NewSelect().
		Model((*ClientRequest)(nil)).
		ColumnExpr("user_email").
		ColumnExpr("count(*) AS count").
		Where("user_email IN (?)", bun.In(emails)).
		Group("user_email").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.Email] = row.Count
	}
	return counts, nil
}
