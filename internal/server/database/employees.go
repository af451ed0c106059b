package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// EmployeeRepository stores staff records and computes sales aggregates.
type EmployeeRepository struct {
	db *bun.DB
}

func NewEmployeeRepository(db *bun.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns one page of employees, optionally filtered by active flag.
func (r *EmployeeRepository) List(ctx context.Context, active *bool, page, size int) ([]Employee, int64, error) {
	var employees []Employee
	q := r.db.NewSelect().Model(&employees)
	if active != nil {
		q = q.Where("active = ?", *active)
	}

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

	err = q.Order("id ASC").Limit(size).Offset(page * size).Scan(ctx)
	if err != nil {
		return nil, 0, err
	}
	return employees, int64(count), nil
}

// Get returns one employee by ID.
func (r *EmployeeRepository) Get(ctx context.Context, id int64) (*Employee, error) {
	emp := new(Employee)
	err := r.db.NewSelect().Model(emp).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// GetByUserID returns the employee linked to a login account.
func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID int64) (*Employee, error) {
	emp := new(Employee)
	err := r.db.NewSelect().Model(emp).Where("user_id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// Create inserts the employee and fills its ID.
func (r *EmployeeRepository) Create(ctx context.Context, emp *Employee) error {
	_, err := r.db.NewInsert().Model(emp).Exec(ctx)
	return err
}

// Update replaces the employee's fields.
func (r *EmployeeRepository) Update(ctx context.Context, emp *Employee) error {
	res, err := r.db.NewUpdate().Model(emp).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// NamesByID returns an employee-ID-to-name map for display joins.
func (r *EmployeeRepository) NamesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string)
	if len(ids) == 0 {
		return names, nil
	}
	var employees []Employee
	err := r.db.NewSelect().
		Model(&employees).
		Column("id", "first_name", "last_name").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}
	return names, nil
}

// SalesRow is one employee's completed-request aggregate.
type SalesRow struct {
	EmployeeID   int64   `bun:"employee_id"`
	TotalSales   int64   `bun:"total_sales"`
	TotalRevenue float64 `bun:"total_revenue"`
}

// Sales aggregates completed requests per employee over the range: a sale is
// a COMPLETED request, its revenue the price of the requested tour.
func (r *EmployeeRepository) Sales(ctx context.Context, employeeID *int64, startDate, endDate string) ([]SalesRow, error) {
	var rows []SalesRow
	q := r.db.NewSelect().
		TableExpr("client_requests AS cr").
		Join("JOIN tours AS t ON t.id = cr.tour_id").
		ColumnExpr("cr.employee_id").
		ColumnExpr("count(*) AS total_sales").
		ColumnExpr("coalesce(sum(t.price), 0) AS total_revenue").
		Where("cr.status = ?", "COMPLETED").
		Where("cr.employee_id IS NOT NULL").
		Group("cr.employee_id").
		OrderExpr("total_revenue DESC")
	if employeeID != nil {
		q = q.Where("cr.employee_id = ?", *employeeID)
	}
	if startDate != "" {
		q = q.Where("date(cr.created_at) >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date(cr.created_at) <= ?", endDate)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
