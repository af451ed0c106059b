package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// EmployeesService is the admin view of staff accounts and their sales.
type EmployeesService struct {
	client *Client
}

// SalesRange bounds a sales aggregate by ISO dates; both fields optional.
type SalesRange struct {
	StartDate string
	EndDate   string
}

// Values serializes the range into query parameters.
func (r SalesRange) Values() url.Values {
	v := url.Values{}
	if r.StartDate != "" {
		v.Set("startDate", r.StartDate)
	}
	if r.EndDate != "" {
		v.Set("endDate", r.EndDate)
	}
	return v
}

// List returns a page of employees, optionally filtered by active flag.
func (s *EmployeesService) List(ctx context.Context, active *bool, page, size int) (model.Page[model.Employee], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	if active != nil {
		v.Set("active", strconv.FormatBool(*active))
	}

	var result model.Page[model.Employee]
	err := s.client.do(ctx, http.MethodGet, "/admin/employees", v, nil, &result)
	return result, err
}

// Get fetches one employee by ID.
func (s *EmployeesService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	var emp model.Employee
	if err := s.client.do(ctx, http.MethodGet, "/admin/employees/"+intStr(id), nil, nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// Create adds a staff account.
func (s *EmployeesService) Create(ctx context.Context, emp model.Employee) (*model.Employee, error) {
	var created model.Employee
	if err := s.client.do(ctx, http.MethodPost, "/admin/employees", nil, emp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the employee with the given ID.
func (s *EmployeesService) Update(ctx context.Context, id int64, emp model.Employee) (*model.Employee, error) {
	var updated model.Employee
	if err := s.client.do(ctx, http.MethodPut, "/admin/employees/"+intStr(id), nil, emp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Sales returns one employee's sales aggregate over the range.
func (s *EmployeesService) Sales(ctx context.Context, id int64, r SalesRange) (*model.EmployeeSales, error) {
	var sales model.EmployeeSales
	if err := s.client.do(ctx, http.MethodGet, "/admin/employees/"+intStr(id)+"/sales", r.Values(), nil, &sales); err != nil {
		return nil, err
	}
	return &sales, nil
}

// AllSales returns the paged sales aggregates of all employees.
func (s *EmployeesService) AllSales(ctx context.Context, r SalesRange, page, size int) (model.Page[model.EmployeeSales], error) {
	v := r.Values()
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))

	var result model.Page[model.EmployeeSales]
	err := s.client.do(ctx, http.MethodGet, "/admin/employees/sales", v, nil, &result)
	return result, err
}

// EmployeeDeskService is the employee self-service surface: own profile,
// the request queue, and own sales.
type EmployeeDeskService struct {
	client *Client
}

// Profile returns the authenticated employee's own record.
func (s *EmployeeDeskService) Profile(ctx context.Context) (*model.Employee, error) {
	var emp model.Employee
	if err := s.client.do(ctx, http.MethodGet, "/employee/profile", nil, nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// MyRequests lists requests assigned to the authenticated employee.
func (s *EmployeeDeskService) MyRequests(ctx context.Context, status string, page, size int) (model.Page[model.ClientRequest], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	if status != "" {
		v.Set("status", status)
	}

	var result model.Page[model.ClientRequest]
	err := s.client.do(ctx, http.MethodGet, "/employee/requests", v, nil, &result)
	return result, err
}

// AvailableRequests lists unassigned requests employees can take.
func (s *EmployeeDeskService) AvailableRequests(ctx context.Context, status string, page, size int) (model.Page[model.ClientRequest], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	if status != "" {
		v.Set("status", status)
	}

	var result model.Page[model.ClientRequest]
	err := s.client.do(ctx, http.MethodGet, "/employee/requests/available", v, nil, &result)
	return result, err
}

// Take assigns an unassigned request to the authenticated employee and moves
// it to IN_PROGRESS.
func (s *EmployeeDeskService) Take(ctx context.Context, requestID int64) (*model.ClientRequest, error) {
	var taken model.ClientRequest
	if err := s.client.do(ctx, http.MethodPatch, "/employee/requests/"+intStr(requestID)+"/take", nil, nil, &taken); err != nil {
		return nil, err
	}
	return &taken, nil
}

// UpdateStatus moves one of the employee's own requests through its
// lifecycle.
func (s *EmployeeDeskService) UpdateStatus(ctx context.Context, requestID int64, status string) (*model.ClientRequest, error) {
	v := url.Values{}
	v.Set("status", status)

	var updated model.ClientRequest
	if err := s.client.do(ctx, http.MethodPatch, "/employee/requests/"+intStr(requestID)+"/status", v, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MySales returns the authenticated employee's sales aggregate.
func (s *EmployeeDeskService) MySales(ctx context.Context, r SalesRange) (*model.EmployeeSales, error) {
	var sales model.EmployeeSales
	if err := s.client.do(ctx, http.MethodGet, "/employee/sales", r.Values(), nil, &sales); err != nil {
		return nil, err
	}
	return &sales, nil
}
