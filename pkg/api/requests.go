package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// RequestsService covers the admin view of client booking requests.
type RequestsService struct {
	client *Client
}

// RequestsFilter is the request list filter. Dates are ISO date strings
// (2006-01-02) bounding CreatedAt inclusively.
type RequestsFilter struct {
	Status    string
	Priority  string
	StartDate string
	EndDate   string
	Page      int
	Size      int
}

// Values serializes the filter into query parameters.
func (f RequestsFilter) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	size := f.Size
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Priority != "" {
		v.Set("priority", f.Priority)
	}
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	return v
}

// List returns a page of requests matching the filter.
func (s *RequestsService) List(ctx context.Context, filter RequestsFilter) (model.Page[model.ClientRequest], error) {
	var page model.Page[model.ClientRequest]
	err := s.client.do(ctx, http.MethodGet, "/admin/requests", filter.Values(), nil, &page)
	return page, err
}

// Get fetches one request by ID.
func (s *RequestsService) Get(ctx context.Context, id int64) (*model.ClientRequest, error) {
	var req model.ClientRequest
	if err := s.client.do(ctx, http.MethodGet, "/admin/requests/"+intStr(id), nil, nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Create files a request on a client's behalf (admin flow).
func (s *RequestsService) Create(ctx context.Context, req model.ClientRequest) (*model.ClientRequest, error) {
	var created model.ClientRequest
	if err := s.client.do(ctx, http.MethodPost, "/admin/requests", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus moves a request through its lifecycle, optionally assigning
// an employee. The backend rejects an assignment unless the new status is
// IN_PROGRESS or COMPLETED.
func (s *RequestsService) UpdateStatus(ctx context.Context, id int64, status string, employeeID *int64) (*model.ClientRequest, error) {
	v := url.Values{}
	v.Set("status", status)
	if employeeID != nil {
		v.Set("employeeId", intStr(*employeeID))
	}

	var updated model.ClientRequest
	if err := s.client.do(ctx, http.MethodPatch, "/admin/requests/"+intStr(id)+"/status", v, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ByTour returns the requests filed against one tour.
func (s *RequestsService) ByTour(ctx context.Context, tourID int64, page, size int) (model.Page[model.ClientRequest], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))

	var result model.Page[model.ClientRequest]
	err := s.client.do(ctx, http.MethodGet, "/admin/requests/tour/"+intStr(tourID), v, nil, &result)
	return result, err
}
