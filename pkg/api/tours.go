package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// ToursService covers the tour catalogue: admin CRUD under /admin/tours and
// the public read surface under /tours used by the mobile client.
type ToursService struct {
	client *Client
}

// ToursFilter is the tour list filter. Zero-valued optional fields are
// omitted from the query string.
type ToursFilter struct {
	Destination string
	MinPrice    *float64
	MaxPrice    *float64
	Page        int
	Size        int
}

// Values serializes the filter into query parameters.
func (f ToursFilter) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	size := f.Size
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	if f.Destination != "" {
		v.Set("destination", f.Destination)
	}
	if f.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	return v
}

// List returns a page of tours from the admin surface.
func (s *ToursService) List(ctx context.Context, filter ToursFilter) (model.Page[model.Tour], error) {
	var page model.Page[model.Tour]
	err := s.client.do(ctx, http.MethodGet, "/admin/tours", filter.Values(), nil, &page)
	return page, err
}

// ListPublic returns a page of active tours from the public surface.
func (s *ToursService) ListPublic(ctx context.Context, filter ToursFilter) (model.Page[model.Tour], error) {
	var page model.Page[model.Tour]
	err := s.client.do(ctx, http.MethodGet, "/tours", filter.Values(), nil, &page)
	return page, err
}

// Get fetches one tour by ID from the public surface.
func (s *ToursService) Get(ctx context.Context, id int64) (*model.Tour, error) {
	var tour model.Tour
	if err := s.client.do(ctx, http.MethodGet, "/tours/"+intStr(id), nil, nil, &tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

// Create adds a tour. The backend assigns ID and timestamps.
func (s *ToursService) Create(ctx context.Context, tour model.Tour) (*model.Tour, error) {
	var created model.Tour
	if err := s.client.do(ctx, http.MethodPost, "/admin/tours", nil, tour, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the tour with the given ID.
func (s *ToursService) Update(ctx context.Context, id int64, tour model.Tour) (*model.Tour, error) {
	var updated model.Tour
	if err := s.client.do(ctx, http.MethodPut, "/admin/tours/"+intStr(id), nil, tour, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the tour. Hard delete on the backend.
func (s *ToursService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, "/admin/tours/"+intStr(id), nil, nil, nil)
}

// FlightsFor lists the flights attached to a tour.
func (s *ToursService) FlightsFor(ctx context.Context, tourID int64) ([]model.Flight, error) {
	var flights []model.Flight
	err := s.client.do(ctx, http.MethodGet, "/tours/"+intStr(tourID)+"/flights", nil, nil, &flights)
	return flights, err
}

// RequestBooking submits a booking request for a tour (mobile flow).
func (s *ToursService) RequestBooking(ctx context.Context, tourID int64, req model.ClientRequest) (*model.ClientRequest, error) {
	var created model.ClientRequest
	if err := s.client.do(ctx, http.MethodPost, "/tours/"+intStr(tourID)+"/request", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MyRequests lists the authenticated client's own booking requests.
func (s *ToursService) MyRequests(ctx context.Context, page, size int) (model.Page[model.ClientRequest], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	var result model.Page[model.ClientRequest]
	err := s.client.do(ctx, http.MethodGet, "/client/requests", v, nil, &result)
	return result, err
}
