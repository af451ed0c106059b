package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// FlightsService wraps the flight routes. The paths are uneven
// (/flights/add, /flights/update/{id}) because the backend kept them that
// way; the client mirrors the contract rather than prettifying it.
type FlightsService struct {
	client *Client
}

// List returns a page of flights.
func (s *FlightsService) List(ctx context.Context, page, size int) (model.Page[model.Flight], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 100
	}
	v.Set("size", strconv.Itoa(size))

	var result model.Page[model.Flight]
	err := s.client.do(ctx, http.MethodGet, "/flights", v, nil, &result)
	return result, err
}

// SearchByAirports returns flights between two airport codes.
func (s *FlightsService) SearchByAirports(ctx context.Context, departure, arrival string, page int) (model.Page[model.Flight], error) {
	v := url.Values{}
	v.Set("departure", departure)
	v.Set("arrival", arrival)
	v.Set("page", strconv.Itoa(page))

	var result model.Page[model.Flight]
	err := s.client.do(ctx, http.MethodGet, "/flights/search/by-airports", v, nil, &result)
	return result, err
}

// Create adds a flight.
func (s *FlightsService) Create(ctx context.Context, flight model.Flight) error {
	return s.client.do(ctx, http.MethodPost, "/flights/add", nil, flight, nil)
}

// Update replaces the flight with the given ID.
func (s *FlightsService) Update(ctx context.Context, flightID int64, flight model.Flight) error {
	return s.client.do(ctx, http.MethodPut, "/flights/update/"+intStr(flightID), nil, flight, nil)
}
