package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// ClientsService is the admin view of customer records.
type ClientsService struct {
	client *Client
}

// ClientsFilter is the client list filter. Search matches name and email.
type ClientsFilter struct {
	Search    string
	VIPStatus *bool
	Page      int
	Size      int
}

// Values serializes the filter into query parameters.
func (f ClientsFilter) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	size := f.Size
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.VIPStatus != nil {
		v.Set("vipStatus", strconv.FormatBool(*f.VIPStatus))
	}
	return v
}

// List returns a page of clients matching the filter.
func (s *ClientsService) List(ctx context.Context, filter ClientsFilter) (model.Page[model.Client], error) {
	var page model.Page[model.Client]
	err := s.client.do(ctx, http.MethodGet, "/admin/clients", filter.Values(), nil, &page)
	return page, err
}

// Get fetches one client by ID.
func (s *ClientsService) Get(ctx context.Context, id int64) (*model.Client, error) {
	var cl model.Client
	if err := s.client.do(ctx, http.MethodGet, "/admin/clients/"+intStr(id), nil, nil, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// Create adds a client record.
func (s *ClientsService) Create(ctx context.Context, cl model.Client) (*model.Client, error) {
	var created model.Client
	if err := s.client.do(ctx, http.MethodPost, "/admin/clients", nil, cl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the client with the given ID.
func (s *ClientsService) Update(ctx context.Context, id int64, cl model.Client) (*model.Client, error) {
	var updated model.Client
	if err := s.client.do(ctx, http.MethodPut, "/admin/clients/"+intStr(id), nil, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the client record.
func (s *ClientsService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, "/admin/clients/"+intStr(id), nil, nil, nil)
}

type vipStatusBody struct {
	VIPStatus bool `json:"vipStatus"`
}

// SetVIPStatus flips the VIP flag through a dedicated partial update. The
// backend touches only the flag, so a concurrent edit to other fields (notes,
// phone) cannot be lost the way a read-then-write full PUT could lose it.
func (s *ClientsService) SetVIPStatus(ctx context.Context, id int64, vip bool) (*model.Client, error) {
	var updated model.Client
	if err := s.client.do(ctx, http.MethodPatch, "/admin/clients/"+intStr(id)+"/vip", nil, vipStatusBody{VIPStatus: vip}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
