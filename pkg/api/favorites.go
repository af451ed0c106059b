package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// FavoritesService is the mobile client's bookmarked-tours surface.
type FavoritesService struct {
	client *Client
}

type addFavoriteBody struct {
	TourID int64 `json:"tourId"`
}

// List returns a page of the authenticated client's favorites.
func (s *FavoritesService) List(ctx context.Context, page, size int) (model.Page[model.FavoriteTour], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))

	var result model.Page[model.FavoriteTour]
	err := s.client.do(ctx, http.MethodGet, "/favorites", v, nil, &result)
	return result, err
}

// Add bookmarks a tour.
func (s *FavoritesService) Add(ctx context.Context, tourID int64) (*model.FavoriteTour, error) {
	var fav model.FavoriteTour
	if err := s.client.do(ctx, http.MethodPost, "/favorites", nil, addFavoriteBody{TourID: tourID}, &fav); err != nil {
		return nil, err
	}
	return &fav, nil
}

// Remove drops a bookmark.
func (s *FavoritesService) Remove(ctx context.Context, tourID int64) error {
	return s.client.do(ctx, http.MethodDelete, "/favorites/"+intStr(tourID), nil, nil, nil)
}

// Check reports whether the tour is bookmarked.
func (s *FavoritesService) Check(ctx context.Context, tourID int64) (bool, error) {
	var resp model.IsFavorite
	if err := s.client.do(ctx, http.MethodGet, "/favorites/check/"+intStr(tourID), nil, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsFavorite, nil
}

// Count returns the number of bookmarks.
func (s *FavoritesService) Count(ctx context.Context) (int64, error) {
	var resp model.FavoritesCount
	if err := s.client.do(ctx, http.MethodGet, "/favorites/count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
