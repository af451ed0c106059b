package api

import (
	"context"
	"net/http"
)

// RecommendationsService proxies the ML recommendation endpoint used by the
// mobile home screen.
type RecommendationsService struct {
	client *Client
}

// RecommendationRequest narrows the recommendation candidates. All filter
// fields are optional; Limit defaults to 5 server-side.
type RecommendationRequest struct {
	UserID                *int64   `json:"user_id,omitempty"`
	PreferredDestinations []string `json:"preferred_destinations,omitempty"`
	MinPrice              *float64 `json:"min_price,omitempty"`
	MaxPrice              *float64 `json:"max_price,omitempty"`
	PreferredDuration     *int     `json:"preferred_duration,omitempty"`
	Limit                 int      `json:"limit,omitempty"`
}

// TourRecommendation is one scored suggestion.
type TourRecommendation struct {
	TourID      int64   `json:"tour_id"`
	TourName    string  `json:"tour_name"`
	Destination string  `json:"destination"`
	Price       float64 `json:"price"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}

// RecommendationResponse is the scored suggestion list.
type RecommendationResponse struct {
	Recommendations    []TourRecommendation `json:"recommendations"`
	TotalToursAnalyzed int                  `json:"total_tours_analyzed"`
	ModelVersion       string               `json:"model_version,omitempty"`
}

// Get returns tour recommendations for the given preferences.
func (s *RecommendationsService) Get(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error) {
	var resp RecommendationResponse
	if err := s.client.do(ctx, http.MethodPost, "/recommendations", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
