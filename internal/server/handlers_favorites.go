package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/api"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

func (s *Server) favoriteModel(r *http.Request, fav *database.Favorite) (model.FavoriteTour, error) {
	out := model.FavoriteTour{ID: fav.ID, TourID: fav.TourID}
	added := fav.AddedAt
	out.AddedAt = &added

	tour, err := s.db.Tours.Get(r.Context(), fav.TourID)
	if errors.Is(err, database.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return out, err
	}
	flightIDs, err := s.db.Tours.FlightIDs(r.Context(), tour.ID)
	if err != nil {
		return out, err
	}
	m := tour.ToModel(flightIDs)
	out.Tour = &m
	return out, nil
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, size := pageParams(r)

	favorites, total, err := s.db.Favorites.List(r.Context(), claims.UserID, page, size)
	if err != nil {
		s.log.Error().Err(err).Msg("Favorite listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	content := make([]model.FavoriteTour, 0, len(favorites))
	for i := range favorites {
		fav, err := s.favoriteModel(r, &favorites[i])
		if err != nil {
			s.log.Error().Err(err).Msg("Favorite join failed")
			s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		content = append(content, fav)
	}
	s.writeJSON(w, http.StatusOK, model.PageOf(content, total, page, size))
}

type addFavoriteBody struct {
	TourID int64 `json:"tourId"`
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var body addFavoriteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TourID <= 0 {
		s.writeError(w, r, http.StatusBadRequest, "A tour ID is required")
		return
	}

	if _, err := s.db.Tours.Get(r.Context(), body.TourID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, "Tour not found")
			return
		}
		s.log.Error().Err(err).Msg("Tour lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	fav, err := s.db.Favorites.Add(r.Context(), claims.UserID, body.TourID)
	if err != nil {
		s.log.Error().Err(err).Msg("Favorite insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	out, err := s.favoriteModel(r, fav)
	if err != nil {
		s.log.Error().Err(err).Msg("Favorite join failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	tourID, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}

	err := s.db.Favorites.Remove(r.Context(), claims.UserID, tourID)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Favorite not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Favorite delete failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckFavorite(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	tourID, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}

	exists, err := s.db.Favorites.Exists(r.Context(), claims.UserID, tourID)
	if err != nil {
		s.log.Error().Err(err).Msg("Favorite check failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, model.IsFavorite{IsFavorite: exists})
}

func (s *Server) handleCountFavorites(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	count, err := s.db.Favorites.Count(r.Context(), claims.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("Favorite count failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, model.FavoritesCount{Count: count})
}

const recommendationModelVersion = "heuristic-1"

// handleRecommendations scores active tours against the stated preferences.
// Scoring is rule-based; ties break on tour ID for stable output.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req api.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	tours, _, err := s.db.Tours.List(r.Context(), database.TourFilter{ActiveOnly: true, Size: 500})
	if err != nil {
		s.log.Error().Err(err).Msg("Tour listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	preferred := make(map[string]bool, len(req.PreferredDestinations))
	for _, d := range req.PreferredDestinations {
		preferred[strings.ToLower(d)] = true
	}

	recommendations := make([]api.TourRecommendation, 0, len(tours))
	for i := range tours {
		t := &tours[i]
		if req.MinPrice != nil && t.Price < *req.MinPrice {
			continue
		}
		if req.MaxPrice != nil && t.Price > *req.MaxPrice {
			continue
		}

		score := 0.5
		reasons := []string{}
		if len(preferred) > 0 && preferred[strings.ToLower(t.DestinationCity)] {
			score += 0.3
			reasons = append(reasons, "matches a preferred destination")
		}
		if req.PreferredDuration != nil {
			diff := t.DurationDays - *req.PreferredDuration
			if diff < 0 {
				diff = -diff
			}
			if diff <= 2 {
				score += 0.2
				reasons = append(reasons, "close to the preferred duration")
			}
		}
		reason := "popular active tour"
		if len(reasons) > 0 {
			reason = strings.Join(reasons, "; ")
		}

		recommendations = append(recommendations, api.TourRecommendation{
			TourID:      t.ID,
			TourName:    t.Name,
			Destination: t.DestinationCity,
			Price:       t.Price,
			Score:       score,
			Reason:      reason,
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].TourID < recommendations[j].TourID
	})
	if len(recommendations) > req.Limit {
		recommendations = recommendations[:req.Limit]
	}

	s.writeJSON(w, http.StatusOK, api.RecommendationResponse{
		Recommendations:    recommendations,
		TotalToursAnalyzed: len(tours),
		ModelVersion:       recommendationModelVersion,
	})
}
