package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

func tourFilterFromQuery(r *http.Request, activeOnly bool) database.TourFilter {
	page, size := pageParams(r)
	filter := database.TourFilter{
		Destination: r.URL.Query().Get("destination"),
		ActiveOnly:  activeOnly,
		Page:        page,
		Size:        size,
	}
	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	return filter
}

func (s *Server) listTours(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	filter := tourFilterFromQuery(r, activeOnly)

	tours, total, err := s.db.Tours.List(r.Context(), filter)
	if err != nil {
		s.log.Error().Err(err).Msg("Tour listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	content := make([]model.Tour, 0, len(tours))
	for i := range tours {
		flightIDs, err := s.db.Tours.FlightIDs(r.Context(), tours[i].ID)
		if err != nil {
			s.log.Error().Err(err).Msg("Tour flight lookup failed")
			s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		content = append(content, tours[i].ToModel(flightIDs))
	}

	s.writeJSON(w, http.StatusOK, model.PageOf(content, total, filter.Page, filter.Size))
}

func (s *Server) handleAdminTours(w http.ResponseWriter, r *http.Request) {
	s.listTours(w, r, false)
}

func (s *Server) handlePublicTours(w http.ResponseWriter, r *http.Request) {
	s.listTours(w, r, true)
}

func (s *Server) handleGetTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}

	tour, err := s.db.Tours.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Tour not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Tour lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	flightIDs, err := s.db.Tours.FlightIDs(r.Context(), tour.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("Tour flight lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, tour.ToModel(flightIDs))
}

func (s *Server) decodeTour(w http.ResponseWriter, r *http.Request) (*model.Tour, bool) {
	var m model.Tour
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if m.Name == "" {
		s.writeError(w, r, http.StatusBadRequest, "Tour name is required")
		return nil, false
	}
	if m.DestinationCity == "" {
		s.writeError(w, r, http.StatusBadRequest, "Destination city is required")
		return nil, false
	}
	if m.Price < 0 {
		s.writeError(w, r, http.StatusBadRequest, "Price must not be negative")
		return nil, false
	}
	return &m, true
}

func (s *Server) handleCreateTour(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeTour(w, r)
	if !ok {
		return
	}

	tour := new(database.Tour)
	tour.ApplyModel(*m)
	if err := s.db.Tours.Create(r.Context(), tour, m.FlightIDs); err != nil {
		s.log.Error().Err(err).Msg("Tour insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("tour_id", tour.ID).Str("name", tour.Name).Msg("Tour created")
	s.writeJSON(w, http.StatusCreated, tour.ToModel(m.FlightIDs))
}

func (s *Server) handleUpdateTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}

	m, ok := s.decodeTour(w, r)
	if !ok {
		return
	}

	tour, err := s.db.Tours.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Tour not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Tour lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	tour.ApplyModel(*m)
	if err := s.db.Tours.Update(r.Context(), tour, m.FlightIDs); err != nil {
		s.log.Error().Err(err).Msg("Tour update failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, tour.ToModel(m.FlightIDs))
}

func (s *Server) handleDeleteTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}

	err := s.db.Tours.Delete(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Tour not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Tour delete failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("tour_id", id).Msg("Tour deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTourFlights(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}

	if _, err := s.db.Tours.Get(r.Context(), id); errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Tour not found")
		return
	} else if err != nil {
		s.log.Error().Err(err).Msg("Tour lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	flightIDs, err := s.db.Tours.FlightIDs(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("Tour flight lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	flights, err := s.db.Flights.ByIDs(r.Context(), flightIDs)
	if err != nil {
		s.log.Error().Err(err).Msg("Flight lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]model.Flight, 0, len(flights))
	for i := range flights {
		result = append(result, flights[i].ToModel())
	}
	s.writeJSON(w, http.StatusOK, result)
}
