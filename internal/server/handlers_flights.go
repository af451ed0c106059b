package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

func flightModels(flights []database.Flight) []model.Flight {
	result := make([]model.Flight, 0, len(flights))
	for i := range flights {
		result = append(result, flights[i].ToModel())
	}
	return result
}

func (s *Server) handleListFlights(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 100)

	flights, total, err := s.db.Flights.List(r.Context(), page, size)
	if err != nil {
		s.log.Error().Err(err).Msg("Flight listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, model.PageOf(flightModels(flights), total, page, size))
}

func (s *Server) handleSearchFlights(w http.ResponseWriter, r *http.Request) {
	departure := r.URL.Query().Get("departure")
	arrival := r.URL.Query().Get("arrival")
	if departure == "" || arrival == "" {
		s.writeError(w, r, http.StatusBadRequest, "departure and arrival airport codes are required")
		return
	}
	page, size := pageParams(r)

	flights, total, err := s.db.Flights.SearchByAirports(r.Context(), departure, arrival, page, size)
	if err != nil {
		s.log.Error().Err(err).Msg("Flight search failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, model.PageOf(flightModels(flights), total, page, size))
}

func (s *Server) decodeFlight(w http.ResponseWriter, r *http.Request) (*model.Flight, bool) {
	var m model.Flight
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if m.FlightNo == "" {
		s.writeError(w, r, http.StatusBadRequest, "Flight number is required")
		return nil, false
	}
	if m.DepartureAirportCode == "" || m.ArrivalAirportCode == "" {
		s.writeError(w, r, http.StatusBadRequest, "Departure and arrival airport codes are required")
		return nil, false
	}
	if !m.ScheduledArrival.After(m.ScheduledDeparture) {
		s.writeError(w, r, http.StatusBadRequest, "Scheduled arrival must be after departure")
		return nil, false
	}
	return &m, true
}

func (s *Server) handleCreateFlight(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeFlight(w, r)
	if !ok {
		return
	}

	flight := new(database.Flight)
	flight.ApplyModel(*m)
	if err := s.db.Flights.Create(r.Context(), flight); err != nil {
		s.log.Error().Err(err).Msg("Flight insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("flight_id", flight.FlightID).Str("flight_no", flight.FlightNo).Msg("Flight created")
	s.writeJSON(w, http.StatusCreated, flight.ToModel())
}

func (s *Server) handleUpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	m, ok := s.decodeFlight(w, r)
	if !ok {
		return
	}

	flight, err := s.db.Flights.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Flight not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Flight lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	flight.ApplyModel(*m)
	if err := s.db.Flights.Update(r.Context(), flight); err != nil {
		s.log.Error().Err(err).Msg("Flight update failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, flight.ToModel())
}
