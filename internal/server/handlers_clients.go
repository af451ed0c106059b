package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size := pageParams(r)

	filter := database.ClientFilter{
		Search: q.Get("search"),
		Page:   page,
		Size:   size,
	}
	if raw := q.Get("vipStatus"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, "Invalid vipStatus flag")
			return
		}
		filter.VIPStatus = &v
	}

	clients, total, err := s.db.Clients.List(r.Context(), filter)
	if err != nil {
		s.log.Error().Err(err).Msg("Client listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	emails := make([]string, 0, len(clients))
	for i := range clients {
		emails = append(emails, clients[i].Email)
	}
	requestCounts, err := s.db.Requests.CountByClientEmail(r.Context(), emails)
	if err != nil {
		s.log.Error().Err(err).Msg("Request count failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	content := make([]model.Client, 0, len(clients))
	for i := range clients {
		content = append(content, clients[i].ToModel(requestCounts[clients[i].Email]))
	}
	s.writeJSON(w, http.StatusOK, model.PageOf(content, total, page, size))
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid client ID")
		return
	}

	client, err := s.db.Clients.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Client not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Client lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	counts, err := s.db.Requests.CountByClientEmail(r.Context(), []string{client.Email})
	if err != nil {
		s.log.Error().Err(err).Msg("Request count failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, client.ToModel(counts[client.Email]))
}

func (s *Server) decodeClient(w http.ResponseWriter, r *http.Request) (*model.Client, bool) {
	var m model.Client
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if m.FirstName == "" || m.LastName == "" {
		s.writeError(w, r, http.StatusBadRequest, "First and last name are required")
		return nil, false
	}
	if !strings.Contains(m.Email, "@") {
		s.writeError(w, r, http.StatusBadRequest, "A valid email address is required")
		return nil, false
	}
	return &m, true
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeClient(w, r)
	if !ok {
		return
	}

	client := new(database.Client)
	client.ApplyModel(*m)
	client.VIPStatus = m.VIPStatus
	if err := s.db.Clients.Create(r.Context(), client); err != nil {
		s.log.Error().Err(err).Msg("Client insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("client_id", client.ID).Msg("Client created")
	s.writeJSON(w, http.StatusCreated, client.ToModel(0))
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid client ID")
		return
	}

	m, ok := s.decodeClient(w, r)
	if !ok {
		return
	}

	client, err := s.db.Clients.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Client not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Client lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The VIP flag is not writable here; it has its own PATCH.
	client.ApplyModel(*m)
	if err := s.db.Clients.Update(r.Context(), client); err != nil {
		s.log.Error().Err(err).Msg("Client update failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	counts, err := s.db.Requests.CountByClientEmail(r.Context(), []string{client.Email})
	if err != nil {
		s.log.Error().Err(err).Msg("Request count failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, client.ToModel(counts[client.Email]))
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid client ID")
		return
	}

	err := s.db.Clients.Delete(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Client not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Client delete failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("client_id", id).Msg("Client deleted")
	w.WriteHeader(http.StatusNoContent)
}

type vipBody struct {
	VIPStatus bool `json:"vipStatus"`
}

func (s *Server) handleSetClientVIP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid client ID")
		return
	}

	var body vipBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.db.Clients.SetVIPStatus(r.Context(), id, body.VIPStatus)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Client not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("VIP update failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	client, err := s.db.Clients.Get(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("Client lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	counts, err := s.db.Requests.CountByClientEmail(r.Context(), []string{client.Email})
	if err != nil {
		s.log.Error().Err(err).Msg("Request count failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("client_id", id).Bool("vip", body.VIPStatus).Msg("Client VIP status updated")
	s.writeJSON(w, http.StatusOK, client.ToModel(counts[client.Email]))
}
