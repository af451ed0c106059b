package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/saikamaik/airline-sub000/internal/server/auth"
	"github.com/saikamaik/airline-sub000/internal/server/database"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := s.db.Users.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, database.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		// Same answer for unknown user and bad password.
		s.writeError(w, r, http.StatusForbidden, "Invalid username or password")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Login lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.RoleList())
	if err != nil {
		s.log.Error().Err(err).Msg("Token generation failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Str("username", user.Username).Msg("User logged in")
	s.writeJSON(w, http.StatusOK, authResponse{
		Token:    token,
		Username: user.Username,
		Roles:    user.RoleList(),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		s.writeError(w, r, http.StatusBadRequest, "A valid email address is required")
		return
	}

	exists, err := s.db.Users.Exists(r.Context(), req.Username)
	if err != nil {
		s.log.Error().Err(err).Msg("Register lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if exists {
		s.writeError(w, r, http.StatusConflict, "Username is already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("Password hashing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &database.User{
		Username:     req.Username,
		PasswordHash: hash,
		Roles:        auth.RoleClient,
	}
	if err := s.db.Users.Create(r.Context(), user); err != nil {
		s.log.Error().Err(err).Msg("Register insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.RoleList())
	if err != nil {
		s.log.Error().Err(err).Msg("Token generation failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Str("username", user.Username).Msg("Client account registered")
	s.writeJSON(w, http.StatusCreated, authResponse{
		Token:    token,
		Username: user.Username,
		Roles:    user.RoleList(),
	})
}
