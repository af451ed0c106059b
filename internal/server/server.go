// Package server is the travel agency REST backend: gorilla/mux routing,
// JWT auth with role checks, bun/SQLite storage, statistics and the
// analytics surface.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/saikamaik/airline-sub000/internal/server/auth"
	"github.com/saikamaik/airline-sub000/internal/server/database"
)

// Config carries the server's runtime settings.
type Config struct {
	ListenAddress string
	DatabasePath  string
	JWTSecret     string
	DebugSQL      bool
	SeedDemoData  bool
}

// Server is the backend service.
type Server struct {
	db      *database.BunDB
	jwt     *auth.JWTManager
	metrics *metricsCollector
	log     zerolog.Logger
	router  *mux.Router
}

// New builds a Server: opens the database, runs migrations, and wires the
// routes.
func New(cfg Config, logger zerolog.Logger) (*Server, error) {
	db, err := database.New(cfg.DatabasePath, database.WithDebug(cfg.DebugSQL))
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:      db,
		jwt:     auth.NewJWTManager(cfg.JWTSecret),
		metrics: newMetricsCollector(),
		log:     logger,
	}
	s.router = s.buildRouter()

	if cfg.SeedDemoData {
		if err := s.Seed(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Handler returns the HTTP handler for the whole service.
func (s *Server) Handler() http.Handler {
	return s.router
}

type contextKey string

const claimsKey contextKey = "claims"

// claimsFrom returns the authenticated identity, if any.
func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metrics.middleware)

	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"travel-apid"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Auth surface, no token required.
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)

	// Public catalogue.
	api.HandleFunc("/tours", s.handlePublicTours).Methods(http.MethodGet)
	api.HandleFunc("/tours/{id:[0-9]+}", s.handleGetTour).Methods(http.MethodGet)
	api.HandleFunc("/tours/{id:[0-9]+}/flights", s.handleTourFlights).Methods(http.MethodGet)
	api.HandleFunc("/flights", s.handleListFlights).Methods(http.MethodGet)
	api.HandleFunc("/flights/search/by-airports", s.handleSearchFlights).Methods(http.MethodGet)
	api.HandleFunc("/flights/add", s.handleCreateFlight).Methods(http.MethodPost)
	api.HandleFunc("/flights/update/{id:[0-9]+}", s.handleUpdateFlight).Methods(http.MethodPut)
	api.HandleFunc("/recommendations", s.handleRecommendations).Methods(http.MethodPost)

	// Authenticated client surface.
	client := api.PathPrefix("").Subrouter()
	client.Use(s.authMiddleware)
	client.HandleFunc("/tours/{id:[0-9]+}/request", s.handleRequestBooking).Methods(http.MethodPost)
	client.HandleFunc("/client/requests", s.handleMyRequests).Methods(http.MethodGet)
	client.HandleFunc("/favorites", s.handleListFavorites).Methods(http.MethodGet)
	client.HandleFunc("/favorites", s.handleAddFavorite).Methods(http.MethodPost)
	client.HandleFunc("/favorites/{id:[0-9]+}", s.handleRemoveFavorite).Methods(http.MethodDelete)
	client.HandleFunc("/favorites/check/{id:[0-9]+}", s.handleCheckFavorite).Methods(http.MethodGet)
	client.HandleFunc("/favorites/count", s.handleCountFavorites).Methods(http.MethodGet)

	// Admin surface.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.authMiddleware, s.requireRole(auth.RoleAdmin))
	admin.HandleFunc("/tours", s.handleAdminTours).Methods(http.MethodGet)
	admin.HandleFunc("/tours", s.handleCreateTour).Methods(http.MethodPost)
	admin.HandleFunc("/tours/{id:[0-9]+}", s.handleUpdateTour).Methods(http.MethodPut)
	admin.HandleFunc("/tours/{id:[0-9]+}", s.handleDeleteTour).Methods(http.MethodDelete)
	admin.HandleFunc("/requests", s.handleAdminRequests).Methods(http.MethodGet)
	admin.HandleFunc("/requests", s.handleAdminCreateRequest).Methods(http.MethodPost)
	admin.HandleFunc("/requests/{id:[0-9]+}", s.handleGetRequest).Methods(http.MethodGet)
	admin.HandleFunc("/requests/{id:[0-9]+}/status", s.handleUpdateRequestStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/requests/tour/{id:[0-9]+}", s.handleRequestsByTour).Methods(http.MethodGet)
	admin.HandleFunc("/employees", s.handleListEmployees).Methods(http.MethodGet)
	admin.HandleFunc("/employees", s.handleCreateEmployee).Methods(http.MethodPost)
	admin.HandleFunc("/employees/sales", s.handleAllEmployeeSales).Methods(http.MethodGet)
	admin.HandleFunc("/employees/{id:[0-9]+}", s.handleGetEmployee).Methods(http.MethodGet)
	admin.HandleFunc("/employees/{id:[0-9]+}", s.handleUpdateEmployee).Methods(http.MethodPut)
	admin.HandleFunc("/employees/{id:[0-9]+}/sales", s.handleEmployeeSales).Methods(http.MethodGet)
	admin.HandleFunc("/clients", s.handleListClients).Methods(http.MethodGet)
	admin.HandleFunc("/clients", s.handleCreateClient).Methods(http.MethodPost)
	admin.HandleFunc("/clients/{id:[0-9]+}", s.handleGetClient).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{id:[0-9]+}", s.handleUpdateClient).Methods(http.MethodPut)
	admin.HandleFunc("/clients/{id:[0-9]+}", s.handleDeleteClient).Methods(http.MethodDelete)
	admin.HandleFunc("/clients/{id:[0-9]+}/vip", s.handleSetClientVIP).Methods(http.MethodPatch)
	admin.HandleFunc("/statistics", s.handleStatistics).Methods(http.MethodGet)
	admin.HandleFunc("/statistics/export/csv", s.handleStatisticsCSV).Methods(http.MethodGet)
	admin.HandleFunc("/analytics", s.handleAnalyticsFull).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/dashboard", s.handleAnalyticsDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/statistics", s.handleAnalyticsStatistics).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/forecast", s.handleAnalyticsForecast).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/forecast/table", s.handleAnalyticsForecastTable).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/clusters", s.handleAnalyticsClusters).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/model-metrics", s.handleAnalyticsModelMetrics).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/anomalies", s.handleAnalyticsAnomalies).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/trends", s.handleAnalyticsTrends).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/all-destinations", s.handleAnalyticsDestinations).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/health", s.handleAnalyticsHealth).Methods(http.MethodGet)

	// Employee self-service surface.
	employee := api.PathPrefix("/employee").Subrouter()
	employee.Use(s.authMiddleware, s.requireRole(auth.RoleEmployee))
	employee.HandleFunc("/profile", s.handleEmployeeProfile).Methods(http.MethodGet)
	employee.HandleFunc("/requests", s.handleEmployeeRequests).Methods(http.MethodGet)
	employee.HandleFunc("/requests/available", s.handleEmployeeAvailableRequests).Methods(http.MethodGet)
	employee.HandleFunc("/requests/{id:[0-9]+}/take", s.handleEmployeeTakeRequest).Methods(http.MethodPatch)
	employee.HandleFunc("/requests/{id:[0-9]+}/status", s.handleEmployeeUpdateStatus).Methods(http.MethodPatch)
	employee.HandleFunc("/sales", s.handleEmployeeMySales).Methods(http.MethodGet)

	return r
}

// authMiddleware validates the bearer token and stores its claims in the
// request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeError(w, r, http.StatusUnauthorized, "Missing or malformed Authorization header")
			return
		}

		claims, err := s.jwt.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.log.Debug().Err(err).Str("path", r.URL.Path).Msg("Token validation failed")
			s.writeError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireRole rejects authenticated requests lacking the role.
func (s *Server) requireRole(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r.Context())
			if claims == nil || !claims.HasRole(role) {
				s.writeError(w, r, http.StatusForbidden, "Insufficient privileges")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// errorBody is the uniform error payload.
type errorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.log.Error().Err(err).Msg("Failed to encode response")
		}
	}
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// pageParams reads the standard page/size parameters.
func pageParams(r *http.Request) (page, size int) {
	page = queryInt(r, "page", 0)
	if page < 0 {
		page = 0
	}
	size = queryInt(r, "size", 20)
	if size <= 0 || size > 500 {
		size = 20
	}
	return page, size
}
