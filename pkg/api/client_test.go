package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saikamaik/airline-sub000/pkg/model"
	"github.com/saikamaik/airline-sub000/pkg/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore()
	return New(Options{BaseURL: srv.URL + "/api"}, store), store
}

func TestLoginStoresServerRoles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req AuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "admin", req.Username)
		require.Equal(t, "secret", req.Password)

		json.NewEncoder(w).Encode(AuthResponse{
			Token:    "tok-1",
			Username: "admin",
			Roles:    []string{"ADMIN", "EMPLOYEE"},
		})
	})

	client, store := newTestClient(t, mux)

	resp, err := client.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	assert.Equal(t, []string{"ADMIN", "EMPLOYEE"}, resp.Roles)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, []string{"ADMIN", "EMPLOYEE"}, store.Current().Roles)
	assert.True(t, store.HasRole("ADMIN"))
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  403,
			"error":   "Forbidden",
			"message": "Invalid username or password",
		})
	})

	client, store := newTestClient(t, mux)

	_, err := client.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Invalid username or password", apiErr.Message)
	assert.False(t, store.IsAuthenticated())
}

func TestBearerHeaderAttachedWhenAuthenticated(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/tours", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(model.Page[model.Tour]{Content: []model.Tour{}})
	})

	client, store := newTestClient(t, mux)
	store.Set(session.Session{Token: "tok-9", Username: "admin", Roles: []string{"ADMIN"}})

	_, err := client.Tours.List(context.Background(), ToursFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-9", gotAuth)
}

func TestNoHeaderAfterLogout(t *testing.T) {
	var gotAuth []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/flights", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(model.Page[model.Flight]{Content: []model.Flight{}})
	})

	client, store := newTestClient(t, mux)
	store.Set(session.Session{Token: "tok", Username: "u"})

	_, err := client.Flights.List(context.Background(), 0, 10)
	require.NoError(t, err)

	client.Logout()
	assert.False(t, store.IsAuthenticated())

	_, err = client.Flights.List(context.Background(), 0, 10)
	require.NoError(t, err)

	require.Len(t, gotAuth, 2)
	assert.Equal(t, "Bearer tok", gotAuth[0])
	assert.Empty(t, gotAuth[1], "no Authorization header may be sent after logout")
}

func TestUnauthorizedClearsSessionAndIsTyped(t *testing.T) {
	var gotAuth []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/clients", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  401,
			"error":   "Unauthorized",
			"message": "Token expired",
		})
	})
	mux.HandleFunc("/api/flights", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(model.Page[model.Flight]{Content: []model.Flight{}})
	})

	client, store := newTestClient(t, mux)
	store.Set(session.Session{Token: "expired-tok", Username: "admin", Roles: []string{"ADMIN"}})

	_, err := client.Clients.List(context.Background(), ClientsFilter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized), "401 must map to ErrUnauthorized")
	assert.False(t, store.IsAuthenticated(), "401 must clear the session store")

	// Any later call, against any resource, carries no Authorization header.
	_, err = client.Flights.List(context.Background(), 0, 10)
	require.NoError(t, err)

	require.Len(t, gotAuth, 2)
	assert.Equal(t, "Bearer expired-tok", gotAuth[0])
	assert.Empty(t, gotAuth[1])
}

func TestNonJSONErrorBodyFallsBackToGenericMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/tours", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Tours.List(context.Background(), ToursFilter{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "502")
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestPageBeyondEndReturnsEmptyContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/tours", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "99", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(model.Page[model.Tour]{
			Content:       []model.Tour{},
			TotalElements: 3,
			TotalPages:    1,
			Size:          20,
			Number:        99,
		})
	})

	client, _ := newTestClient(t, mux)

	page, err := client.Tours.List(context.Background(), ToursFilter{Page: 99})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 1, page.TotalPages)
}

func TestVIPStatusUsesDedicatedPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/clients/7/vip", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(model.Client{ID: 7, VIPStatus: true, Notes: "keep me"})
	})

	client, _ := newTestClient(t, mux)

	updated, err := client.Clients.SetVIPStatus(context.Background(), 7, true)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/admin/clients/7/vip", gotPath)
	assert.Equal(t, map[string]interface{}{"vipStatus": true}, gotBody)
	assert.True(t, updated.VIPStatus)
	assert.Equal(t, "keep me", updated.Notes)
}

func TestExportCSVReturnsRawBytes(t *testing.T) {
	csv := "metric,value\ntotalTours,3\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/statistics/export/csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	})

	client, _ := newTestClient(t, mux)

	data, err := client.Statistics.ExportCSV(context.Background(), SalesRange{})
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestForecastTablePropagatesErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/analytics/forecast/table", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  503,
			"message": "ml service unavailable",
		})
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Analytics.ForecastTable(context.Background())
	require.Error(t, err, "forecast table failures must propagate, not collapse into an empty list")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}
