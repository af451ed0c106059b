package server

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saikamaik/airline-sub000/pkg/api"
	"github.com/saikamaik/airline-sub000/pkg/model"
	"github.com/saikamaik/airline-sub000/pkg/session"
)

// newTestStack boots a seeded server on an in-memory database and returns a
// factory for clients bound to independent session stores.
func newTestStack(t *testing.T) func() (*api.Client, *session.Store) {
	t.Helper()

	srv, err := New(Config{
		DatabasePath: ":memory:",
		JWTSecret:    "test-secret",
		SeedDemoData: true,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return func() (*api.Client, *session.Store) {
		store := session.NewStore()
		return api.New(api.Options{BaseURL: ts.URL + "/api"}, store), store
	}
}

func loginAdmin(t *testing.T, client *api.Client) {
	t.Helper()
	_, err := client.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
}

func TestLoginReturnsRoles(t *testing.T) {
	client, store := newTestStack(t)()

	resp, err := client.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)
	assert.Contains(t, resp.Roles, "ADMIN")
	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.HasRole("ADMIN"))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	client, store := newTestStack(t)()

	_, err := client.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Equal(t, "Invalid username or password", apiErr.Message)
	assert.False(t, store.IsAuthenticated())
}

func TestRoleEnforcement(t *testing.T) {
	client, _ := newTestStack(t)()

	_, err := client.Register(context.Background(), api.RegisterRequest{
		Username: "traveller",
		Email:    "traveller@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = client.Clients.List(context.Background(), api.ClientsFilter{})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Equal(t, "Insufficient privileges", apiErr.Message)
}

func TestStaleTokenClearsSession(t *testing.T) {
	client, store := newTestStack(t)()
	store.Set(session.Session{Token: "stale", Username: "admin"})

	_, err := client.Clients.List(context.Background(), api.ClientsFilter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnauthorized))
	assert.False(t, store.IsAuthenticated())
}

func TestTourRoundTrip(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)
	ctx := context.Background()

	created, err := client.Tours.Create(ctx, model.Tour{
		Name:            "Sochi Ski Week",
		Description:     "Krasnaya Polyana in season.",
		Price:           800,
		DurationDays:    7,
		DestinationCity: "Sochi",
		Active:          true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := client.Tours.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sochi Ski Week", got.Name)
	assert.Equal(t, 800.0, got.Price)

	got.Price = 850
	updated, err := client.Tours.Update(ctx, created.ID, *got)
	require.NoError(t, err)
	assert.Equal(t, 850.0, updated.Price)

	// Repeating the same update changes nothing.
	again, err := client.Tours.Update(ctx, created.ID, *got)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, again.Name)
	assert.Equal(t, updated.Price, again.Price)

	require.NoError(t, client.Tours.Delete(ctx, created.ID))

	_, err = client.Tours.Get(ctx, created.ID)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestPublicToursHideInactive(t *testing.T) {
	client, _ := newTestStack(t)()

	page, err := client.Tours.ListPublic(context.Background(), api.ToursFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)
	for _, tour := range page.Content {
		assert.True(t, tour.Active, "public list leaked inactive tour %d", tour.ID)
	}
}

func TestPageBeyondEndIsEmpty(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)

	page, err := client.Tours.List(context.Background(), api.ToursFilter{Page: 50})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NotZero(t, page.TotalElements)
	assert.Equal(t, 50, page.Number)
}

func TestVIPPatchPreservesNotes(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)
	ctx := context.Background()

	created, err := client.Clients.Create(ctx, model.Client{
		FirstName: "Maria",
		LastName:  "Volkova",
		Email:     "maria@example.com",
		Notes:     "Prefers aisle seats",
	})
	require.NoError(t, err)
	assert.False(t, created.VIPStatus)

	updated, err := client.Clients.SetVIPStatus(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.VIPStatus)
	assert.Equal(t, "Prefers aisle seats", updated.Notes)
}

func TestClientUpdateCannotFlipVIP(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)
	ctx := context.Background()

	created, err := client.Clients.Create(ctx, model.Client{
		FirstName: "Dmitry",
		LastName:  "Volkov",
		Email:     "dmitry@example.com",
	})
	require.NoError(t, err)

	body := *created
	body.VIPStatus = true
	body.Phone = "+7 900 777-88-99"
	updated, err := client.Clients.Update(ctx, created.ID, body)
	require.NoError(t, err)
	assert.Equal(t, "+7 900 777-88-99", updated.Phone)
	assert.False(t, updated.VIPStatus, "VIP flag must only change through its own endpoint")
}

func TestBookingInactiveTourRejected(t *testing.T) {
	newClient := newTestStack(t)
	admin, _ := newClient()
	loginAdmin(t, admin)
	ctx := context.Background()

	// The seeded Istanbul tour is inactive.
	tours, err := admin.Tours.List(ctx, api.ToursFilter{})
	require.NoError(t, err)
	var inactiveID int64
	for _, tour := range tours.Content {
		if !tour.Active {
			inactiveID = tour.ID
		}
	}
	require.NotZero(t, inactiveID)

	mobile, _ := newClient()
	_, err = mobile.Register(ctx, api.RegisterRequest{
		Username: "booker",
		Email:    "booker@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = mobile.Tours.RequestBooking(ctx, inactiveID, model.ClientRequest{
		UserName:  "Booker",
		UserEmail: "booker@example.com",
	})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, "Tour is not open for booking", apiErr.Message)
}

func TestEmployeeTakeIsExclusive(t *testing.T) {
	newClient := newTestStack(t)
	ctx := context.Background()

	first, _ := newClient()
	_, err := first.Login(ctx, "ivanov", "ivanov123")
	require.NoError(t, err)

	available, err := first.EmployeeDesk.AvailableRequests(ctx, "", 0, 20)
	require.NoError(t, err)
	require.NotEmpty(t, available.Content)
	requestID := available.Content[0].ID

	taken, err := first.EmployeeDesk.Take(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, taken.Status)

	second, _ := newClient()
	_, err = second.Login(ctx, "petrova", "petrova123")
	require.NoError(t, err)

	_, err = second.EmployeeDesk.Take(ctx, requestID)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, "Request is already assigned", apiErr.Message)
}

func TestAssignmentRequiresWorkingStatus(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)
	ctx := context.Background()

	requests, err := client.Requests.List(ctx, api.RequestsFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, requests.Content)
	requestID := requests.Content[0].ID

	employeeID := int64(1)
	_, err = client.Requests.UpdateStatus(ctx, requestID, model.StatusNew, &employeeID)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)

	updated, err := client.Requests.UpdateStatus(ctx, requestID, model.StatusInProgress, &employeeID)
	require.NoError(t, err)
	require.NotNil(t, updated.EmployeeID)
	assert.Equal(t, employeeID, *updated.EmployeeID)

	// Back to NEW drops the assignment.
	reverted, err := client.Requests.UpdateStatus(ctx, requestID, model.StatusNew, nil)
	require.NoError(t, err)
	assert.Nil(t, reverted.EmployeeID)
}

func TestEmployeeCannotTouchForeignRequest(t *testing.T) {
	newClient := newTestStack(t)
	ctx := context.Background()

	// Seeded request #1 is assigned to ivanov.
	other, _ := newClient()
	_, err := other.Login(ctx, "petrova", "petrova123")
	require.NoError(t, err)

	_, err = other.EmployeeDesk.UpdateStatus(ctx, 1, model.StatusCompleted)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Equal(t, "Request is not assigned to you", apiErr.Message)
}

func TestFavoritesFlow(t *testing.T) {
	newClient := newTestStack(t)
	ctx := context.Background()

	mobile, _ := newClient()
	_, err := mobile.Register(ctx, api.RegisterRequest{
		Username: "collector",
		Email:    "collector@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tours, err := mobile.Tours.ListPublic(ctx, api.ToursFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, tours.Content)
	tourID := tours.Content[0].ID

	fav, err := mobile.Favorites.Add(ctx, tourID)
	require.NoError(t, err)
	assert.Equal(t, tourID, fav.TourID)
	require.NotNil(t, fav.Tour)

	isFav, err := mobile.Favorites.Check(ctx, tourID)
	require.NoError(t, err)
	assert.True(t, isFav)

	count, err := mobile.Favorites.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	page, err := mobile.Favorites.List(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)

	require.NoError(t, mobile.Favorites.Remove(ctx, tourID))

	isFav, err = mobile.Favorites.Check(ctx, tourID)
	require.NoError(t, err)
	assert.False(t, isFav)
}

func TestStatisticsAndCSVExport(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)
	ctx := context.Background()

	stats, err := client.Statistics.Get(ctx, api.SalesRange{})
	require.NoError(t, err)
	assert.NotZero(t, stats.TotalTours)
	assert.NotZero(t, stats.TotalRequests)
	assert.NotEmpty(t, stats.TopDestinations)

	data, err := client.Statistics.ExportCSV(ctx, api.SalesRange{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "metric,value", lines[0])
	assert.Greater(t, len(lines), 5)
}

func TestSalesAggregates(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)
	ctx := context.Background()

	// Seeded data has one COMPLETED request handled by employee 1.
	sales, err := client.Employees.Sales(ctx, 1, api.SalesRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sales.TotalSales)
	assert.Greater(t, sales.TotalRevenue, 0.0)

	all, err := client.Employees.AllSales(ctx, api.SalesRange{}, 0, 20)
	require.NoError(t, err)
	assert.Len(t, all.Content, 2, "every employee appears, sold or not")
}

func TestAnalyticsSurface(t *testing.T) {
	client, _ := newTestStack(t)()
	loginAdmin(t, client)
	ctx := context.Background()

	dashboard, err := client.Analytics.Dashboard(ctx)
	require.NoError(t, err)
	assert.NotZero(t, dashboard.TotalRequests)
	assert.NotEmpty(t, dashboard.TopDestinations)

	table, err := client.Analytics.ForecastTable(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, table)

	clusters, err := client.Analytics.Clusters(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, clusters, 2)

	destinations, err := client.Analytics.AllDestinations(ctx)
	require.NoError(t, err)
	assert.Contains(t, destinations, "Antalya")

	health, err := client.Analytics.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
}

func TestRecommendationsRespectFilters(t *testing.T) {
	client, _ := newTestStack(t)()
	ctx := context.Background()

	maxPrice := 1000.0
	resp, err := client.Recommendations.Get(ctx, api.RecommendationRequest{
		PreferredDestinations: []string{"Hurghada"},
		MaxPrice:              &maxPrice,
		Limit:                 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Hurghada", resp.Recommendations[0].Destination)
	for _, rec := range resp.Recommendations {
		assert.LessOrEqual(t, rec.Price, maxPrice)
	}
}

func TestRegisterConflict(t *testing.T) {
	client, _ := newTestStack(t)()

	_, err := client.Register(context.Background(), api.RegisterRequest{
		Username: "admin",
		Email:    "other@example.com",
		Password: "secret123",
	})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
}
