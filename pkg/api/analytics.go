package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// AnalyticsService wraps the ML analytics surface. Endpoints whose backend
// schema is pinned down get typed results; the rest (anomalies, trends,
// statistics-by-days) are opaque JSON pass-through until the contract is
// confirmed.
type AnalyticsService struct {
	client *Client
}

// Dashboard returns the analytics dashboard summary.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var d model.Dashboard
	if err := s.client.do(ctx, http.MethodGet, "/admin/analytics/dashboard", nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Full returns the full analytics aggregate for a period ("week", "month",
// "year").
func (s *AnalyticsService) Full(ctx context.Context, period string) (json.RawMessage, error) {
	v := url.Values{}
	if period != "" {
		v.Set("period", period)
	}
	data, err := s.client.doRaw(ctx, http.MethodGet, "/admin/analytics", v, nil)
	return json.RawMessage(data), err
}

// Statistics returns the rolling statistics for the last N days.
func (s *AnalyticsService) Statistics(ctx context.Context, days int) (json.RawMessage, error) {
	v := url.Values{}
	v.Set("days", strconv.Itoa(days))
	data, err := s.client.doRaw(ctx, http.MethodGet, "/admin/analytics/statistics", v, nil)
	return json.RawMessage(data), err
}

// Forecast returns the demand forecast, agency-wide when destination is "".
func (s *AnalyticsService) Forecast(ctx context.Context, destination string) (*model.Forecast, error) {
	v := url.Values{}
	if destination != "" {
		v.Set("destination", destination)
	}
	var f model.Forecast
	if err := s.client.do(ctx, http.MethodGet, "/admin/analytics/forecast", v, nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ForecastTable returns the tabular per-destination forecast. Errors
// propagate to the caller like every other call.
func (s *AnalyticsService) ForecastTable(ctx context.Context) ([]model.ForecastRow, error) {
	var rows []model.ForecastRow
	if err := s.client.do(ctx, http.MethodGet, "/admin/analytics/forecast/table", nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Clusters returns the K-means tour groupings.
func (s *AnalyticsService) Clusters(ctx context.Context, n int) ([]model.TourCluster, error) {
	v := url.Values{}
	if n > 0 {
		v.Set("n_clusters", strconv.Itoa(n))
	}
	var clusters []model.TourCluster
	if err := s.client.do(ctx, http.MethodGet, "/admin/analytics/clusters", v, nil, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

// ModelMetrics returns forecast model quality per destination.
func (s *AnalyticsService) ModelMetrics(ctx context.Context) ([]model.ModelMetrics, error) {
	var metrics []model.ModelMetrics
	if err := s.client.do(ctx, http.MethodGet, "/admin/analytics/model-metrics", nil, nil, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// Anomalies returns tours flagged as anomalous. Opaque JSON.
func (s *AnalyticsService) Anomalies(ctx context.Context) (json.RawMessage, error) {
	data, err := s.client.doRaw(ctx, http.MethodGet, "/admin/analytics/anomalies", nil, nil)
	return json.RawMessage(data), err
}

// Trends returns seasonal trends over the last N months. Opaque JSON.
func (s *AnalyticsService) Trends(ctx context.Context, months int) (json.RawMessage, error) {
	v := url.Values{}
	v.Set("months", strconv.Itoa(months))
	data, err := s.client.doRaw(ctx, http.MethodGet, "/admin/analytics/trends", v, nil)
	return json.RawMessage(data), err
}

// AllDestinations lists every destination known to the forecaster.
func (s *AnalyticsService) AllDestinations(ctx context.Context) ([]string, error) {
	var destinations []string
	if err := s.client.do(ctx, http.MethodGet, "/admin/analytics/all-destinations", nil, nil, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

// Health reports the ML service liveness.
func (s *AnalyticsService) Health(ctx context.Context) (*model.AnalyticsHealth, error) {
	var h model.AnalyticsHealth
	if err := s.client.do(ctx, http.MethodGet, "/admin/analytics/health", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
