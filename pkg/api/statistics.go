package api

import (
	"context"
	"net/http"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// StatisticsService wraps the admin statistics aggregate and its CSV export.
type StatisticsService struct {
	client *Client
}

// Get returns the statistics aggregate, optionally bounded by date range.
func (s *StatisticsService) Get(ctx context.Context, r SalesRange) (*model.Statistics, error) {
	var stats model.Statistics
	if err := s.client.do(ctx, http.MethodGet, "/admin/statistics", r.Values(), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportCSV downloads the statistics report as raw CSV bytes.
func (s *StatisticsService) ExportCSV(ctx context.Context, r SalesRange) ([]byte, error) {
	return s.client.doRaw(ctx, http.MethodGet, "/admin/statistics/export/csv", r.Values(), nil)
}
