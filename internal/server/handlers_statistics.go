package server

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// buildStatistics assembles the admin statistics aggregate.
func (s *Server) buildStatistics(ctx context.Context, startDate, endDate string) (*model.Statistics, error) {
	totalTours, activeTours, err := s.db.Tours.TourCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("tour counts: %w", err)
	}

	prices, err := s.db.Tours.PriceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("price stats: %w", err)
	}

	byStatus, err := s.db.Requests.CountByStatus(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	var totalRequests int64
	for _, c := range byStatus {
		totalRequests += c
	}

	topDestinations, err := s.db.Tours.TopDestinations(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("top destinations: %w", err)
	}
	destinations := make([]model.DestinationStat, 0, len(topDestinations))
	for _, d := range topDestinations {
		destinations = append(destinations, model.DestinationStat{
			Destination:  d.Destination,
			TourCount:    d.TourCount,
			RequestCount: d.RequestCount,
		})
	}

	byDate, err := s.db.Requests.CountByDate(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("date counts: %w", err)
	}
	series := make([]model.RequestsByDate, 0, len(byDate))
	for _, d := range byDate {
		series = append(series, model.RequestsByDate{Date: d.Date, Count: d.Count})
	}

	return &model.Statistics{
		TotalTours:       totalTours,
		ActiveTours:      activeTours,
		TotalRequests:    totalRequests,
		NewRequests:      byStatus[model.StatusNew],
		RequestsByStatus: byStatus,
		TopDestinations:  destinations,
		AvgTourPrice:     prices.Avg,
		MinTourPrice:     prices.Min,
		MaxTourPrice:     prices.Max,
		RequestsByDate:   series,
	}, nil
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := s.buildStatistics(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		s.log.Error().Err(err).Msg("Statistics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleStatisticsCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := s.buildStatistics(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		s.log.Error().Err(err).Msg("Statistics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="statistics.csv"`)

	cw := csv.NewWriter(w)
	records := [][]string{
		{"metric", "value"},
		{"totalTours", strconv.FormatInt(stats.TotalTours, 10)},
		{"activeTours", strconv.FormatInt(stats.ActiveTours, 10)},
		{"totalRequests", strconv.FormatInt(stats.TotalRequests, 10)},
		{"newRequests", strconv.FormatInt(stats.NewRequests, 10)},
		{"avgTourPrice", strconv.FormatFloat(stats.AvgTourPrice, 'f', 2, 64)},
		{"minTourPrice", strconv.FormatFloat(stats.MinTourPrice, 'f', 2, 64)},
		{"maxTourPrice", strconv.FormatFloat(stats.MaxTourPrice, 'f', 2, 64)},
	}
	for _, status := range []string{model.StatusNew, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled} {
		records = append(records, []string{"requests." + status, strconv.FormatInt(stats.RequestsByStatus[status], 10)})
	}
	for _, d := range stats.TopDestinations {
		records = append(records, []string{"destination." + d.Destination, strconv.FormatInt(d.RequestCount, 10)})
	}

	if err := cw.WriteAll(records); err != nil {
		s.log.Error().Err(err).Msg("CSV write failed")
	}
}
