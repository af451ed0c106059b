package model

// Analytics payloads. The fields below follow what the ML backend actually
// serves today; endpoints whose schema is not pinned down (anomalies, trends,
// statistics-by-days) are passed through as raw JSON by the API client.

// DashboardDestination is a per-destination revenue prediction row.
type DashboardDestination struct {
	Destination      string  `json:"destination"`
	PredictedRevenue float64 `json:"predictedRevenue"`
	PredictedDemand  float64 `json:"predictedDemand"`
	CurrentRevenue   float64 `json:"currentRevenue"`
	Trend            string  `json:"trend"`
}

// TrendPoint is one point of a dated value series.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DestinationCount pairs a destination with a request count.
type DestinationCount struct {
	Destination string `json:"destination"`
	Count       int64  `json:"count"`
}

// Dashboard is the analytics dashboard summary.
type Dashboard struct {
	TotalRequests             int64                  `json:"totalRequests"`
	TotalRevenue              float64                `json:"totalRevenue"`
	AverageRequestValue       float64                `json:"averageRequestValue"`
	NextMonthPredictedRevenue float64                `json:"nextMonthPredictedRevenue,omitempty"`
	RevenueByDestination      []DashboardDestination `json:"revenueByDestination,omitempty"`
	RequestsByStatus          map[string]int64       `json:"requestsByStatus"`
	TopDestinations           []DestinationCount     `json:"topDestinations"`
	RecentTrends              []TrendPoint           `json:"recentTrends"`
}

// ForecastPoint is one step of a demand forecast series.
type ForecastPoint struct {
	Date             string  `json:"date"`
	PredictedDemand  float64 `json:"predictedDemand"`
	PredictedRevenue float64 `json:"predictedRevenue,omitempty"`
	Confidence       float64 `json:"confidence"`
}

// Forecast is the demand forecast for one destination, or agency-wide when
// Destination is empty.
type Forecast struct {
	Destination           string                 `json:"destination,omitempty"`
	Forecast              []ForecastPoint        `json:"forecast"`
	TotalPredictedRevenue float64                `json:"totalPredictedRevenue,omitempty"`
	DestinationBreakdown  []DashboardDestination `json:"destinationBreakdown,omitempty"`
	Recommendations       []string               `json:"recommendations"`
}

// ForecastRow is one row of the tabular forecast view.
type ForecastRow struct {
	Destination            string  `json:"destination"`
	CurrentDemandPerWeek   float64 `json:"current_demand_per_week"`
	PredictedDemandPerWeek float64 `json:"predicted_demand_per_week"`
	ChangePercent          float64 `json:"change_percent"`
	Trend                  string  `json:"trend"`
	Confidence             float64 `json:"confidence"`
	Recommendation         string  `json:"recommendation"`
}

// ClusterTour is a tour as listed inside a cluster.
type ClusterTour struct {
	TourID      int64   `json:"tour_id"`
	TourName    string  `json:"tour_name"`
	Destination string  `json:"destination"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

// TourCluster is one K-means grouping of tours.
type TourCluster struct {
	ClusterID       int           `json:"cluster_id"`
	ClusterType     string        `json:"cluster_type"`
	Description     string        `json:"description"`
	Tours           []ClusterTour `json:"tours"`
	AvgPrice        float64       `json:"avg_price"`
	AvgDuration     float64       `json:"avg_duration"`
	TotalPopularity float64       `json:"total_popularity"`
	AvgConversion   float64       `json:"avg_conversion"`
}

// ModelWeights is the ensemble weighting of the forecast models.
type ModelWeights struct {
	Linear           float64 `json:"linear"`
	RandomForest     float64 `json:"random_forest"`
	GradientBoosting float64 `json:"gradient_boosting"`
}

// ModelMetrics reports per-destination model quality.
type ModelMetrics struct {
	Destination        string       `json:"destination"`
	LinearR2           float64      `json:"linear_r2"`
	RandomForestR2     float64      `json:"random_forest_r2"`
	GradientBoostingR2 float64      `json:"gradient_boosting_r2"`
	EnsembleR2         float64      `json:"ensemble_r2"`
	EnsembleMAE        float64      `json:"ensemble_mae"`
	EnsembleRMSE       float64      `json:"ensemble_rmse"`
	AvgR2              float64      `json:"avg_r2"`
	Weights            ModelWeights `json:"weights"`
}

// AnalyticsHealth is the ML service liveness report.
type AnalyticsHealth struct {
	MLService string `json:"ml_service"`
	Status    string `json:"status"`
}
