package model

// DestinationStat counts tours and requests per destination city.
type DestinationStat struct {
	Destination  string `json:"destination"`
	TourCount    int64  `json:"tourCount"`
	RequestCount int64  `json:"requestCount"`
}

// RequestsByDate is one point of the requests-over-time series.
type RequestsByDate struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	TotalTours       int64             `json:"totalTours"`
	ActiveTours      int64             `json:"activeTours"`
	TotalRequests    int64             `json:"totalRequests"`
	NewRequests      int64             `json:"newRequests"`
	RequestsByStatus map[string]int64  `json:"requestsByStatus"`
	TopDestinations  []DestinationStat `json:"topDestinations"`
	AvgTourPrice     float64           `json:"avgTourPrice"`
	MinTourPrice     float64           `json:"minTourPrice"`
	MaxTourPrice     float64           `json:"maxTourPrice"`
	RequestsByDate   []RequestsByDate  `json:"requestsByDate"`
}
