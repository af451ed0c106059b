package model

import "time"

// Flight mirrors the backend flight record. Scheduled times are always
// present; actual times appear once the flight departed/arrived.
type Flight struct {
	FlightID             int64      `json:"flightId,omitempty"`
	FlightNo             string     `json:"flightNo"`
	ScheduledDeparture   time.Time  `json:"scheduledDeparture"`
	ScheduledArrival     time.Time  `json:"scheduledArrival"`
	ActualDeparture      *time.Time `json:"actualDeparture,omitempty"`
	ActualArrival        *time.Time `json:"actualArrival,omitempty"`
	DepartureAirportCode string     `json:"departureAirportCode"`
	ArrivalAirportCode   string     `json:"arrivalAirportCode"`
	Status               string     `json:"status"`
	AircraftCode         string     `json:"aircraftCode"`
}
