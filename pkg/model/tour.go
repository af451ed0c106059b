package model

import "time"

// Tour is a bookable tour package offered by the agency.
// Identity is server-assigned; clients never generate IDs.
type Tour struct {
	ID              int64      `json:"id,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	DurationDays    int        `json:"durationDays"`
	ImageURL        string     `json:"imageUrl"`
	DestinationCity string     `json:"destinationCity"`
	Active          bool       `json:"active"`
	FlightIDs       []int64    `json:"flightIds,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// FavoriteTour is a tour bookmarked by the authenticated client.
type FavoriteTour struct {
	ID      int64      `json:"id,omitempty"`
	TourID  int64      `json:"tourId"`
	Tour    *Tour      `json:"tour,omitempty"`
	AddedAt *time.Time `json:"addedAt,omitempty"`
}

// IsFavorite is the response of the favorite membership check.
type IsFavorite struct {
	IsFavorite bool `json:"isFavorite"`
}

// FavoritesCount is the response of the favorites counter endpoint.
type FavoritesCount struct {
	Count int64 `json:"count"`
}
