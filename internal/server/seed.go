package server

import (
	"context"
	"time"

	"github.com/saikamaik/airline-sub000/internal/server/auth"
	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

// Seed loads a small demo dataset: an admin, two employees with login
// accounts, flights, tours, clients and a handful of requests. It is a
// no-op when users already exist.
func (s *Server) Seed(ctx context.Context) error {
	exists, err := s.db.Users.Exists(ctx, "admin")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := &database.User{Username: "admin", PasswordHash: hash, Roles: auth.RoleAdmin}
	if err := s.db.Users.Create(ctx, admin); err != nil {
		return err
	}

	employees := []struct {
		username, first, last, email string
	}{
		{"ivanov", "Ivan", "Ivanov", "ivanov@agency.example"},
		{"petrova", "Anna", "Petrova", "petrova@agency.example"},
	}
	employeeIDs := make([]int64, 0, len(employees))
	for _, e := range employees {
		hash, err := auth.HashPassword(e.username + "123")
		if err != nil {
			return err
		}
		user := &database.User{Username: e.username, PasswordHash: hash, Roles: auth.RoleEmployee}
		if err := s.db.Users.Create(ctx, user); err != nil {
			return err
		}
		emp := &database.Employee{
			Username:  e.username,
			FirstName: e.first,
			LastName:  e.last,
			Email:     e.email,
			HireDate:  "2023-04-01",
			Active:    true,
			UserID:    &user.ID,
		}
		if err := s.db.Employees.Create(ctx, emp); err != nil {
			return err
		}
		employeeIDs = append(employeeIDs, emp.ID)
	}

	now := time.Now().UTC()
	flights := []*database.Flight{
		{
			FlightNo:             "SU1001",
			ScheduledDeparture:   now.AddDate(0, 0, 14),
			ScheduledArrival:     now.AddDate(0, 0, 14).Add(4 * time.Hour),
			DepartureAirportCode: "SVO",
			ArrivalAirportCode:   "AYT",
			Status:               "Scheduled",
			AircraftCode:         "320",
		},
		{
			FlightNo:             "SU1002",
			ScheduledDeparture:   now.AddDate(0, 0, 21),
			ScheduledArrival:     now.AddDate(0, 0, 21).Add(4 * time.Hour),
			DepartureAirportCode: "AYT",
			ArrivalAirportCode:   "SVO",
			Status:               "Scheduled",
			AircraftCode:         "320",
		},
		{
			FlightNo:             "SU2001",
			ScheduledDeparture:   now.AddDate(0, 0, 10),
			ScheduledArrival:     now.AddDate(0, 0, 10).Add(5 * time.Hour),
			DepartureAirportCode: "SVO",
			ArrivalAirportCode:   "HRG",
			Status:               "Scheduled",
			AircraftCode:         "321",
		},
	}
	for _, f := range flights {
		if err := s.db.Flights.Create(ctx, f); err != nil {
			return err
		}
	}

	tours := []struct {
		tour    *database.Tour
		flights []int64
	}{
		{
			tour: &database.Tour{
				Name:            "Antalya Beach Week",
				Description:     "Seven nights all inclusive on the Turkish riviera.",
				Price:           1200,
				DurationDays:    7,
				DestinationCity: "Antalya",
				Active:          true,
			},
			flights: []int64{flights[0].FlightID, flights[1].FlightID},
		},
		{
			tour: &database.Tour{
				Name:            "Hurghada Diving Escape",
				Description:     "Red Sea diving with daily boat trips.",
				Price:           950,
				DurationDays:    10,
				DestinationCity: "Hurghada",
				Active:          true,
			},
			flights: []int64{flights[2].FlightID},
		},
		{
			tour: &database.Tour{
				Name:            "Istanbul City Break",
				Description:     "A long weekend of bazaars and Bosphorus views.",
				Price:           640,
				DurationDays:    4,
				DestinationCity: "Istanbul",
				Active:          false,
			},
		},
	}
	tourIDs := make([]int64, 0, len(tours))
	for _, t := range tours {
		if err := s.db.Tours.Create(ctx, t.tour, t.flights); err != nil {
			return err
		}
		tourIDs = append(tourIDs, t.tour.ID)
	}

	clients := []*database.Client{
		{FirstName: "Olga", LastName: "Smirnova", Email: "olga@example.com", Phone: "+7 900 111-22-33", VIPStatus: true, Active: true},
		{FirstName: "Pavel", LastName: "Orlov", Email: "pavel@example.com", Phone: "+7 900 444-55-66", Active: true},
	}
	for _, c := range clients {
		if err := s.db.Clients.Create(ctx, c); err != nil {
			return err
		}
	}

	requests := []*database.ClientRequest{
		{
			TourID:    tourIDs[0],
			UserName:  "Olga Smirnova",
			UserEmail: "olga@example.com",
			UserPhone: "+7 900 111-22-33",
			Comment:   "Two adults, sea view if possible.",
			Status:    model.StatusCompleted,
			Priority:  model.PriorityHigh,
		},
		{
			TourID:    tourIDs[1],
			UserName:  "Pavel Orlov",
			UserEmail: "pavel@example.com",
			Status:    model.StatusInProgress,
			Priority:  model.PriorityNormal,
		},
		{
			TourID:    tourIDs[0],
			UserName:  "Pavel Orlov",
			UserEmail: "pavel@example.com",
			Status:    model.StatusNew,
			Priority:  model.PriorityNormal,
		},
	}
	requests[0].EmployeeID = &employeeIDs[0]
	requests[1].EmployeeID = &employeeIDs[1]
	for _, req := range requests {
		if err := s.db.Requests.Create(ctx, req); err != nil {
			return err
		}
	}

	s.log.Info().Msg("Demo data seeded")
	return nil
}
