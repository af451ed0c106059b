package database

import (
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// User is a login account. Roles is a comma-separated list (ADMIN,
// EMPLOYEE, CLIENT); passwords are stored as bcrypt hashes only.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Roles        string    `bun:"roles,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// RoleList splits the stored roles string.
func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	return strings.Split(u.Roles, ",")
}

// HasRole reports whether the account carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// Tour is the stored tour record.
type Tour struct {
	bun.BaseModel `bun:"table:tours"`

	ID              int64     `bun:"id,pk,autoincrement"`
	Name            string    `bun:"name,notnull"`
	Description     string    `bun:"description"`
	Price           float64   `bun:"price,notnull"`
	DurationDays    int       `bun:"duration_days"`
	ImageURL        string    `bun:"image_url"`
	DestinationCity string    `bun:"destination_city,notnull"`
	Active          bool      `bun:"active,notnull"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ToModel converts the stored record to the wire shape. Flight IDs are
// attached separately by the repository.
func (t *Tour) ToModel(flightIDs []int64) model.Tour {
	created := t.CreatedAt
	updated := t.UpdatedAt
	return model.Tour{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Price:           t.Price,
		DurationDays:    t.DurationDays,
		ImageURL:        t.ImageURL,
		DestinationCity: t.DestinationCity,
		Active:          t.Active,
		FlightIDs:       flightIDs,
		CreatedAt:       &created,
		UpdatedAt:       &updated,
	}
}

// ApplyModel copies the writable fields from the wire shape.
func (t *Tour) ApplyModel(m model.Tour) {
	t.Name = m.Name
	t.Description = m.Description
	t.Price = m.Price
	t.DurationDays = m.DurationDays
	t.ImageURL = m.ImageURL
	t.DestinationCity = m.DestinationCity
	t.Active = m.Active
}

// TourFlight links a tour to a flight.
type TourFlight struct {
	bun.BaseModel `bun:"table:tour_flights"`

	ID       int64 `bun:"id,pk,autoincrement"`
	TourID   int64 `bun:"tour_id,notnull"`
	FlightID int64 `bun:"flight_id,notnull"`
}

// Flight is the stored flight record.
type Flight struct {
	bun.BaseModel `bun:"table:flights"`

	FlightID             int64      `bun:"flight_id,pk,autoincrement"`
	FlightNo             string     `bun:"flight_no,notnull"`
	ScheduledDeparture   time.Time  `bun:"scheduled_departure,notnull"`
	ScheduledArrival     time.Time  `bun:"scheduled_arrival,notnull"`
	ActualDeparture      *time.Time `bun:"actual_departure"`
	ActualArrival        *time.Time `bun:"actual_arrival"`
	DepartureAirportCode string     `bun:"departure_airport_code,notnull"`
	ArrivalAirportCode   string     `bun:"arrival_airport_code,notnull"`
	Status               string     `bun:"status,notnull"`
	AircraftCode         string     `bun:"aircraft_code"`
}

func (f *Flight) ToModel() model.Flight {
	return model.Flight{
		FlightID:             f.FlightID,
		FlightNo:             f.FlightNo,
		ScheduledDeparture:   f.ScheduledDeparture,
		ScheduledArrival:     f.ScheduledArrival,
		ActualDeparture:      f.ActualDeparture,
		ActualArrival:        f.ActualArrival,
		DepartureAirportCode: f.DepartureAirportCode,
		ArrivalAirportCode:   f.ArrivalAirportCode,
		Status:               f.Status,
		AircraftCode:         f.AircraftCode,
	}
}

func (f *Flight) ApplyModel(m model.Flight) {
	f.FlightNo = m.FlightNo
	f.ScheduledDeparture = m.ScheduledDeparture
	f.ScheduledArrival = m.ScheduledArrival
	f.ActualDeparture = m.ActualDeparture
	f.ActualArrival = m.ActualArrival
	f.DepartureAirportCode = m.DepartureAirportCode
	f.ArrivalAirportCode = m.ArrivalAirportCode
	f.Status = m.Status
	f.AircraftCode = m.AircraftCode
}

// ClientRequest is the stored booking request. UserID links the request to
// the mobile account that filed it, when it came through the client surface.
type ClientRequest struct {
	bun.BaseModel `bun:"table:client_requests"`

	ID         int64     `bun:"id,pk,autoincrement"`
	TourID     int64     `bun:"tour_id,notnull"`
	UserID     *int64    `bun:"user_id"`
	UserName   string    `bun:"user_name,notnull"`
	UserEmail  string    `bun:"user_email,notnull"`
	UserPhone  string    `bun:"user_phone"`
	Comment    string    `bun:"comment"`
	Status     string    `bun:"status,notnull"`
	Priority   string    `bun:"priority,notnull"`
	EmployeeID *int64    `bun:"employee_id"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ToModel converts to the wire shape. TourName and EmployeeName are display
// joins filled in by the repository.
func (r *ClientRequest) ToModel(tourName, employeeName string) model.ClientRequest {
	created := r.CreatedAt
	return model.ClientRequest{
		ID:           r.ID,
		TourID:       r.TourID,
		UserName:     r.UserName,
		UserEmail:    r.UserEmail,
		UserPhone:    r.UserPhone,
		Comment:      r.Comment,
		Status:       r.Status,
		Priority:     r.Priority,
		TourName:     tourName,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		CreatedAt:    &created,
	}
}

// Employee is the stored staff record. UserID links to the login account.
type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Username  string `bun:"username,unique,notnull"`
	FirstName string `bun:"first_name,notnull"`
	LastName  string `bun:"last_name,notnull"`
	Email     string `bun:"email,notnull"`
	Phone     string `bun:"phone"`
	HireDate  string `bun:"hire_date"`
	Active    bool   `bun:"active,notnull"`
	UserID    *int64 `bun:"user_id"`
}

func (e *Employee) ToModel() model.Employee {
	return model.Employee{
		ID:        e.ID,
		Username:  e.Username,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Phone:     e.Phone,
		HireDate:  e.HireDate,
		Active:    e.Active,
		UserID:    e.UserID,
	}
}

func (e *Employee) ApplyModel(m model.Employee) {
	e.Username = m.Username
	e.FirstName = m.FirstName
	e.LastName = m.LastName
	e.Email = m.Email
	e.Phone = m.Phone
	e.HireDate = m.HireDate
	e.Active = m.Active
}

// FullName is the display name used in request joins.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Client is the stored customer record.
type Client struct {
	bun.BaseModel `bun:"table:clients"`

	ID        int64     `bun:"id,pk,autoincrement"`
	FirstName string    `bun:"first_name,notnull"`
	LastName  string    `bun:"last_name,notnull"`
	Email     string    `bun:"email,notnull"`
	Phone     string    `bun:"phone"`
	BirthDate string    `bun:"birth_date"`
	Notes     string    `bun:"notes"`
	VIPStatus bool      `bun:"vip_status,notnull"`
	Active    bool      `bun:"active,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (c *Client) ToModel(totalRequests int64) model.Client {
	created := c.CreatedAt
	updated := c.UpdatedAt
	return model.Client{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Phone:         c.Phone,
		BirthDate:     c.BirthDate,
		Notes:         c.Notes,
		VIPStatus:     c.VIPStatus,
		Active:        c.Active,
		CreatedAt:     &created,
		UpdatedAt:     &updated,
		TotalRequests: totalRequests,
	}
}

func (c *Client) ApplyModel(m model.Client) {
	c.FirstName = m.FirstName
	c.LastName = m.LastName
	c.Email = m.Email
	c.Phone = m.Phone
	c.BirthDate = m.BirthDate
	c.Notes = m.Notes
	c.Active = m.Active
}

// Favorite is a tour bookmarked by a login account.
type Favorite struct {
	bun.BaseModel `bun:"table:favorites"`

	ID      int64     `bun:"id,pk,autoincrement"`
	UserID  int64     `bun:"user_id,notnull"`
	TourID  int64     `bun:"tour_id,notnull"`
	AddedAt time.Time `bun:"added_at,nullzero,notnull,default:current_timestamp"`
}
