package model

import "time"

// Request lifecycle statuses.
const (
	StatusNew        = "NEW"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Request priorities.
const (
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// ValidStatus reports whether s is one of the known request statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known request priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ClientRequest is a booking request submitted for a tour.
// TourName and EmployeeName are display joins filled in by the backend.
type ClientRequest struct {
	ID           int64      `json:"id,omitempty"`
	TourID       int64      `json:"tourId"`
	UserName     string     `json:"userName"`
	UserEmail    string     `json:"userEmail"`
	UserPhone    string     `json:"userPhone,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	Status       string     `json:"status,omitempty"`
	Priority     string     `json:"priority,omitempty"`
	TourName     string     `json:"tourName,omitempty"`
	EmployeeID   *int64     `json:"employeeId,omitempty"`
	EmployeeName string     `json:"employeeName,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}
