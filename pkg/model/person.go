package model

import "time"

// Employee is an agency staff account. Password is write-only: it is sent
// on create/update and never returned by the backend.
type Employee struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	HireDate  string `json:"hireDate,omitempty"`
	Active    bool   `json:"active"`
	UserID    *int64 `json:"userId,omitempty"`
}

// EmployeeSales is the per-employee sales aggregate.
type EmployeeSales struct {
	EmployeeID    int64   `json:"employeeId"`
	EmployeeName  string  `json:"employeeName"`
	EmployeeEmail string  `json:"employeeEmail"`
	TotalSales    int64   `json:"totalSales"`
	TotalRevenue  float64 `json:"totalRevenue"`
	StartDate     string  `json:"startDate,omitempty"`
	EndDate       string  `json:"endDate,omitempty"`
}

// Client is an agency customer record. VIPStatus is toggled independently
// of the other fields through a dedicated partial update.
type Client struct {
	ID            int64      `json:"id,omitempty"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	BirthDate     string     `json:"birthDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	VIPStatus     bool       `json:"vipStatus"`
	Active        bool       `json:"active"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	TotalRequests int64      `json:"totalRequests,omitempty"`
}
