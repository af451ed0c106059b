package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/saikamaik/airline-sub000/internal/server/auth"
	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)

	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, "Invalid active flag")
			return
		}
		active = &v
	}

	employees, total, err := s.db.Employees.List(r.Context(), active, page, size)
	if err != nil {
		s.log.Error().Err(err).Msg("Employee listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	content := make([]model.Employee, 0, len(employees))
	for i := range employees {
		content = append(content, employees[i].ToModel())
	}
	s.writeJSON(w, http.StatusOK, model.PageOf(content, total, page, size))
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	emp, err := s.db.Employees.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Employee lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, emp.ToModel())
}

func (s *Server) decodeEmployee(w http.ResponseWriter, r *http.Request) (*model.Employee, bool) {
	var m model.Employee
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if m.Username == "" {
		s.writeError(w, r, http.StatusBadRequest, "Username is required")
		return nil, false
	}
	if m.FirstName == "" || m.LastName == "" {
		s.writeError(w, r, http.StatusBadRequest, "First and last name are required")
		return nil, false
	}
	if !strings.Contains(m.Email, "@") {
		s.writeError(w, r, http.StatusBadRequest, "A valid email address is required")
		return nil, false
	}
	return &m, true
}

// handleCreateEmployee creates the staff record together with its login
// account, which carries the EMPLOYEE role.
func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeEmployee(w, r)
	if !ok {
		return
	}
	if m.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, "Password is required")
		return
	}

	exists, err := s.db.Users.Exists(r.Context(), m.Username)
	if err != nil {
		s.log.Error().Err(err).Msg("User lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if exists {
		s.writeError(w, r, http.StatusConflict, "Username is already taken")
		return
	}

	hash, err := auth.HashPassword(m.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("Password hashing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &database.User{
		Username:     m.Username,
		PasswordHash: hash,
		Roles:        auth.RoleEmployee,
	}
	if err := s.db.Users.Create(r.Context(), user); err != nil {
		s.log.Error().Err(err).Msg("User insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	emp := new(database.Employee)
	emp.ApplyModel(*m)
	emp.UserID = &user.ID
	if err := s.db.Employees.Create(r.Context(), emp); err != nil {
		s.log.Error().Err(err).Msg("Employee insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("employee_id", emp.ID).Str("username", emp.Username).Msg("Employee created")
	s.writeJSON(w, http.StatusCreated, emp.ToModel())
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	m, ok := s.decodeEmployee(w, r)
	if !ok {
		return
	}

	emp, err := s.db.Employees.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Employee lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	emp.ApplyModel(*m)
	if err := s.db.Employees.Update(r.Context(), emp); err != nil {
		s.log.Error().Err(err).Msg("Employee update failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, emp.ToModel())
}

func (s *Server) handleEmployeeSales(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	emp, err := s.db.Employees.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Employee lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	q := r.URL.Query()
	sales := s.salesFor(w, r, emp, q.Get("startDate"), q.Get("endDate"))
	if sales == nil {
		return
	}
	s.writeJSON(w, http.StatusOK, sales)
}

func (s *Server) handleAllEmployeeSales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size := pageParams(r)
	startDate, endDate := q.Get("startDate"), q.Get("endDate")

	employees, _, err := s.db.Employees.List(r.Context(), nil, 0, 500)
	if err != nil {
		s.log.Error().Err(err).Msg("Employee listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	rows, err := s.db.Employees.Sales(r.Context(), nil, startDate, endDate)
	if err != nil {
		s.log.Error().Err(err).Msg("Sales aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	byEmployee := make(map[int64]database.SalesRow, len(rows))
	for _, row := range rows {
		byEmployee[row.EmployeeID] = row
	}

	// Every employee appears, with zeros when nothing was sold.
	all := make([]model.EmployeeSales, 0, len(employees))
	for i := range employees {
		row := byEmployee[employees[i].ID]
		all = append(all, model.EmployeeSales{
			EmployeeID:    employees[i].ID,
			EmployeeName:  employees[i].FullName(),
			EmployeeEmail: employees[i].Email,
			TotalSales:    row.TotalSales,
			TotalRevenue:  row.TotalRevenue,
			StartDate:     startDate,
			EndDate:       endDate,
		})
	}

	s.writeJSON(w, http.StatusOK, model.NewPage(all, page, size))
}
