package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/saikamaik/airline-sub000/internal/server/database"
	"github.com/saikamaik/airline-sub000/pkg/model"
)

// requestModels converts stored requests to the wire shape, filling the
// tour and employee display names in one batch per page.
func (s *Server) requestModels(ctx context.Context, requests []database.ClientRequest) ([]model.ClientRequest, error) {
	tourIDs := make([]int64, 0, len(requests))
	employeeIDs := make([]int64, 0, len(requests))
	for i := range requests {
		tourIDs = append(tourIDs, requests[i].TourID)
		if requests[i].EmployeeID != nil {
			employeeIDs = append(employeeIDs, *requests[i].EmployeeID)
		}
	}

	tourNames, err := s.db.Tours.NamesByID(ctx, tourIDs)
	if err != nil {
		return nil, err
	}
	employeeNames, err := s.db.Employees.NamesByID(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}

	result := make([]model.ClientRequest, 0, len(requests))
	for i := range requests {
		employeeName := ""
		if requests[i].EmployeeID != nil {
			employeeName = employeeNames[*requests[i].EmployeeID]
		}
		result = append(result, requests[i].ToModel(tourNames[requests[i].TourID], employeeName))
	}
	return result, nil
}

func (s *Server) writeRequestPage(w http.ResponseWriter, r *http.Request, requests []database.ClientRequest, total int64, page, size int) {
	content, err := s.requestModels(r.Context(), requests)
	if err != nil {
		s.log.Error().Err(err).Msg("Request display join failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, model.PageOf(content, total, page, size))
}

func (s *Server) writeOneRequest(w http.ResponseWriter, r *http.Request, req *database.ClientRequest, status int) {
	content, err := s.requestModels(r.Context(), []database.ClientRequest{*req})
	if err != nil {
		s.log.Error().Err(err).Msg("Request display join failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeJSON(w, status, content[0])
}

func (s *Server) handleAdminRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size := pageParams(r)

	status := q.Get("status")
	if status != "" && !model.ValidStatus(status) {
		s.writeError(w, r, http.StatusBadRequest, "Unknown status "+status)
		return
	}
	priority := q.Get("priority")
	if priority != "" && !model.ValidPriority(priority) {
		s.writeError(w, r, http.StatusBadRequest, "Unknown priority "+priority)
		return
	}

	filter := database.RequestFilter{
		Status:    status,
		Priority:  priority,
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Page:      page,
		Size:      size,
	}

	requests, total, err := s.db.Requests.List(r.Context(), filter)
	if err != nil {
		s.log.Error().Err(err).Msg("Request listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeRequestPage(w, r, requests, total, page, size)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request ID")
		return
	}

	req, err := s.db.Requests.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Request not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Request lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeOneRequest(w, r, req, http.StatusOK)
}

// createRequest validates and stores a new booking request. userID is set
// for the mobile client flow so the account can list its own requests later.
func (s *Server) createRequest(w http.ResponseWriter, r *http.Request, tourID int64, userID *int64) {
	var m model.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if tourID == 0 {
		tourID = m.TourID
	}
	if tourID <= 0 {
		s.writeError(w, r, http.StatusBadRequest, "Tour ID is required")
		return
	}
	if m.UserName == "" {
		s.writeError(w, r, http.StatusBadRequest, "Client name is required")
		return
	}
	if !strings.Contains(m.UserEmail, "@") {
		s.writeError(w, r, http.StatusBadRequest, "A valid email address is required")
		return
	}

	tour, err := s.db.Tours.Get(r.Context(), tourID)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Tour not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Tour lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !tour.Active {
		s.writeError(w, r, http.StatusConflict, "Tour is not open for booking")
		return
	}

	priority := m.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}
	if !model.ValidPriority(priority) {
		s.writeError(w, r, http.StatusBadRequest, "Unknown priority "+priority)
		return
	}

	req := &database.ClientRequest{
		TourID:    tourID,
		UserID:    userID,
		UserName:  m.UserName,
		UserEmail: m.UserEmail,
		UserPhone: m.UserPhone,
		Comment:   m.Comment,
		Status:    model.StatusNew,
		Priority:  priority,
	}
	if err := s.db.Requests.Create(r.Context(), req); err != nil {
		s.log.Error().Err(err).Msg("Request insert failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("request_id", req.ID).Int64("tour_id", tourID).Msg("Booking request created")
	s.writeOneRequest(w, r, req, http.StatusCreated)
}

func (s *Server) handleAdminCreateRequest(w http.ResponseWriter, r *http.Request) {
	s.createRequest(w, r, 0, nil)
}

func (s *Server) handleRequestBooking(w http.ResponseWriter, r *http.Request) {
	tourID, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}
	claims := claimsFrom(r.Context())
	s.createRequest(w, r, tourID, &claims.UserID)
}

func (s *Server) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, size := pageParams(r)

	requests, total, err := s.db.Requests.List(r.Context(), database.RequestFilter{
		UserID: &claims.UserID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Request listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeRequestPage(w, r, requests, total, page, size)
}

// updateRequestStatus applies a lifecycle transition. An employee assignment
// is accepted only together with IN_PROGRESS or COMPLETED; moving a request
// back to NEW or CANCELLED clears the assignment.
func (s *Server) updateRequestStatus(w http.ResponseWriter, r *http.Request, id int64, status string, employeeID *int64) {
	if !model.ValidStatus(status) {
		s.writeError(w, r, http.StatusBadRequest, "Unknown status "+status)
		return
	}

	req, err := s.db.Requests.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Request not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Request lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	assignable := status == model.StatusInProgress || status == model.StatusCompleted
	if employeeID != nil && !assignable {
		s.writeError(w, r, http.StatusBadRequest, "An employee can only be assigned together with IN_PROGRESS or COMPLETED")
		return
	}

	var assigned *int64
	if assignable {
		assigned = req.EmployeeID
		if employeeID != nil {
			if _, err := s.db.Employees.Get(r.Context(), *employeeID); errors.Is(err, database.ErrNotFound) {
				s.writeError(w, r, http.StatusNotFound, "Employee not found")
				return
			} else if err != nil {
				s.log.Error().Err(err).Msg("Employee lookup failed")
				s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
				return
			}
			assigned = employeeID
		}
	}

	if err := s.db.Requests.UpdateStatus(r.Context(), id, status, assigned); err != nil {
		s.log.Error().Err(err).Msg("Request update failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	req.Status = status
	req.EmployeeID = assigned
	s.log.Info().Int64("request_id", id).Str("status", status).Msg("Request status updated")
	s.writeOneRequest(w, r, req, http.StatusOK)
}

func (s *Server) handleUpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request ID")
		return
	}

	status := r.URL.Query().Get("status")
	var employeeID *int64
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, "Invalid employeeId")
			return
		}
		employeeID = &v
	}

	s.updateRequestStatus(w, r, id, status, employeeID)
}

func (s *Server) handleRequestsByTour(w http.ResponseWriter, r *http.Request) {
	tourID, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid tour ID")
		return
	}
	page, size := pageParams(r)

	requests, total, err := s.db.Requests.List(r.Context(), database.RequestFilter{
		TourID: &tourID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Request listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeRequestPage(w, r, requests, total, page, size)
}

// employeeFromClaims resolves the staff record of the authenticated account.
func (s *Server) employeeFromClaims(w http.ResponseWriter, r *http.Request) (*database.Employee, bool) {
	claims := claimsFrom(r.Context())
	emp, err := s.db.Employees.GetByUserID(r.Context(), claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusForbidden, "No employee record linked to this account")
		return nil, false
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Employee lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return emp, true
}

func (s *Server) handleEmployeeProfile(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.employeeFromClaims(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, emp.ToModel())
}

func (s *Server) handleEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.employeeFromClaims(w, r)
	if !ok {
		return
	}
	page, size := pageParams(r)

	requests, total, err := s.db.Requests.List(r.Context(), database.RequestFilter{
		Status:     r.URL.Query().Get("status"),
		EmployeeID: &emp.ID,
		Page:       page,
		Size:       size,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Request listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeRequestPage(w, r, requests, total, page, size)
}

func (s *Server) handleEmployeeAvailableRequests(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.employeeFromClaims(w, r); !ok {
		return
	}
	page, size := pageParams(r)

	status := r.URL.Query().Get("status")
	if status == "" {
		status = model.StatusNew
	}

	requests, total, err := s.db.Requests.List(r.Context(), database.RequestFilter{
		Status:     status,
		Unassigned: true,
		Page:       page,
		Size:       size,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Request listing failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.writeRequestPage(w, r, requests, total, page, size)
}

func (s *Server) handleEmployeeTakeRequest(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.employeeFromClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request ID")
		return
	}

	taken, err := s.db.Requests.TakeUnassigned(r.Context(), id, emp.ID, model.StatusInProgress)
	if err != nil {
		s.log.Error().Err(err).Msg("Request take failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !taken {
		if _, err := s.db.Requests.Get(r.Context(), id); errors.Is(err, database.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, "Request not found")
		} else {
			s.writeError(w, r, http.StatusConflict, "Request is already assigned")
		}
		return
	}

	req, err := s.db.Requests.Get(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("Request lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info().Int64("request_id", id).Int64("employee_id", emp.ID).Msg("Request taken")
	s.writeOneRequest(w, r, req, http.StatusOK)
}

func (s *Server) handleEmployeeUpdateStatus(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.employeeFromClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request ID")
		return
	}

	req, err := s.db.Requests.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, "Request not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Request lookup failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if req.EmployeeID == nil || *req.EmployeeID != emp.ID {
		s.writeError(w, r, http.StatusForbidden, "Request is not assigned to you")
		return
	}

	s.updateRequestStatus(w, r, id, r.URL.Query().Get("status"), nil)
}

func (s *Server) handleEmployeeMySales(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.employeeFromClaims(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	sales := s.salesFor(w, r, emp, q.Get("startDate"), q.Get("endDate"))
	if sales == nil {
		return
	}
	s.writeJSON(w, http.StatusOK, sales)
}

// salesFor computes one employee's sales aggregate; returns nil after
// writing an error response.
func (s *Server) salesFor(w http.ResponseWriter, r *http.Request, emp *database.Employee, startDate, endDate string) *model.EmployeeSales {
	rows, err := s.db.Employees.Sales(r.Context(), &emp.ID, startDate, endDate)
	if err != nil {
		s.log.Error().Err(err).Msg("Sales aggregate failed")
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return nil
	}

	sales := &model.EmployeeSales{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.FullName(),
		EmployeeEmail: emp.Email,
		StartDate:     startDate,
		EndDate:       endDate,
	}
	if len(rows) > 0 {
		sales.TotalSales = rows[0].TotalSales
		sales.TotalRevenue = rows[0].TotalRevenue
	}
	return sales
}
