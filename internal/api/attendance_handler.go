package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/service"
)

type AttendanceHandler struct {
	Service *service.AttendanceService
}

func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{Service: svc}
}

func (h *AttendanceHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees()
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing employees")
		return
	}
	out := make([]map[string]interface{}, 0, len(employees))
	for _, employee := range employees {
		out = append(out, map[string]interface{}{
			"id":        employee.ID,
			"name":      employee.Name,
			"salary":    employee.Salary,
			"join_date": entities.NewDate(employee.JoinDate),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req entities.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	log, err := h.Service.ClockIn(req)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error clocking in")
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (h *AttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req entities.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	log, err := h.Service.ClockOut(req)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error clocking out")
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// monthYearParams reads month/year query params, defaulting to the current
// month.
func monthYearParams(r *http.Request) (month, year int) {
	now := time.Now()
	month, _ = strconv.Atoi(r.URL.Query().Get("month"))
	if month == 0 {
		month = int(now.Month())
	}
	year, _ = strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

func (h *AttendanceHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.Atoi(mux.Vars(r)["employee_id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid employee id"), "")
		return
	}
	month, year := monthYearParams(r)

	logs, err := h.Service.ListLogs(employeeID, month, year)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing working logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *AttendanceHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.Atoi(mux.Vars(r)["employee_id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid employee id"), "")
		return
	}
	month, year := monthYearParams(r)

	report, err := h.Service.MonthlyReport(employeeID, month, year)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error building monthly report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
