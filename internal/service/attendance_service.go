package service

import (
	"database/sql"
	"errors"
	"time"

	"elysian/internal/db"
	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/repository"
)

const (
	paidLeavesPerServiceMonth = 4
	sickLeavesPerServiceMonth = 1
	maxServiceMonths          = 12

	LeaveTypePaid = "paid"
	LeaveTypeSick = "sick"
)

type AttendanceService struct {
	Repo *repository.AttendanceRepository
}

func NewAttendanceService(repo *repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{Repo: repo}
}

func (s *AttendanceService) ListEmployees() ([]db.Employee, error) {
	return s.Repo.ListEmployees()
}

// ClockIn opens today's working log for the employee. A second clock-in
// without an intervening clock-out is rejected.
func (s *AttendanceService) ClockIn(req entities.ClockInRequest) (*entities.WorkingLogOut, error) {
	if _, err := s.Repo.GetEmployeeByID(req.EmployeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("employee not found")
		}
		return nil, err
	}

	now := time.Now()
	today := dateOnly(now)

	if _, err := s.Repo.GetOpenLog(req.EmployeeID); err == nil {
		return nil, apperrors.ErrConflict("employee is already clocked in")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	log := &db.WorkingLog{
		EmployeeID:  req.EmployeeID,
		Date:        today,
		CheckInTime: sql.NullTime{Time: now, Valid: true},
		Location:    nullString(req.Location),
	}
	if err := s.Repo.CreateWorkingLog(log); err != nil {
		return nil, err
	}
	out := toWorkingLogOut(*log)
	return &out, nil
}

// ClockOut closes the employee's open log. A shift that crosses midnight is
// recorded on the clock-out day.
func (s *AttendanceService) ClockOut(req entities.ClockOutRequest) (*entities.WorkingLogOut, error) {
	now := time.Now()
	today := dateOnly(now)

	log, err := s.Repo.GetOpenLog(req.EmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrConflict("employee is not clocked in")
		}
		return nil, err
	}
	if err := s.Repo.CloseWorkingLog(log.ID, now, today); err != nil {
		return nil, err
	}

	log.Date = today
	log.CheckOutTime = sql.NullTime{Time: now, Valid: true}
	out := toWorkingLogOut(*log)
	return &out, nil
}

func (s *AttendanceService) ListLogs(employeeID, month, year int) ([]entities.WorkingLogOut, error) {
	from, to, err := monthRange(month, year)
	if err != nil {
		return nil, err
	}
	logs, err := s.Repo.ListWorkingLogs(employeeID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]entities.WorkingLogOut, 0, len(logs))
	for _, log := range logs {
		out = append(out, toWorkingLogOut(log))
	}
	return out, nil
}

// MonthlyReport aggregates attendance, leave usage and the resulting salary
// deduction for one employee and month.
func (s *AttendanceService) MonthlyReport(employeeID, month, year int) (*entities.MonthlyReport, error) {
	from, to, err := monthRange(month, year)
	if err != nil {
		return nil, err
	}

	employee, err := s.Repo.GetEmployeeByID(employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("employee not found")
		}
		return nil, err
	}

	presentDays, err := s.Repo.CountWorkedDays(employeeID, from, to)
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	leaves, err := s.Repo.ListApprovedLeaves(employeeID, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}

	return BuildMonthlyReport(*employee, presentDays, leaves, month, year), nil
}

// BuildMonthlyReport runs the pure aggregation: leave entitlements accrue per
// month of service (capped at a year of accrual), unpaid absence days are
// deducted from salary at the month's per-day rate.
func BuildMonthlyReport(employee db.Employee, presentDays int, approvedLeaves []db.Leave, month, year int) *entities.MonthlyReport {
	from, to, _ := monthRange(month, year)
	totalDays := to.Day()

	paidTaken := CountLeaveDays(approvedLeaves, LeaveTypePaid, from, to)
	sickTaken := CountLeaveDays(approvedLeaves, LeaveTypeSick, from, to)

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	paidTakenYear := CountLeaveDays(approvedLeaves, LeaveTypePaid, yearStart, yearEnd)
	sickTakenYear := CountLeaveDays(approvedLeaves, LeaveTypeSick, yearStart, yearEnd)

	serviceMonths := MonthsOfService(employee.JoinDate, to)
	if serviceMonths > maxServiceMonths {
		serviceMonths = maxServiceMonths
	}
	totalPaidYear := serviceMonths * paidLeavesPerServiceMonth
	totalSickYear := serviceMonths * sickLeavesPerServiceMonth

	absentDays := totalDays - presentDays
	if absentDays < 0 {
		absentDays = 0
	}
	unpaidLeaves := absentDays - paidTaken - sickTaken
	if unpaidLeaves < 0 {
		unpaidLeaves = 0
	}

	perDay := employee.Salary / float64(totalDays)
	deductions := perDay * float64(unpaidLeaves)

	return &entities.MonthlyReport{
		Month:               month,
		Year:                year,
		TotalDays:           totalDays,
		PresentDays:         presentDays,
		AbsentDays:          absentDays,
		PaidLeavesTaken:     paidTaken,
		SickLeavesTaken:     sickTaken,
		UnpaidLeaves:        unpaidLeaves,
		TotalPaidLeavesYear: totalPaidYear,
		TotalSickLeavesYear: totalSickYear,
		PaidLeaveBalance:    maxInt(0, totalPaidYear-paidTakenYear),
		SickLeaveBalance:    maxInt(0, totalSickYear-sickTakenYear),
		BaseSalary:          employee.Salary,
		Deductions:          deductions,
		NetSalary:           employee.Salary - deductions,
	}
}

// CountLeaveDays sums, per leave of the given type, the days of its range
// that fall inside [from, to].
func CountLeaveDays(leaves []db.Leave, leaveType string, from, to time.Time) int {
	days := 0
	for _, leave := range leaves {
		if leave.LeaveType != leaveType {
			continue
		}
		start := maxTime(dateOnly(leave.FromDate), from)
		end := minTime(dateOnly(leave.ToDate), to)
		if end.Before(start) {
			continue
		}
		days += int(end.Sub(start).Hours()/24) + 1
	}
	return days
}

// MonthsOfService counts full calendar months between the join date and asOf.
func MonthsOfService(joinDate, asOf time.Time) int {
	if asOf.Before(joinDate) {
		return 0
	}
	months := (asOf.Year()-joinDate.Year())*12 + int(asOf.Month()) - int(joinDate.Month())
	if asOf.Day() < joinDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func monthRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, apperrors.ErrValidation("month must be between 1 and 12")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to, nil
}

func toWorkingLogOut(log db.WorkingLog) entities.WorkingLogOut {
	out := entities.WorkingLogOut{
		ID:       log.ID,
		Date:     entities.NewDate(log.Date),
		Location: log.Location.String,
	}
	if log.CheckInTime.Valid {
		out.CheckInTime = log.CheckInTime.Time.Format(time.RFC3339)
	}
	if log.CheckOutTime.Valid {
		out.CheckOutTime = log.CheckOutTime.Time.Format(time.RFC3339)
	}
	if log.CheckInTime.Valid && log.CheckOutTime.Valid {
		hours := log.CheckOutTime.Time.Sub(log.CheckInTime.Time).Hours()
		out.DurationHours = &hours
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
