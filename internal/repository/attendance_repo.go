package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"elysian/internal/db"
)

type AttendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(database *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: database}
}

func (r *AttendanceRepository) GetEmployeeByID(id int) (*db.Employee, error) {
	var employee db.Employee
	err := r.DB.QueryRow(
		`SELECT id, name, salary, join_date FROM employees WHERE id = $1`, id,
	).Scan(&employee.ID, &employee.Name, &employee.Salary, &employee.JoinDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying employee: %w", err)
	}
	return &employee, nil
}

func (r *AttendanceRepository) ListEmployees() ([]db.Employee, error) {
	rows, err := r.DB.Query(`SELECT id, name, salary, join_date FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying employees: %w", err)
	}
	defer rows.Close()

	var employees []db.Employee
	for rows.Next() {
		var employee db.Employee
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Salary, &employee.JoinDate); err != nil {
			return nil, fmt.Errorf("error scanning employee: %w", err)
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

// GetOpenLog returns the employee's working log that has a clock-in but no
// clock-out yet, or sql.ErrNoRows. At most one log per employee is open at a
// time, whichever day it was started on.
func (r *AttendanceRepository) GetOpenLog(employeeID int) (*db.WorkingLog, error) {
	var log db.WorkingLog
	err := r.DB.QueryRow(`
		SELECT id, employee_id, date, check_in_time, check_out_time, location
		FROM working_logs
		WHERE employee_id = $1 AND check_out_time IS NULL
		ORDER BY id DESC
		LIMIT 1`, employeeID,
	).Scan(&log.ID, &log.EmployeeID, &log.Date, &log.CheckInTime, &log.CheckOutTime, &log.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying working log: %w", err)
	}
	return &log, nil
}

func (r *AttendanceRepository) CreateWorkingLog(log *db.WorkingLog) error {
	query := `
		INSERT INTO working_logs (employee_id, date, check_in_time, check_out_time, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.DB.QueryRow(query, log.EmployeeID, log.Date, log.CheckInTime, log.CheckOutTime, log.Location).Scan(&log.ID)
}

// CloseWorkingLog records the clock-out and pins the log to logDate, which
// moves the log forward when the shift crossed midnight.
func (r *AttendanceRepository) CloseWorkingLog(id int, checkOut, logDate time.Time) error {
	result, err := r.DB.Exec(
		`UPDATE working_logs SET check_out_time = $1, date = $2 WHERE id = $3 AND check_out_time IS NULL`,
		checkOut, logDate, id,
	)
	if err != nil {
		return fmt.Errorf("error closing working log: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r *AttendanceRepository) ListWorkingLogs(employeeID int, from, to time.Time) ([]db.WorkingLog, error) {
	rows, err := r.DB.Query(`
		SELECT id, employee_id, date, check_in_time, check_out_time, location
		FROM working_logs
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, id`, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying working logs: %w", err)
	}
	defer rows.Close()

	var logs []db.WorkingLog
	for rows.Next() {
		var log db.WorkingLog
		if err := rows.Scan(&log.ID, &log.EmployeeID, &log.Date, &log.CheckInTime, &log.CheckOutTime, &log.Location); err != nil {
			return nil, fmt.Errorf("error scanning working log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// CountWorkedDays counts the distinct days in the range on which the employee
// has at least one working log.
func (r *AttendanceRepository) CountWorkedDays(employeeID int, from, to time.Time) (int, error) {
	var days int
	err := r.DB.QueryRow(`
		SELECT COUNT(DISTINCT date)
		FROM working_logs
		WHERE employee_id = $1 AND date >= $2 AND date <= $3`,
		employeeID, from, to,
	).Scan(&days)
	if err != nil {
		return 0, fmt.Errorf("error counting worked days: %w", err)
	}
	return days, nil
}

func (r *AttendanceRepository) ListApprovedLeaves(employeeID int, from, to time.Time) ([]db.Leave, error) {
	rows, err := r.DB.Query(`
		SELECT id, employee_id, leave_type, status, from_date, to_date
		FROM leaves
		WHERE employee_id = $1 AND status = 'approved'
		  AND from_date <= $3 AND to_date >= $2
		ORDER BY from_date`, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying leaves: %w", err)
	}
	defer rows.Close()

	var leaves []db.Leave
	for rows.Next() {
		var leave db.Leave
		if err := rows.Scan(&leave.ID, &leave.EmployeeID, &leave.LeaveType, &leave.Status, &leave.FromDate, &leave.ToDate); err != nil {
			return nil, fmt.Errorf("error scanning leave: %w", err)
		}
		leaves = append(leaves, leave)
	}
	return leaves, rows.Err()
}
