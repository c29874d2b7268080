package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elysian/internal/db"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthlyReportDeductsUnpaidDays(t *testing.T) {
	employee := db.Employee{
		ID:       1,
		Name:     "Asha",
		Salary:   31000,
		JoinDate: date(2023, time.January, 10),
	}
	leaves := []db.Leave{
		{EmployeeID: 1, LeaveType: LeaveTypePaid, Status: "approved", FromDate: date(2024, time.January, 5), ToDate: date(2024, time.January, 6)},
		{EmployeeID: 1, LeaveType: LeaveTypeSick, Status: "approved", FromDate: date(2024, time.January, 10), ToDate: date(2024, time.January, 10)},
	}

	report := BuildMonthlyReport(employee, 27, leaves, 1, 2024)
	require.NotNil(t, report)

	assert.Equal(t, 31, report.TotalDays)
	assert.Equal(t, 27, report.PresentDays)
	assert.Equal(t, 4, report.AbsentDays)
	assert.Equal(t, 2, report.PaidLeavesTaken)
	assert.Equal(t, 1, report.SickLeavesTaken)
	assert.Equal(t, 1, report.UnpaidLeaves)

	// 31000 over 31 days means 1000 per unpaid day.
	assert.InDelta(t, 1000.0, report.Deductions, 0.001)
	assert.InDelta(t, 30000.0, report.NetSalary, 0.001)
}

func TestBuildMonthlyReportAccrualCapsAtTwelveMonths(t *testing.T) {
	employee := db.Employee{Salary: 30000, JoinDate: date(2020, time.May, 1)}

	report := BuildMonthlyReport(employee, 30, nil, 6, 2024)

	assert.Equal(t, 12*paidLeavesPerServiceMonth, report.TotalPaidLeavesYear)
	assert.Equal(t, 12*sickLeavesPerServiceMonth, report.TotalSickLeavesYear)
}

func TestBuildMonthlyReportNewHireAccruesPartially(t *testing.T) {
	employee := db.Employee{Salary: 30000, JoinDate: date(2024, time.June, 1)}

	report := BuildMonthlyReport(employee, 30, nil, 9, 2024)

	// Three full months of service by the end of September.
	assert.Equal(t, 3*paidLeavesPerServiceMonth, report.TotalPaidLeavesYear)
	assert.Equal(t, 3*sickLeavesPerServiceMonth, report.TotalSickLeavesYear)
}

func TestBuildMonthlyReportFullAttendanceNoDeduction(t *testing.T) {
	employee := db.Employee{Salary: 28000, JoinDate: date(2023, time.March, 1)}

	report := BuildMonthlyReport(employee, 29, nil, 2, 2024)

	assert.Equal(t, 29, report.TotalDays)
	assert.Equal(t, 0, report.AbsentDays)
	assert.Equal(t, 0, report.UnpaidLeaves)
	assert.Zero(t, report.Deductions)
	assert.Equal(t, employee.Salary, report.NetSalary)
}

func TestCountLeaveDaysClipsToWindow(t *testing.T) {
	leaves := []db.Leave{
		{LeaveType: LeaveTypePaid, FromDate: date(2024, time.January, 28), ToDate: date(2024, time.February, 3)},
	}

	jan := CountLeaveDays(leaves, LeaveTypePaid, date(2024, time.January, 1), date(2024, time.January, 31))
	feb := CountLeaveDays(leaves, LeaveTypePaid, date(2024, time.February, 1), date(2024, time.February, 29))

	assert.Equal(t, 4, jan)
	assert.Equal(t, 3, feb)
}

func TestCountLeaveDaysIgnoresOtherTypes(t *testing.T) {
	leaves := []db.Leave{
		{LeaveType: LeaveTypeSick, FromDate: date(2024, time.March, 4), ToDate: date(2024, time.March, 5)},
	}

	days := CountLeaveDays(leaves, LeaveTypePaid, date(2024, time.March, 1), date(2024, time.March, 31))
	assert.Zero(t, days)
}

func TestMonthsOfService(t *testing.T) {
	join := date(2024, time.March, 15)

	assert.Equal(t, 0, MonthsOfService(join, date(2024, time.March, 20)))
	assert.Equal(t, 2, MonthsOfService(join, date(2024, time.June, 14)))
	assert.Equal(t, 3, MonthsOfService(join, date(2024, time.June, 15)))
	assert.Equal(t, 0, MonthsOfService(join, date(2024, time.January, 1)))
}
