package entities

type WorkingLogOut struct {
	ID            int      `json:"id"`
	Date          Date     `json:"date"`
	CheckInTime   string   `json:"check_in_time,omitempty"`
	CheckOutTime  string   `json:"check_out_time,omitempty"`
	Location      string   `json:"location,omitempty"`
	DurationHours *float64 `json:"duration_hours"`
}

type ClockInRequest struct {
	EmployeeID int    `json:"employee_id"`
	Location   string `json:"location"`
}

type ClockOutRequest struct {
	EmployeeID int `json:"employee_id"`
}

type MonthlyReport struct {
	Month               int     `json:"month"`
	Year                int     `json:"year"`
	TotalDays           int     `json:"total_days"`
	PresentDays         int     `json:"present_days"`
	AbsentDays          int     `json:"absent_days"`
	PaidLeavesTaken     int     `json:"paid_leaves_taken"`
	SickLeavesTaken     int     `json:"sick_leaves_taken"`
	UnpaidLeaves        int     `json:"unpaid_leaves"`
	TotalPaidLeavesYear int     `json:"total_paid_leaves_year"`
	TotalSickLeavesYear int     `json:"total_sick_leaves_year"`
	PaidLeaveBalance    int     `json:"paid_leave_balance"`
	SickLeaveBalance    int     `json:"sick_leave_balance"`
	BaseSalary          float64 `json:"base_salary"`
	Deductions          float64 `json:"deductions"`
	NetSalary           float64 `json:"net_salary"`
}
