package db

import (
	"database/sql"
	"time"
)

type Room struct {
	ID       int
	Number   string
	Type     string
	Price    float64
	Status   string
	Adults   int
	Children int
}

type Booking struct {
	ID          int
	GuestName   string
	GuestMobile sql.NullString
	GuestEmail  sql.NullString
	Status      string
	CheckIn     time.Time
	CheckOut    time.Time
	Adults      int
	Children    int
	TotalAmount float64
	UserID      sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BookingRoom struct {
	ID        int
	BookingID int
	RoomID    int
}

type Package struct {
	ID          int
	Title       string
	Description sql.NullString
	Price       float64
	BookingType string
	RoomTypes   sql.NullString
	Status      string
	CreatedAt   time.Time
}

type PackageBooking struct {
	ID          int
	PackageID   int
	GuestName   string
	GuestMobile sql.NullString
	GuestEmail  sql.NullString
	Status      string
	CheckIn     time.Time
	CheckOut    time.Time
	Adults      int
	Children    int
	TotalAmount float64
	UserID      sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PackageBookingRoom struct {
	ID               int
	PackageBookingID int
	RoomID           int
}

type Checkout struct {
	ID               int
	ReceiptNumber    string
	BookingID        sql.NullInt64
	PackageBookingID sql.NullInt64
	RoomTotal        float64
	FoodTotal        float64
	ServiceTotal     float64
	PackageTotal     float64
	TaxAmount        float64
	DiscountAmount   float64
	GrandTotal       float64
	PaymentMethod    string
	PaymentStatus    string
	StripeSessionID  sql.NullString
	GuestName        string
	RoomNumber       string
	CheckoutDate     time.Time
	CreatedAt        time.Time
}

// ActiveRoom is a room currently held by a live stay, joined with the guest
// holding it.
type ActiveRoom struct {
	RoomID     int
	RoomNumber string
	GuestName  string
	CheckIn    time.Time
	CheckOut   time.Time
	IsPackage  bool
}

// FoodOrderItem is an unbilled food order line joined with its item details.
type FoodOrderItem struct {
	ID       int
	OrderID  int
	RoomID   int
	ItemName string
	Quantity int
	Price    float64
}

type AssignedService struct {
	ID          int
	RoomID      int
	ServiceName string
	Charges     float64
}

type Employee struct {
	ID       int
	Name     string
	Salary   float64
	JoinDate time.Time
}

type WorkingLog struct {
	ID           int
	EmployeeID   int
	Date         time.Time
	CheckInTime  sql.NullTime
	CheckOutTime sql.NullTime
	Location     sql.NullString
}

type Leave struct {
	ID         int
	EmployeeID int
	LeaveType  string
	Status     string
	FromDate   time.Time
	ToDate     time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}
