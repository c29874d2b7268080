package entities

import "time"

type FoodOrderItemOut struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

type ServiceItemOut struct {
	ServiceName string  `json:"service_name"`
	Charges     float64 `json:"charges"`
}

// BillBreakdown is the itemized charge set a bill is computed from. GST
// components are additive; the engine never recomputes them from charges.
type BillBreakdown struct {
	RoomCharges    float64            `json:"room_charges"`
	FoodCharges    float64            `json:"food_charges"`
	ServiceCharges float64            `json:"service_charges"`
	PackageCharges float64            `json:"package_charges"`
	RoomGST        float64            `json:"room_gst"`
	FoodGST        float64            `json:"food_gst"`
	PackageGST     float64            `json:"package_gst"`
	TotalGST       float64            `json:"total_gst"`
	FoodItems      []FoodOrderItemOut `json:"food_items"`
	ServiceItems   []ServiceItemOut   `json:"service_items"`
	TotalDue       float64            `json:"total_due"`
}

type BillSummary struct {
	GuestName      string        `json:"guest_name"`
	RoomNumbers    []string      `json:"room_numbers"`
	NumberOfGuests int           `json:"number_of_guests"`
	StayNights     int           `json:"stay_nights"`
	CheckIn        Date          `json:"check_in"`
	CheckOut       Date          `json:"check_out"`
	Charges        BillBreakdown `json:"charges"`
}

type CheckoutRequest struct {
	PaymentMethod  string  `json:"payment_method"`
	DiscountAmount float64 `json:"discount_amount"`
	CheckoutMode   string  `json:"checkout_mode"`
}

type CheckoutSuccess struct {
	Message      string    `json:"message"`
	CheckoutID   int       `json:"checkout_id"`
	GrandTotal   float64   `json:"grand_total"`
	CheckoutDate time.Time `json:"checkout_date"`
	PaymentURL   string    `json:"payment_url,omitempty"`
}

type CheckoutFull struct {
	ID               int       `json:"id"`
	ReceiptNumber    string    `json:"receipt_number"`
	BookingID        *int      `json:"booking_id"`
	PackageBookingID *int      `json:"package_booking_id"`
	RoomTotal        float64   `json:"room_total"`
	FoodTotal        float64   `json:"food_total"`
	ServiceTotal     float64   `json:"service_total"`
	PackageTotal     float64   `json:"package_total"`
	TaxAmount        float64   `json:"tax_amount"`
	DiscountAmount   float64   `json:"discount_amount"`
	GrandTotal       float64   `json:"grand_total"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentStatus    string    `json:"payment_status"`
	CreatedAt        time.Time `json:"created_at"`
	GuestName        string    `json:"guest_name"`
	RoomNumber       string    `json:"room_number"`
}

// ActiveRoomOption is one entry of the checkout dropdown: either a single
// room or a grouped all-rooms-in-booking option.
type ActiveRoomOption struct {
	RoomNumber   string   `json:"room_number"`
	RoomNumbers  []string `json:"room_numbers"`
	GuestName    string   `json:"guest_name"`
	BookingID    int      `json:"booking_id"`
	BookingType  string   `json:"booking_type"`
	CheckoutMode string   `json:"checkout_mode"`
	DisplayLabel string   `json:"display_label"`
}
