package entities

type BookingEmailRoom struct {
	Number string
	Type   string
	Price  float64
}

type BookingEmailData struct {
	GuestName         string
	BookingID         string
	BookingType       string
	PackageName       string
	CheckInFormatted  string
	CheckOutFormatted string
	StayNights        int
	Adults            int
	Children          int
	Rooms             []BookingEmailRoom
	TotalAmount       float64
	CurrentYear       int
}
