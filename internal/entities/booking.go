package entities

type RoomOut struct {
	ID       int     `json:"id"`
	Number   string  `json:"number"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Adults   int     `json:"adults"`
	Children int     `json:"children"`
	Status   string  `json:"status"`
}

type BookingCreate struct {
	RoomIDs     []int  `json:"room_ids"`
	GuestName   string `json:"guest_name"`
	GuestMobile string `json:"guest_mobile"`
	GuestEmail  string `json:"guest_email"`
	CheckIn     Date   `json:"check_in"`
	CheckOut    Date   `json:"check_out"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
}

type BookingOut struct {
	ID          int       `json:"id"`
	DisplayID   string    `json:"display_id"`
	GuestName   string    `json:"guest_name"`
	GuestMobile string    `json:"guest_mobile,omitempty"`
	GuestEmail  string    `json:"guest_email,omitempty"`
	Status      string    `json:"status"`
	CheckIn     Date      `json:"check_in"`
	CheckOut    Date      `json:"check_out"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
	IsPackage   bool      `json:"is_package"`
	TotalAmount float64   `json:"total_amount"`
	Rooms       []RoomOut `json:"rooms"`
}

type BookingList struct {
	Total    int          `json:"total"`
	Bookings []BookingOut `json:"bookings"`
}
