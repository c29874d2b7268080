package entities

type PackageOut struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	BookingType string  `json:"booking_type"`
	RoomTypes   string  `json:"room_types,omitempty"`
	Status      string  `json:"status"`
}

type PackageCreate struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	BookingType string  `json:"booking_type"`
	RoomTypes   string  `json:"room_types"`
}

type PackageBookingCreate struct {
	PackageID   int    `json:"package_id"`
	RoomIDs     []int  `json:"room_ids"`
	GuestName   string `json:"guest_name"`
	GuestMobile string `json:"guest_mobile"`
	GuestEmail  string `json:"guest_email"`
	CheckIn     Date   `json:"check_in"`
	CheckOut    Date   `json:"check_out"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
}

type PackageBookingOut struct {
	ID          int         `json:"id"`
	DisplayID   string      `json:"display_id"`
	PackageID   int         `json:"package_id"`
	GuestName   string      `json:"guest_name"`
	GuestMobile string      `json:"guest_mobile,omitempty"`
	GuestEmail  string      `json:"guest_email,omitempty"`
	Status      string      `json:"status"`
	CheckIn     Date        `json:"check_in"`
	CheckOut    Date        `json:"check_out"`
	Adults      int         `json:"adults"`
	Children    int         `json:"children"`
	Rooms       []RoomOut   `json:"rooms"`
	Package     *PackageOut `json:"package,omitempty"`
}
