package entities

type AvailabilityRequest struct {
	CheckIn  Date   `json:"check_in"`
	CheckOut Date   `json:"check_out"`
	RoomType string `json:"room_type,omitempty"`
}

type AvailabilityResponse struct {
	CheckIn   Date         `json:"check_in"`
	CheckOut  Date         `json:"check_out"`
	Rooms     map[int]bool `json:"rooms"`
	Available []int        `json:"available_room_ids"`
}
