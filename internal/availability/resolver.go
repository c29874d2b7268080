package availability

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"elysian/internal/db"
	apperrors "elysian/internal/errors"
)

const (
	StatusBooked     = "booked"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
	StatusCancelled  = "cancelled"
)

// unknownStatusBlocks is the policy for bookings whose status is missing or
// unrecognized. The backend writes a status on every insert, so such rows are
// treated as non-blocking; flip this constant if mid-creation rows ever need
// to hold their rooms.
const unknownStatusBlocks = false

// RoomRef is a normalized reference to a room held by a booking. Booking
// payloads carry room references either flat ({"id": 3}) or nested under a
// link row ({"room": {"id": 3}}); both decode into the same value.
type RoomRef struct {
	ID int
}

func (r *RoomRef) UnmarshalJSON(b []byte) error {
	var nested struct {
		ID   int `json:"id"`
		Room *struct {
			ID int `json:"id"`
		} `json:"room"`
	}
	if err := json.Unmarshal(b, &nested); err != nil {
		return fmt.Errorf("invalid room reference: %w", err)
	}
	if nested.Room != nil {
		r.ID = nested.Room.ID
		return nil
	}
	r.ID = nested.ID
	return nil
}

func (r RoomRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID int `json:"id"`
	}{r.ID})
}

// BookingSnapshot is the read-only view of a booking the resolver works on.
// Regular and package bookings collapse into this one shape.
type BookingSnapshot struct {
	ID       int       `json:"id"`
	Status   string    `json:"status"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Rooms    []RoomRef `json:"rooms"`
}

// NormalizeStatus lowercases a booking status and folds underscores and
// spaces to hyphens, so "Checked_In" and "checked-in" compare equal.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// Blocks reports whether a booking with the given status occupies its rooms.
func Blocks(status string) bool {
	switch NormalizeStatus(status) {
	case StatusBooked, StatusCheckedIn:
		return true
	case StatusCancelled, StatusCheckedOut, "canceled":
		return false
	default:
		return unknownStatusBlocks
	}
}

// Overlaps is the half-open interval test: a stay [aIn, aOut) collides with
// [bIn, bOut) iff aIn < bOut && aOut > bIn. Back-to-back checkout/check-in on
// the same day is not a collision.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Compute evaluates each candidate room against the booking list for the
// requested window. A room maps to true iff no blocking booking referencing
// it overlaps the window. With either date missing the result is empty: no
// dates selected means nothing to show, not everything available.
func Compute(candidateRooms []db.Room, bookings []BookingSnapshot, checkIn, checkOut time.Time) map[int]bool {
	result := make(map[int]bool)
	if checkIn.IsZero() || checkOut.IsZero() {
		return result
	}

	occupied := make(map[int]bool)
	for _, b := range bookings {
		if !Blocks(b.Status) {
			continue
		}
		if !Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			continue
		}
		for _, ref := range b.Rooms {
			occupied[ref.ID] = true
		}
	}

	for _, room := range candidateRooms {
		result[room.ID] = !occupied[room.ID]
	}
	return result
}

// SelectWholeProperty returns the ids of every available room, sorted. For
// whole-property packages this selection replaces any manual one.
func SelectWholeProperty(allRooms []db.Room, avail map[int]bool) []int {
	var ids []int
	for _, room := range allRooms {
		if avail[room.ID] {
			ids = append(ids, room.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

// Scope is a package's room eligibility, decided once at ingestion instead of
// re-inferring booking_type at every call site.
type Scope struct {
	WholeProperty bool
	Types         map[string]bool
}

// ScopeFor derives the scope from a package row. An explicit whole_property
// booking_type wins; legacy rows with neither booking_type nor room_types are
// treated as whole-property too.
func ScopeFor(pkg db.Package) Scope {
	bt := NormalizeStatus(pkg.BookingType)
	roomTypes := strings.TrimSpace(pkg.RoomTypes.String)
	if bt == "whole-property" || (bt == "" && roomTypes == "") {
		return Scope{WholeProperty: true}
	}
	types := make(map[string]bool)
	for _, t := range strings.Split(roomTypes, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			types[t] = true
		}
	}
	return Scope{Types: types}
}

// FilterRooms narrows the catalog to rooms a package may book. Whole-property
// scopes keep everything; room-type scopes match on trimmed, lowercased type.
func FilterRooms(rooms []db.Room, scope Scope) []db.Room {
	if scope.WholeProperty {
		return rooms
	}
	var out []db.Room
	for _, room := range rooms {
		if scope.Types[strings.ToLower(strings.TrimSpace(room.Type))] {
			out = append(out, room)
		}
	}
	return out
}

// ValidateStay enforces the minimum stay of one night.
func ValidateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperrors.ErrValidation("check_in and check_out are required")
	}
	if !checkOut.After(checkIn) {
		return apperrors.ErrValidation("Check-out date must be at least 1 day after check-in date")
	}
	return nil
}

// CheckCapacity rejects a selection whose summed room capacity cannot hold
// the requested guest counts. Whole-property bookings skip this gate.
func CheckCapacity(selectedRooms []db.Room, adults, children int) error {
	var adultCap, childCap int
	for _, room := range selectedRooms {
		adultCap += room.Adults
		childCap += room.Children
	}
	if adults > adultCap {
		return apperrors.ErrValidation(fmt.Sprintf(
			"The number of adults (%d) exceeds the total adult capacity of the selected rooms (%d adults max). Please select additional rooms or reduce the number of adults.",
			adults, adultCap))
	}
	if children > childCap {
		return apperrors.ErrValidation(fmt.Sprintf(
			"The number of children (%d) exceeds the total children capacity of the selected rooms (%d children max). Please select additional rooms or reduce the number of children.",
			children, childCap))
	}
	return nil
}
