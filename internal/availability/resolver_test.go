package availability

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elysian/internal/db"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func booking(status string, checkIn, checkOut string, roomIDs ...int) BookingSnapshot {
	refs := make([]RoomRef, 0, len(roomIDs))
	for _, id := range roomIDs {
		refs = append(refs, RoomRef{ID: id})
	}
	return BookingSnapshot{Status: status, CheckIn: day(checkIn), CheckOut: day(checkOut), Rooms: refs}
}

func rooms(ids ...int) []db.Room {
	out := make([]db.Room, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.Room{ID: id, Number: "R", Type: "Cottage"})
	}
	return out
}

func TestComputeNoFalseConflict(t *testing.T) {
	bookings := []BookingSnapshot{
		booking("booked", "2024-01-01", "2024-01-05", 1),
	}
	avail := Compute(rooms(1), bookings, day("2024-02-01"), day("2024-02-03"))
	assert.True(t, avail[1])
}

func TestComputeBoundaryExclusive(t *testing.T) {
	bookings := []BookingSnapshot{
		booking("booked", "2024-01-10", "2024-01-15", 1),
	}

	// Back-to-back checkout/check-in on the same day is allowed.
	avail := Compute(rooms(1), bookings, day("2024-01-15"), day("2024-01-20"))
	assert.True(t, avail[1])

	// A stay ending exactly on the booking's check-in does not conflict.
	avail = Compute(rooms(1), bookings, day("2024-01-05"), day("2024-01-10"))
	assert.True(t, avail[1])

	// Any real overlap does.
	avail = Compute(rooms(1), bookings, day("2024-01-14"), day("2024-01-16"))
	assert.False(t, avail[1])
}

func TestComputeNonBlockingStatuses(t *testing.T) {
	for _, status := range []string{"cancelled", "canceled", "checked-out", "checked_out", "", "pending-review"} {
		bookings := []BookingSnapshot{
			booking(status, "2024-01-10", "2024-01-15", 1),
		}
		avail := Compute(rooms(1), bookings, day("2024-01-12"), day("2024-01-14"))
		assert.True(t, avail[1], "status %q should not block", status)
	}
}

func TestComputeStatusNormalization(t *testing.T) {
	for _, status := range []string{"Booked", "checked_in", "Checked-In", "CHECKED IN"} {
		bookings := []BookingSnapshot{
			booking(status, "2024-01-10", "2024-01-15", 1),
		}
		avail := Compute(rooms(1), bookings, day("2024-01-12"), day("2024-01-14"))
		assert.False(t, avail[1], "status %q should block", status)
	}
}

func TestComputeMissingDates(t *testing.T) {
	bookings := []BookingSnapshot{
		booking("booked", "2024-01-10", "2024-01-15", 1),
	}
	assert.Empty(t, Compute(rooms(1, 2), bookings, time.Time{}, day("2024-01-20")))
	assert.Empty(t, Compute(rooms(1, 2), bookings, day("2024-01-01"), time.Time{}))
}

func TestComputeZeroLengthWindow(t *testing.T) {
	bookings := []BookingSnapshot{
		booking("booked", "2024-01-10", "2024-01-15", 1),
	}
	// Rejected upstream by the minimum-stay gate, but a zero-length window
	// must still produce no false conflict outside the booking...
	avail := Compute(rooms(1), bookings, day("2024-01-20"), day("2024-01-20"))
	assert.True(t, avail[1])
	// ...and no false availability inside it.
	avail = Compute(rooms(1), bookings, day("2024-01-12"), day("2024-01-12"))
	assert.False(t, avail[1])
}

func TestComputeOnlyCandidateRoomsInResult(t *testing.T) {
	avail := Compute(rooms(1, 2), nil, day("2024-01-01"), day("2024-01-02"))
	assert.Len(t, avail, 2)
	_, ok := avail[3]
	assert.False(t, ok)
}

func TestSelectWholePropertyExhaustive(t *testing.T) {
	all := rooms(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	bookings := []BookingSnapshot{
		booking("booked", "2024-03-10", "2024-03-15", 2, 5),
		booking("checked-in", "2024-03-12", "2024-03-20", 9),
		booking("booked", "2024-04-01", "2024-04-10", 1, 3, 4, 6, 7, 8, 10),
	}

	avail := Compute(all, bookings, day("2024-03-11"), day("2024-03-13"))
	assert.Equal(t, []int{1, 3, 4, 6, 7, 8, 10}, SelectWholeProperty(all, avail))

	// Changing the window shrinks the selection, discarding prior picks.
	avail = Compute(all, bookings, day("2024-04-02"), day("2024-04-04"))
	assert.Equal(t, []int{2, 5, 9}, SelectWholeProperty(all, avail))
}

func TestRoomRefDualShape(t *testing.T) {
	var snap BookingSnapshot
	payload := `{"id": 7, "status": "booked", "rooms": [{"id": 3}, {"room": {"id": 4}}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))
	require.Len(t, snap.Rooms, 2)
	assert.Equal(t, 3, snap.Rooms[0].ID)
	assert.Equal(t, 4, snap.Rooms[1].ID)
}

func TestScopeFor(t *testing.T) {
	whole := ScopeFor(db.Package{BookingType: "whole_property"})
	assert.True(t, whole.WholeProperty)

	// Legacy rows with neither field are whole-property.
	legacy := ScopeFor(db.Package{})
	assert.True(t, legacy.WholeProperty)

	typed := ScopeFor(db.Package{
		BookingType: "room_type",
		RoomTypes:   sql.NullString{String: "Cottage, Non AC Double Room", Valid: true},
	})
	assert.False(t, typed.WholeProperty)
	assert.True(t, typed.Types["cottage"])
	assert.True(t, typed.Types["non ac double room"])
}

func TestFilterRoomsCaseInsensitive(t *testing.T) {
	catalog := []db.Room{
		{ID: 1, Type: "Cottage"},
		{ID: 2, Type: " cottage "},
		{ID: 3, Type: "Suite"},
	}
	scope := ScopeFor(db.Package{
		BookingType: "room_type",
		RoomTypes:   sql.NullString{String: "COTTAGE", Valid: true},
	})
	filtered := FilterRooms(catalog, scope)
	require.Len(t, filtered, 2)
	assert.Equal(t, 1, filtered[0].ID)
	assert.Equal(t, 2, filtered[1].ID)

	assert.Len(t, FilterRooms(catalog, Scope{WholeProperty: true}), 3)
}

func TestCheckCapacity(t *testing.T) {
	selected := []db.Room{
		{ID: 1, Adults: 2, Children: 1},
		{ID: 2, Adults: 2, Children: 1},
	}
	assert.NoError(t, CheckCapacity(selected, 4, 2))
	assert.Error(t, CheckCapacity(selected, 5, 0))
	assert.Error(t, CheckCapacity(selected, 2, 3))
}

func TestValidateStay(t *testing.T) {
	assert.NoError(t, ValidateStay(day("2024-01-01"), day("2024-01-02")))
	assert.Error(t, ValidateStay(day("2024-01-01"), day("2024-01-01")))
	assert.Error(t, ValidateStay(day("2024-01-02"), day("2024-01-01")))
	assert.Error(t, ValidateStay(time.Time{}, day("2024-01-01")))
}
