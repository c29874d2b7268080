package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"elysian/internal/availability"
	"elysian/internal/db"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// HasConflict reports whether any blocking stay overlaps [checkIn, checkOut)
// on one of the given rooms. Both plain bookings and package bookings count.
// The bounds are half-open, so back-to-back stays on the same day do not clash.
func (r *BookingRepository) HasConflict(roomIDs []int, checkIn, checkOut time.Time, excludeBookingID int) (bool, error) {
	if len(roomIDs) == 0 {
		return false, nil
	}
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS (
			SELECT 1
			FROM bookings b
			JOIN booking_rooms br ON br.booking_id = b.id
			WHERE br.room_id = ANY($1)
			  AND b.status IN ('booked', 'checked-in')
			  AND b.check_in < $3
			  AND b.check_out > $2
			  AND b.id <> $4
			UNION ALL
			SELECT 1
			FROM package_bookings pb
			JOIN package_booking_rooms pbr ON pbr.package_booking_id = pb.id
			WHERE pbr.room_id = ANY($1)
			  AND pb.status IN ('booked', 'checked-in')
			  AND pb.check_in < $3
			  AND pb.check_out > $2
		)`, pq.Array(roomIDs), checkIn, checkOut, excludeBookingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking booking conflicts: %w", err)
	}
	return exists, nil
}

// HasGuestOverlap reports whether the same guest mobile already holds an
// active booking overlapping the requested window.
func (r *BookingRepository) HasGuestOverlap(guestMobile string, checkIn, checkOut time.Time) (bool, error) {
	if guestMobile == "" {
		return false, nil
	}
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE guest_mobile = $1
			  AND status IN ('booked', 'checked-in')
			  AND check_in < $3
			  AND check_out > $2
		)`, guestMobile, checkIn, checkOut).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking guest overlap: %w", err)
	}
	return exists, nil
}

// CreateBooking inserts the booking, links its rooms and flips those rooms to
// Booked in one transaction.
func (r *BookingRepository) CreateBooking(booking *db.Booking, roomIDs []int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO bookings (guest_name, guest_mobile, guest_email, check_in, check_out, adults, children, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING id, created_at`,
		booking.GuestName, booking.GuestMobile, booking.GuestEmail,
		booking.CheckIn, booking.CheckOut, booking.Adults, booking.Children,
		booking.Status, booking.TotalAmount,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}

	for _, roomID := range roomIDs {
		if _, err := tx.Exec(
			`INSERT INTO booking_rooms (booking_id, room_id) VALUES ($1, $2)`,
			booking.ID, roomID,
		); err != nil {
			return fmt.Errorf("error linking booking room: %w", err)
		}
	}

	if _, err := tx.Exec(
		`UPDATE rooms SET status = 'Booked' WHERE id = ANY($1)`, pq.Array(roomIDs),
	); err != nil {
		return fmt.Errorf("error updating room status: %w", err)
	}

	return tx.Commit()
}

func (r *BookingRepository) GetBookingByID(id int) (*db.Booking, error) {
	var booking db.Booking
	err := r.DB.QueryRow(`
		SELECT id, guest_name, guest_mobile, guest_email, check_in, check_out, adults, children, status, total_amount, created_at
		FROM bookings WHERE id = $1`, id,
	).Scan(&booking.ID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
		&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
		&booking.Status, &booking.TotalAmount, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) GetBookingRooms(bookingID int) ([]db.Room, error) {
	rows, err := r.DB.Query(`
		SELECT r.id, r.number, r.type, r.price, r.status, r.adults, r.children
		FROM rooms r
		JOIN booking_rooms br ON br.room_id = r.id
		WHERE br.booking_id = $1
		ORDER BY r.number`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying booking rooms: %w", err)
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Type, &room.Price, &room.Status, &room.Adults, &room.Children); err != nil {
			return nil, fmt.Errorf("error scanning booking room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *BookingRepository) ListBookings(skip, limit int) ([]db.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT id, guest_name, guest_mobile, guest_email, check_in, check_out, adults, children, status, total_amount, created_at
		FROM bookings
		ORDER BY id DESC
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var booking db.Booking
		if err := rows.Scan(&booking.ID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
			&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
			&booking.Status, &booking.TotalAmount, &booking.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) CountBookings() (int, error) {
	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return total, nil
}

func (r *BookingRepository) UpdateBookingStatus(id int, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r *BookingRepository) UpdateBookingStay(id int, checkIn, checkOut time.Time) error {
	result, err := r.DB.Exec(
		`UPDATE bookings SET check_in = $1, check_out = $2 WHERE id = $3`,
		checkIn, checkOut, id,
	)
	if err != nil {
		return fmt.Errorf("error updating booking stay: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return err
}

// GetActiveBookingForRoom returns the newest booked or checked-in booking
// holding the given room, or sql.ErrNoRows.
func (r *BookingRepository) GetActiveBookingForRoom(roomID int) (*db.Booking, error) {
	var booking db.Booking
	err := r.DB.QueryRow(`
		SELECT b.id, b.guest_name, b.guest_mobile, b.guest_email, b.check_in, b.check_out, b.adults, b.children, b.status, b.total_amount, b.created_at
		FROM bookings b
		JOIN booking_rooms br ON br.booking_id = b.id
		WHERE br.room_id = $1 AND b.status IN ('booked', 'checked-in')
		ORDER BY b.id DESC
		LIMIT 1`, roomID,
	).Scan(&booking.ID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
		&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
		&booking.Status, &booking.TotalAmount, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying active booking: %w", err)
	}
	return &booking, nil
}

// GetLatestBookingForRoom returns the newest booking holding the given room
// regardless of status, or sql.ErrNoRows. Used to tell an already finished
// stay apart from a room that never had one.
func (r *BookingRepository) GetLatestBookingForRoom(roomID int) (*db.Booking, error) {
	var booking db.Booking
	err := r.DB.QueryRow(`
		SELECT b.id, b.guest_name, b.guest_mobile, b.guest_email, b.check_in, b.check_out, b.adults, b.children, b.status, b.total_amount, b.created_at
		FROM bookings b
		JOIN booking_rooms br ON br.booking_id = b.id
		WHERE br.room_id = $1
		ORDER BY b.id DESC
		LIMIT 1`, roomID,
	).Scan(&booking.ID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
		&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
		&booking.Status, &booking.TotalAmount, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying latest booking: %w", err)
	}
	return &booking, nil
}

// ListSnapshots loads every booking and package booking with its rooms in the
// shape the availability resolver consumes.
func (r *BookingRepository) ListSnapshots() ([]availability.BookingSnapshot, error) {
	rows, err := r.DB.Query(`
		SELECT b.id, b.status, b.check_in, b.check_out, br.room_id
		FROM bookings b
		JOIN booking_rooms br ON br.booking_id = b.id
		UNION ALL
		SELECT pb.id + 1000000, pb.status, pb.check_in, pb.check_out, pbr.room_id
		FROM package_bookings pb
		JOIN package_booking_rooms pbr ON pbr.package_booking_id = pb.id`)
	if err != nil {
		return nil, fmt.Errorf("error querying booking snapshots: %w", err)
	}
	defer rows.Close()

	byID := make(map[int]*availability.BookingSnapshot)
	var order []int
	for rows.Next() {
		var (
			id, roomID        int
			status            string
			checkIn, checkOut time.Time
		)
		if err := rows.Scan(&id, &status, &checkIn, &checkOut, &roomID); err != nil {
			return nil, fmt.Errorf("error scanning booking snapshot: %w", err)
		}
		snap, ok := byID[id]
		if !ok {
			snap = &availability.BookingSnapshot{ID: id, Status: status, CheckIn: checkIn, CheckOut: checkOut}
			byID[id] = snap
			order = append(order, id)
		}
		snap.Rooms = append(snap.Rooms, availability.RoomRef{ID: roomID})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	snapshots := make([]availability.BookingSnapshot, 0, len(order))
	for _, id := range order {
		snapshots = append(snapshots, *byID[id])
	}
	return snapshots, nil
}
