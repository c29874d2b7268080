package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// JobRepository backs the periodic maintenance jobs that keep room statuses
// aligned with the bookings covering the current day.
type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// MarkCheckedInRooms flips rooms to Checked-in where a checked-in stay covers
// the given day.
func (r *JobRepository) MarkCheckedInRooms(today time.Time) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE rooms SET status = 'Checked-in'
		WHERE status <> 'Checked-in' AND id IN (
			SELECT br.room_id FROM bookings b
			JOIN booking_rooms br ON br.booking_id = b.id
			WHERE b.status = 'checked-in' AND b.check_in <= $1 AND b.check_out > $1
			UNION
			SELECT pbr.room_id FROM package_bookings pb
			JOIN package_booking_rooms pbr ON pbr.package_booking_id = pb.id
			WHERE pb.status = 'checked-in' AND pb.check_in <= $1 AND pb.check_out > $1
		)`, today)
	if err != nil {
		return 0, fmt.Errorf("error marking checked-in rooms: %w", err)
	}
	return result.RowsAffected()
}

// MarkOccupiedRooms flips rooms to Occupied where a booked stay covers the
// given day and no checked-in stay does.
func (r *JobRepository) MarkOccupiedRooms(today time.Time) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE rooms SET status = 'Occupied'
		WHERE status NOT IN ('Occupied', 'Checked-in') AND id IN (
			SELECT br.room_id FROM bookings b
			JOIN booking_rooms br ON br.booking_id = b.id
			WHERE b.status = 'booked' AND b.check_in <= $1 AND b.check_out > $1
			UNION
			SELECT pbr.room_id FROM package_bookings pb
			JOIN package_booking_rooms pbr ON pbr.package_booking_id = pb.id
			WHERE pb.status = 'booked' AND pb.check_in <= $1 AND pb.check_out > $1
		)`, today)
	if err != nil {
		return 0, fmt.Errorf("error marking occupied rooms: %w", err)
	}
	return result.RowsAffected()
}

// ReleaseIdleRooms frees rooms whose booking-driven status no longer has any
// live stay covering the given day. Rooms parked in maintenance states are
// left alone.
func (r *JobRepository) ReleaseIdleRooms(today time.Time) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE rooms SET status = 'Available'
		WHERE status IN ('Booked', 'Occupied', 'Checked-in') AND id NOT IN (
			SELECT br.room_id FROM bookings b
			JOIN booking_rooms br ON br.booking_id = b.id
			WHERE b.status IN ('booked', 'checked-in') AND b.check_in <= $1 AND b.check_out > $1
			UNION
			SELECT pbr.room_id FROM package_bookings pb
			JOIN package_booking_rooms pbr ON pbr.package_booking_id = pb.id
			WHERE pb.status IN ('booked', 'checked-in') AND pb.check_in <= $1 AND pb.check_out > $1
		)`, today)
	if err != nil {
		return 0, fmt.Errorf("error releasing idle rooms: %w", err)
	}
	return result.RowsAffected()
}

// ExpireNoShowBookings cancels bookings that were never checked in and whose
// stay window has fully passed.
func (r *JobRepository) ExpireNoShowBookings(today time.Time) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE bookings SET status = 'cancelled'
		WHERE status = 'booked' AND check_out <= $1`, today)
	if err != nil {
		return 0, fmt.Errorf("error expiring no-show bookings: %w", err)
	}
	return result.RowsAffected()
}
