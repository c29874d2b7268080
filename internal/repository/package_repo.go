package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"elysian/internal/db"
)

type PackageRepository struct {
	DB *sql.DB
}

func NewPackageRepository(database *sql.DB) *PackageRepository {
	return &PackageRepository{DB: database}
}

func (r *PackageRepository) ListPackages() ([]db.Package, error) {
	rows, err := r.DB.Query(`
		SELECT id, title, description, price, booking_type, room_types, status, created_at
		FROM packages
		WHERE status = 'active'
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying packages: %w", err)
	}
	defer rows.Close()

	var packages []db.Package
	for rows.Next() {
		var pkg db.Package
		if err := rows.Scan(&pkg.ID, &pkg.Title, &pkg.Description, &pkg.Price,
			&pkg.BookingType, &pkg.RoomTypes, &pkg.Status, &pkg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning package: %w", err)
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

func (r *PackageRepository) GetPackageByID(id int) (*db.Package, error) {
	var pkg db.Package
	err := r.DB.QueryRow(`
		SELECT id, title, description, price, booking_type, room_types, status, created_at
		FROM packages WHERE id = $1`, id,
	).Scan(&pkg.ID, &pkg.Title, &pkg.Description, &pkg.Price,
		&pkg.BookingType, &pkg.RoomTypes, &pkg.Status, &pkg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying package: %w", err)
	}
	return &pkg, nil
}

func (r *PackageRepository) CreatePackage(pkg *db.Package) error {
	query := `
		INSERT INTO packages (title, description, price, booking_type, room_types, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, created_at`
	return r.DB.QueryRow(query, pkg.Title, pkg.Description, pkg.Price,
		pkg.BookingType, pkg.RoomTypes, pkg.Status).Scan(&pkg.ID, &pkg.CreatedAt)
}

func (r *PackageRepository) DeletePackage(id int) error {
	result, err := r.DB.Exec(`UPDATE packages SET status = 'inactive' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting package: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return err
}

// CreatePackageBooking inserts the package booking, links its rooms and flips
// those rooms to Booked in one transaction.
func (r *PackageRepository) CreatePackageBooking(booking *db.PackageBooking, roomIDs []int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO package_bookings (package_id, guest_name, guest_mobile, guest_email, check_in, check_out, adults, children, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		RETURNING id, created_at`,
		booking.PackageID, booking.GuestName, booking.GuestMobile, booking.GuestEmail,
		booking.CheckIn, booking.CheckOut, booking.Adults, booking.Children,
		booking.Status, booking.TotalAmount,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting package booking: %w", err)
	}

	for _, roomID := range roomIDs {
		if _, err := tx.Exec(
			`INSERT INTO package_booking_rooms (package_booking_id, room_id) VALUES ($1, $2)`,
			booking.ID, roomID,
		); err != nil {
			return fmt.Errorf("error linking package booking room: %w", err)
		}
	}

	if _, err := tx.Exec(
		`UPDATE rooms SET status = 'Booked' WHERE id = ANY($1)`, pq.Array(roomIDs),
	); err != nil {
		return fmt.Errorf("error updating room status: %w", err)
	}

	return tx.Commit()
}

func (r *PackageRepository) GetPackageBookingByID(id int) (*db.PackageBooking, error) {
	var booking db.PackageBooking
	err := r.DB.QueryRow(`
		SELECT id, package_id, guest_name, guest_mobile, guest_email, check_in, check_out, adults, children, status, total_amount, created_at
		FROM package_bookings WHERE id = $1`, id,
	).Scan(&booking.ID, &booking.PackageID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
		&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
		&booking.Status, &booking.TotalAmount, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying package booking: %w", err)
	}
	return &booking, nil
}

func (r *PackageRepository) ListPackageBookings(skip, limit int) ([]db.PackageBooking, error) {
	rows, err := r.DB.Query(`
		SELECT id, package_id, guest_name, guest_mobile, guest_email, check_in, check_out, adults, children, status, total_amount, created_at
		FROM package_bookings
		ORDER BY id DESC
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying package bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.PackageBooking
	for rows.Next() {
		var booking db.PackageBooking
		if err := rows.Scan(&booking.ID, &booking.PackageID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
			&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
			&booking.Status, &booking.TotalAmount, &booking.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning package booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *PackageRepository) GetPackageBookingRooms(packageBookingID int) ([]db.Room, error) {
	rows, err := r.DB.Query(`
		SELECT r.id, r.number, r.type, r.price, r.status, r.adults, r.children
		FROM rooms r
		JOIN package_booking_rooms pbr ON pbr.room_id = r.id
		WHERE pbr.package_booking_id = $1
		ORDER BY r.number`, packageBookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying package booking rooms: %w", err)
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Type, &room.Price, &room.Status, &room.Adults, &room.Children); err != nil {
			return nil, fmt.Errorf("error scanning package booking room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *PackageRepository) UpdatePackageBookingStatus(id int, status string) error {
	result, err := r.DB.Exec(`UPDATE package_bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating package booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return err
}

// GetLatestPackageBookingForRoom returns the newest package booking holding
// the given room regardless of status, or sql.ErrNoRows.
func (r *PackageRepository) GetLatestPackageBookingForRoom(roomID int) (*db.PackageBooking, error) {
	var booking db.PackageBooking
	err := r.DB.QueryRow(`
		SELECT pb.id, pb.package_id, pb.guest_name, pb.guest_mobile, pb.guest_email, pb.check_in, pb.check_out, pb.adults, pb.children, pb.status, pb.total_amount, pb.created_at
		FROM package_bookings pb
		JOIN package_booking_rooms pbr ON pbr.package_booking_id = pb.id
		WHERE pbr.room_id = $1
		ORDER BY pb.id DESC
		LIMIT 1`, roomID,
	).Scan(&booking.ID, &booking.PackageID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
		&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
		&booking.Status, &booking.TotalAmount, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying latest package booking: %w", err)
	}
	return &booking, nil
}

// GetActivePackageBookingForRoom returns the newest booked or checked-in
// package booking holding the given room, or sql.ErrNoRows.
func (r *PackageRepository) GetActivePackageBookingForRoom(roomID int) (*db.PackageBooking, error) {
	var booking db.PackageBooking
	err := r.DB.QueryRow(`
		SELECT pb.id, pb.package_id, pb.guest_name, pb.guest_mobile, pb.guest_email, pb.check_in, pb.check_out, pb.adults, pb.children, pb.status, pb.total_amount, pb.created_at
		FROM package_bookings pb
		JOIN package_booking_rooms pbr ON pbr.package_booking_id = pb.id
		WHERE pbr.room_id = $1 AND pb.status IN ('booked', 'checked-in')
		ORDER BY pb.id DESC
		LIMIT 1`, roomID,
	).Scan(&booking.ID, &booking.PackageID, &booking.GuestName, &booking.GuestMobile, &booking.GuestEmail,
		&booking.CheckIn, &booking.CheckOut, &booking.Adults, &booking.Children,
		&booking.Status, &booking.TotalAmount, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying active package booking: %w", err)
	}
	return &booking, nil
}
