package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"elysian/internal/db"
)

type CheckoutRepository struct {
	DB *sql.DB
}

func NewCheckoutRepository(database *sql.DB) *CheckoutRepository {
	return &CheckoutRepository{DB: database}
}

// ListUnbilledFoodItems returns the food order lines for the rooms that have
// not yet been folded into a checkout.
func (r *CheckoutRepository) ListUnbilledFoodItems(roomIDs []int) ([]db.FoodOrderItem, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(`
		SELECT fo.id, fo.order_id, fo.room_id, fo.item_name, fo.quantity, fo.price
		FROM food_order_items fo
		WHERE fo.room_id = ANY($1) AND fo.billed = false
		ORDER BY fo.id`, pq.Array(roomIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying food order items: %w", err)
	}
	defer rows.Close()

	var items []db.FoodOrderItem
	for rows.Next() {
		var item db.FoodOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.RoomID, &item.ItemName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("error scanning food order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CheckoutRepository) ListUnbilledServices(roomIDs []int) ([]db.AssignedService, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(`
		SELECT s.id, s.room_id, s.service_name, s.charges
		FROM assigned_services s
		WHERE s.room_id = ANY($1) AND s.billed = false
		ORDER BY s.id`, pq.Array(roomIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying assigned services: %w", err)
	}
	defer rows.Close()

	var services []db.AssignedService
	for rows.Next() {
		var svc db.AssignedService
		if err := rows.Scan(&svc.ID, &svc.RoomID, &svc.ServiceName, &svc.Charges); err != nil {
			return nil, fmt.Errorf("error scanning assigned service: %w", err)
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

// ListBilledRoomNumbers returns the room_number values of every checkout
// already recorded against a stay. Multi-room checkouts store a comma joined
// list, so callers split before counting.
func (r *CheckoutRepository) ListBilledRoomNumbers(stayID int, isPackage bool) ([]string, error) {
	column := "booking_id"
	if isPackage {
		column = "package_booking_id"
	}
	rows, err := r.DB.Query(
		`SELECT room_number FROM checkouts WHERE `+column+` = $1`, stayID)
	if err != nil {
		return nil, fmt.Errorf("error querying billed rooms: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var joined string
		if err := rows.Scan(&joined); err != nil {
			return nil, fmt.Errorf("error scanning billed rooms: %w", err)
		}
		numbers = append(numbers, joined)
	}
	return numbers, rows.Err()
}

// CreateCheckout persists the checkout and, in the same transaction, marks the
// covered food orders and services as billed and frees the rooms. The stay is
// flipped to checked-out only when closeStay is set, so a single-room checkout
// of a multi-room booking leaves the booking live for the remaining rooms.
func (r *CheckoutRepository) CreateCheckout(checkout *db.Checkout, roomIDs []int, closeStay bool) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO checkouts (receipt_number, booking_id, package_booking_id, room_total, food_total, service_total, package_total,
			tax_amount, discount_amount, grand_total, payment_method, payment_status, stripe_session_id, guest_name, room_number, checkout_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())
		RETURNING id, created_at`,
		checkout.ReceiptNumber, checkout.BookingID, checkout.PackageBookingID,
		checkout.RoomTotal, checkout.FoodTotal, checkout.ServiceTotal, checkout.PackageTotal,
		checkout.TaxAmount, checkout.DiscountAmount, checkout.GrandTotal,
		checkout.PaymentMethod, checkout.PaymentStatus, checkout.StripeSessionID,
		checkout.GuestName, checkout.RoomNumber, checkout.CheckoutDate,
	).Scan(&checkout.ID, &checkout.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting checkout: %w", err)
	}

	if len(roomIDs) > 0 {
		if _, err := tx.Exec(
			`UPDATE food_order_items SET billed = true WHERE room_id = ANY($1) AND billed = false`,
			pq.Array(roomIDs),
		); err != nil {
			return fmt.Errorf("error marking food items billed: %w", err)
		}
		if _, err := tx.Exec(
			`UPDATE assigned_services SET billed = true WHERE room_id = ANY($1) AND billed = false`,
			pq.Array(roomIDs),
		); err != nil {
			return fmt.Errorf("error marking services billed: %w", err)
		}
		if _, err := tx.Exec(
			`UPDATE rooms SET status = 'Available' WHERE id = ANY($1)`, pq.Array(roomIDs),
		); err != nil {
			return fmt.Errorf("error freeing rooms: %w", err)
		}
	}

	if closeStay {
		if checkout.BookingID.Valid {
			if _, err := tx.Exec(
				`UPDATE bookings SET status = 'checked-out' WHERE id = $1`, checkout.BookingID.Int64,
			); err != nil {
				return fmt.Errorf("error closing booking: %w", err)
			}
		}
		if checkout.PackageBookingID.Valid {
			if _, err := tx.Exec(
				`UPDATE package_bookings SET status = 'checked-out' WHERE id = $1`, checkout.PackageBookingID.Int64,
			); err != nil {
				return fmt.Errorf("error closing package booking: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (r *CheckoutRepository) GetCheckoutByID(id int) (*db.Checkout, error) {
	var checkout db.Checkout
	err := r.DB.QueryRow(`
		SELECT id, receipt_number, booking_id, package_booking_id, room_total, food_total, service_total, package_total,
			tax_amount, discount_amount, grand_total, payment_method, payment_status, stripe_session_id, guest_name, room_number, checkout_date, created_at
		FROM checkouts WHERE id = $1`, id,
	).Scan(&checkout.ID, &checkout.ReceiptNumber, &checkout.BookingID, &checkout.PackageBookingID,
		&checkout.RoomTotal, &checkout.FoodTotal, &checkout.ServiceTotal, &checkout.PackageTotal,
		&checkout.TaxAmount, &checkout.DiscountAmount, &checkout.GrandTotal,
		&checkout.PaymentMethod, &checkout.PaymentStatus, &checkout.StripeSessionID,
		&checkout.GuestName, &checkout.RoomNumber, &checkout.CheckoutDate, &checkout.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying checkout: %w", err)
	}
	return &checkout, nil
}

func (r *CheckoutRepository) ListCheckouts(skip, limit int) ([]db.Checkout, error) {
	rows, err := r.DB.Query(`
		SELECT id, receipt_number, booking_id, package_booking_id, room_total, food_total, service_total, package_total,
			tax_amount, discount_amount, grand_total, payment_method, payment_status, stripe_session_id, guest_name, room_number, checkout_date, created_at
		FROM checkouts
		ORDER BY id DESC
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying checkouts: %w", err)
	}
	defer rows.Close()

	var checkouts []db.Checkout
	for rows.Next() {
		var checkout db.Checkout
		if err := rows.Scan(&checkout.ID, &checkout.ReceiptNumber, &checkout.BookingID, &checkout.PackageBookingID,
			&checkout.RoomTotal, &checkout.FoodTotal, &checkout.ServiceTotal, &checkout.PackageTotal,
			&checkout.TaxAmount, &checkout.DiscountAmount, &checkout.GrandTotal,
			&checkout.PaymentMethod, &checkout.PaymentStatus, &checkout.StripeSessionID,
			&checkout.GuestName, &checkout.RoomNumber, &checkout.CheckoutDate, &checkout.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning checkout: %w", err)
		}
		checkouts = append(checkouts, checkout)
	}
	return checkouts, rows.Err()
}

// NextReceiptNumber allocates a receipt number from a dedicated sequence.
func (r *CheckoutRepository) NextReceiptNumber() (string, error) {
	var seq int64
	if err := r.DB.QueryRow(`SELECT nextval('receipt_number_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("error allocating receipt number: %w", err)
	}
	return fmt.Sprintf("RCP-%06d", seq), nil
}

func (r *CheckoutRepository) UpdatePaymentStatusBySession(sessionID, status string) error {
	result, err := r.DB.Exec(
		`UPDATE checkouts SET payment_status = $1 WHERE stripe_session_id = $2`, status, sessionID,
	)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return err
}

// ListActiveRooms returns the rooms currently held by a booked or checked-in
// stay, with the guest holding them.
func (r *CheckoutRepository) ListActiveRooms() ([]db.ActiveRoom, error) {
	rows, err := r.DB.Query(`
		SELECT r.id, r.number, b.guest_name, b.check_in, b.check_out, false
		FROM rooms r
		JOIN booking_rooms br ON br.room_id = r.id
		JOIN bookings b ON b.id = br.booking_id
		WHERE b.status IN ('booked', 'checked-in')
		UNION ALL
		SELECT r.id, r.number, pb.guest_name, pb.check_in, pb.check_out, true
		FROM rooms r
		JOIN package_booking_rooms pbr ON pbr.room_id = r.id
		JOIN package_bookings pb ON pb.id = pbr.package_booking_id
		WHERE pb.status IN ('booked', 'checked-in')
		ORDER BY 2`)
	if err != nil {
		return nil, fmt.Errorf("error querying active rooms: %w", err)
	}
	defer rows.Close()

	var active []db.ActiveRoom
	for rows.Next() {
		var room db.ActiveRoom
		if err := rows.Scan(&room.RoomID, &room.RoomNumber, &room.GuestName, &room.CheckIn, &room.CheckOut, &room.IsPackage); err != nil {
			return nil, fmt.Errorf("error scanning active room: %w", err)
		}
		active = append(active, room)
	}
	return active, rows.Err()
}
