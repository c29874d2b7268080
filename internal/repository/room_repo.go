package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"elysian/internal/db"
)

type RoomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(database *sql.DB) *RoomRepository {
	return &RoomRepository{DB: database}
}

func (r *RoomRepository) ListRooms(skip, limit int) ([]db.Room, error) {
	query := `
		SELECT id, number, type, price, status, adults, children
		FROM rooms
		ORDER BY number
		OFFSET $1 LIMIT $2`
	rows, err := r.DB.Query(query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Type, &room.Price, &room.Status, &room.Adults, &room.Children); err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) ListAllRooms() ([]db.Room, error) {
	return r.ListRooms(0, 1000)
}

func (r *RoomRepository) GetRoomByID(id int) (*db.Room, error) {
	var room db.Room
	err := r.DB.QueryRow(
		`SELECT id, number, type, price, status, adults, children FROM rooms WHERE id = $1`, id,
	).Scan(&room.ID, &room.Number, &room.Type, &room.Price, &room.Status, &room.Adults, &room.Children)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying room: %w", err)
	}
	return &room, nil
}

// GetRoomByNumber looks a room up by its display number, tolerating stray
// whitespace and case differences in either the input or the stored value.
func (r *RoomRepository) GetRoomByNumber(number string) (*db.Room, error) {
	var room db.Room
	err := r.DB.QueryRow(
		`SELECT id, number, type, price, status, adults, children
		 FROM rooms
		 WHERE lower(trim(number)) = lower(trim($1))`, number,
	).Scan(&room.ID, &room.Number, &room.Type, &room.Price, &room.Status, &room.Adults, &room.Children)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room '%s' not found: %w", strings.TrimSpace(number), err)
		}
		return nil, fmt.Errorf("error querying room by number: %w", err)
	}
	return &room, nil
}

func (r *RoomRepository) GetRoomsByIDs(ids []int) ([]db.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(
		`SELECT id, number, type, price, status, adults, children FROM rooms WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms by ids: %w", err)
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Type, &room.Price, &room.Status, &room.Adults, &room.Children); err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) CreateRoom(room *db.Room) error {
	query := `
		INSERT INTO rooms (number, type, price, status, adults, children)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return r.DB.QueryRow(query, room.Number, room.Type, room.Price, room.Status, room.Adults, room.Children).Scan(&room.ID)
}

func (r *RoomRepository) UpdateRoom(room *db.Room) error {
	_, err := r.DB.Exec(
		`UPDATE rooms SET number = $1, type = $2, price = $3, status = $4, adults = $5, children = $6 WHERE id = $7`,
		room.Number, room.Type, room.Price, room.Status, room.Adults, room.Children, room.ID,
	)
	return err
}

func (r *RoomRepository) DeleteRoom(id int) error {
	result, err := r.DB.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r *RoomRepository) SetRoomStatuses(ids []int, status string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(`UPDATE rooms SET status = $1 WHERE id = ANY($2)`, status, pq.Array(ids))
	return err
}
