package service

import (
	"strings"

	"elysian/internal/availability"
	"elysian/internal/db"
	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/repository"
)

type RoomService struct {
	RoomRepo    *repository.RoomRepository
	BookingRepo *repository.BookingRepository
}

func NewRoomService(roomRepo *repository.RoomRepository, bookingRepo *repository.BookingRepository) *RoomService {
	return &RoomService{RoomRepo: roomRepo, BookingRepo: bookingRepo}
}

func (s *RoomService) ListRooms(skip, limit int) ([]entities.RoomOut, error) {
	rooms, err := s.RoomRepo.ListRooms(skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]entities.RoomOut, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomOut(room))
	}
	return out, nil
}

// CheckAvailability computes, for the requested window, the availability of
// every room (optionally narrowed to one room type). Missing dates produce an
// empty result rather than an error.
func (s *RoomService) CheckAvailability(req entities.AvailabilityRequest) (*entities.AvailabilityResponse, error) {
	rooms, err := s.RoomRepo.ListAllRooms()
	if err != nil {
		return nil, err
	}
	if roomType := strings.TrimSpace(req.RoomType); roomType != "" {
		scope := availability.Scope{Types: map[string]bool{strings.ToLower(roomType): true}}
		rooms = availability.FilterRooms(rooms, scope)
	}

	snapshots, err := s.BookingRepo.ListSnapshots()
	if err != nil {
		return nil, err
	}

	avail := availability.Compute(rooms, snapshots, req.CheckIn.Time, req.CheckOut.Time)
	return &entities.AvailabilityResponse{
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Rooms:     avail,
		Available: availability.SelectWholeProperty(rooms, avail),
	}, nil
}

func (s *RoomService) CreateRoom(room *db.Room) (*entities.RoomOut, error) {
	if strings.TrimSpace(room.Number) == "" {
		return nil, apperrors.ErrValidation("room number is required")
	}
	if room.Price < 0 {
		return nil, apperrors.ErrValidation("room price cannot be negative")
	}
	if room.Status == "" {
		room.Status = "Available"
	}
	if err := s.RoomRepo.CreateRoom(room); err != nil {
		return nil, err
	}
	out := toRoomOut(*room)
	return &out, nil
}

func (s *RoomService) UpdateRoom(room *db.Room) error {
	if _, err := s.RoomRepo.GetRoomByID(room.ID); err != nil {
		return apperrors.ErrNotFound("room not found")
	}
	return s.RoomRepo.UpdateRoom(room)
}

func (s *RoomService) DeleteRoom(id int) error {
	if err := s.RoomRepo.DeleteRoom(id); err != nil {
		return apperrors.ErrNotFound("room not found")
	}
	return nil
}

func toRoomOut(room db.Room) entities.RoomOut {
	return entities.RoomOut{
		ID:       room.ID,
		Number:   room.Number,
		Type:     room.Type,
		Price:    room.Price,
		Adults:   room.Adults,
		Children: room.Children,
		Status:   room.Status,
	}
}
