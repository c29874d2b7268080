package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"elysian/internal/availability"
	"elysian/internal/billing"
	"elysian/internal/db"
	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/repository"
)

type BookingService struct {
	BookingRepo *repository.BookingRepository
	RoomRepo    *repository.RoomRepository
	Sender      *SenderService
	Jobs        *JobService
}

func NewBookingService(bookingRepo *repository.BookingRepository, roomRepo *repository.RoomRepository, sender *SenderService, jobs *JobService) *BookingService {
	return &BookingService{BookingRepo: bookingRepo, RoomRepo: roomRepo, Sender: sender, Jobs: jobs}
}

func (s *BookingService) scheduleRefresh() {
	if s.Jobs != nil {
		s.Jobs.ScheduleRefresh()
	}
}

// CreateBooking validates the stay window, capacity and room availability,
// persists the booking and fires the confirmation email and SMS. The
// conflict check runs against the live tables, so a client-side availability
// result that went stale is rejected here.
func (s *BookingService) CreateBooking(req entities.BookingCreate) (*entities.BookingOut, error) {
	if err := availability.ValidateStay(req.CheckIn.Time, req.CheckOut.Time); err != nil {
		return nil, err
	}
	if req.GuestName == "" {
		return nil, apperrors.ErrValidation("guest name is required")
	}
	if len(req.RoomIDs) == 0 {
		return nil, apperrors.ErrValidation("at least one room must be selected")
	}

	rooms, err := s.RoomRepo.GetRoomsByIDs(req.RoomIDs)
	if err != nil {
		return nil, err
	}
	if len(rooms) != len(req.RoomIDs) {
		return nil, apperrors.ErrNotFound("one or more selected rooms do not exist")
	}

	if err := availability.CheckCapacity(rooms, req.Adults, req.Children); err != nil {
		return nil, err
	}

	overlap, err := s.BookingRepo.HasGuestOverlap(req.GuestMobile, req.CheckIn.Time, req.CheckOut.Time)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperrors.ErrConflict("guest already has an active booking overlapping these dates")
	}

	conflict, err := s.BookingRepo.HasConflict(req.RoomIDs, req.CheckIn.Time, req.CheckOut.Time, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.ErrConflict("one or more rooms are no longer available for the selected dates")
	}

	nights := billing.StayNights(req.CheckIn.Time, req.CheckOut.Time)
	prices := make([]float64, 0, len(rooms))
	for _, room := range rooms {
		prices = append(prices, room.Price)
	}

	booking := &db.Booking{
		GuestName:   req.GuestName,
		GuestMobile: nullString(req.GuestMobile),
		GuestEmail:  nullString(req.GuestEmail),
		CheckIn:     req.CheckIn.Time,
		CheckOut:    req.CheckOut.Time,
		Adults:      req.Adults,
		Children:    req.Children,
		Status:      availability.StatusBooked,
		TotalAmount: billing.RoomCharges(prices, nights),
	}
	if err := s.BookingRepo.CreateBooking(booking, req.RoomIDs); err != nil {
		return nil, err
	}

	out := s.toBookingOut(*booking, rooms)
	s.notifyBookingCreated(out, rooms, nights)
	s.scheduleRefresh()
	return &out, nil
}

func (s *BookingService) notifyBookingCreated(booking entities.BookingOut, rooms []db.Room, nights int) {
	if s.Sender == nil {
		return
	}
	emailRooms := make([]entities.BookingEmailRoom, 0, len(rooms))
	for _, room := range rooms {
		emailRooms = append(emailRooms, entities.BookingEmailRoom{Number: room.Number, Type: room.Type, Price: room.Price})
	}
	data := entities.BookingEmailData{
		GuestName:         booking.GuestName,
		BookingID:         booking.DisplayID,
		BookingType:       "room",
		CheckInFormatted:  FormatStayDate(booking.CheckIn.Time),
		CheckOutFormatted: FormatStayDate(booking.CheckOut.Time),
		StayNights:        nights,
		Adults:            booking.Adults,
		Children:          booking.Children,
		Rooms:             emailRooms,
		TotalAmount:       booking.TotalAmount,
		CurrentYear:       time.Now().Year(),
	}
	s.Sender.SendBookingEmail(data, booking.GuestEmail)
	s.Sender.SendBookingSMS(data, booking.GuestMobile)
}

func (s *BookingService) GetBooking(id int) (*entities.BookingOut, error) {
	booking, err := s.BookingRepo.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("booking not found")
		}
		return nil, err
	}
	rooms, err := s.BookingRepo.GetBookingRooms(id)
	if err != nil {
		return nil, err
	}
	out := s.toBookingOut(*booking, rooms)
	return &out, nil
}

func (s *BookingService) ListBookings(skip, limit int) (*entities.BookingList, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	bookings, err := s.BookingRepo.ListBookings(skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.BookingRepo.CountBookings()
	if err != nil {
		return nil, err
	}

	list := &entities.BookingList{Total: total, Bookings: make([]entities.BookingOut, 0, len(bookings))}
	for _, booking := range bookings {
		rooms, err := s.BookingRepo.GetBookingRooms(booking.ID)
		if err != nil {
			return nil, err
		}
		list.Bookings = append(list.Bookings, s.toBookingOut(booking, rooms))
	}
	return list, nil
}

// CheckIn moves a booked stay to checked-in and marks its rooms accordingly.
func (s *BookingService) CheckIn(id int) (*entities.BookingOut, error) {
	booking, err := s.BookingRepo.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("booking not found")
		}
		return nil, err
	}
	switch availability.NormalizeStatus(booking.Status) {
	case availability.StatusBooked:
	case availability.StatusCheckedIn:
		return nil, apperrors.ErrConflict("booking is already checked in")
	default:
		return nil, apperrors.ErrConflict(fmt.Sprintf("cannot check in a %s booking", booking.Status))
	}

	if err := s.BookingRepo.UpdateBookingStatus(id, availability.StatusCheckedIn); err != nil {
		return nil, err
	}
	rooms, err := s.BookingRepo.GetBookingRooms(id)
	if err != nil {
		return nil, err
	}
	roomIDs := make([]int, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}
	if err := s.RoomRepo.SetRoomStatuses(roomIDs, "Checked-in"); err != nil {
		return nil, err
	}

	booking.Status = availability.StatusCheckedIn
	out := s.toBookingOut(*booking, rooms)
	s.scheduleRefresh()
	return &out, nil
}

// Cancel releases a booking's rooms. Checked-out and already cancelled
// bookings cannot be cancelled again.
func (s *BookingService) Cancel(id int) error {
	booking, err := s.BookingRepo.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound("booking not found")
		}
		return err
	}
	switch availability.NormalizeStatus(booking.Status) {
	case availability.StatusBooked, availability.StatusCheckedIn:
	default:
		return apperrors.ErrConflict(fmt.Sprintf("cannot cancel a %s booking", booking.Status))
	}

	if err := s.BookingRepo.UpdateBookingStatus(id, availability.StatusCancelled); err != nil {
		return err
	}
	rooms, err := s.BookingRepo.GetBookingRooms(id)
	if err != nil {
		return err
	}
	roomIDs := make([]int, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}
	if err := s.RoomRepo.SetRoomStatuses(roomIDs, "Available"); err != nil {
		return err
	}
	s.scheduleRefresh()
	return nil
}

// ExtendStay moves a live booking's checkout date, re-running the conflict
// check against every other stay on the same rooms.
func (s *BookingService) ExtendStay(id int, newCheckOut time.Time) (*entities.BookingOut, error) {
	booking, err := s.BookingRepo.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("booking not found")
		}
		return nil, err
	}
	switch availability.NormalizeStatus(booking.Status) {
	case availability.StatusBooked, availability.StatusCheckedIn:
	default:
		return nil, apperrors.ErrConflict(fmt.Sprintf("cannot extend a %s booking", booking.Status))
	}
	if err := availability.ValidateStay(booking.CheckIn, newCheckOut); err != nil {
		return nil, err
	}

	rooms, err := s.BookingRepo.GetBookingRooms(id)
	if err != nil {
		return nil, err
	}
	roomIDs := make([]int, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	conflict, err := s.BookingRepo.HasConflict(roomIDs, booking.CheckIn, newCheckOut, id)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.ErrConflict("rooms are already booked beyond the current checkout date")
	}

	if err := s.BookingRepo.UpdateBookingStay(id, booking.CheckIn, newCheckOut); err != nil {
		return nil, err
	}
	booking.CheckOut = newCheckOut
	out := s.toBookingOut(*booking, rooms)
	return &out, nil
}

func (s *BookingService) toBookingOut(booking db.Booking, rooms []db.Room) entities.BookingOut {
	out := entities.BookingOut{
		ID:          booking.ID,
		DisplayID:   FormatBookingID(booking.ID),
		GuestName:   booking.GuestName,
		GuestMobile: booking.GuestMobile.String,
		GuestEmail:  booking.GuestEmail.String,
		Status:      availability.NormalizeStatus(booking.Status),
		CheckIn:     entities.NewDate(booking.CheckIn),
		CheckOut:    entities.NewDate(booking.CheckOut),
		Adults:      booking.Adults,
		Children:    booking.Children,
		IsPackage:   false,
		TotalAmount: booking.TotalAmount,
		Rooms:       make([]entities.RoomOut, 0, len(rooms)),
	}
	for _, room := range rooms {
		out.Rooms = append(out.Rooms, toRoomOut(room))
	}
	return out
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
