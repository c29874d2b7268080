package service

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"elysian/internal/availability"
	"elysian/internal/billing"
	"elysian/internal/db"
	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/repository"
)

const (
	BookingTypeWholeProperty = "whole_property"
	BookingTypeRoomType      = "room_type"
)

type PackageService struct {
	PackageRepo *repository.PackageRepository
	RoomRepo    *repository.RoomRepository
	BookingRepo *repository.BookingRepository
	Sender      *SenderService
	Jobs        *JobService
}

func NewPackageService(packageRepo *repository.PackageRepository, roomRepo *repository.RoomRepository, bookingRepo *repository.BookingRepository, sender *SenderService, jobs *JobService) *PackageService {
	return &PackageService{PackageRepo: packageRepo, RoomRepo: roomRepo, BookingRepo: bookingRepo, Sender: sender, Jobs: jobs}
}

func (s *PackageService) scheduleRefresh() {
	if s.Jobs != nil {
		s.Jobs.ScheduleRefresh()
	}
}

func (s *PackageService) ListPackages() ([]entities.PackageOut, error) {
	packages, err := s.PackageRepo.ListPackages()
	if err != nil {
		return nil, err
	}
	out := make([]entities.PackageOut, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, toPackageOut(pkg))
	}
	return out, nil
}

func (s *PackageService) GetPackage(id int) (*entities.PackageOut, error) {
	pkg, err := s.PackageRepo.GetPackageByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("package not found")
		}
		return nil, err
	}
	out := toPackageOut(*pkg)
	return &out, nil
}

func (s *PackageService) CreatePackage(req entities.PackageCreate) (*entities.PackageOut, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.ErrValidation("package title is required")
	}
	if req.Price <= 0 {
		return nil, apperrors.ErrValidation("package price must be positive")
	}
	switch req.BookingType {
	case BookingTypeWholeProperty:
		// Whole-property packages ignore any room type list.
		req.RoomTypes = ""
	case BookingTypeRoomType:
		if strings.TrimSpace(req.RoomTypes) == "" {
			return nil, apperrors.ErrValidation("room_type packages must name at least one room type")
		}
	default:
		return nil, apperrors.ErrValidation("booking_type must be whole_property or room_type")
	}

	pkg := &db.Package{
		Title:       req.Title,
		Description: nullString(req.Description),
		Price:       req.Price,
		BookingType: req.BookingType,
		RoomTypes:   nullString(req.RoomTypes),
		Status:      "active",
	}
	if err := s.PackageRepo.CreatePackage(pkg); err != nil {
		return nil, err
	}
	out := toPackageOut(*pkg)
	return &out, nil
}

func (s *PackageService) DeletePackage(id int) error {
	if err := s.PackageRepo.DeletePackage(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound("package not found")
		}
		return err
	}
	return nil
}

// CreatePackageBooking books a package stay. Whole-property packages take
// every room in the house and skip the per-room capacity check; room-type
// packages take the operator's room selection, which must fall inside the
// package's room types.
func (s *PackageService) CreatePackageBooking(req entities.PackageBookingCreate) (*entities.PackageBookingOut, error) {
	pkg, err := s.PackageRepo.GetPackageByID(req.PackageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("package not found")
		}
		return nil, err
	}
	if pkg.Status != "active" {
		return nil, apperrors.ErrConflict("package is no longer available")
	}
	if err := availability.ValidateStay(req.CheckIn.Time, req.CheckOut.Time); err != nil {
		return nil, err
	}
	if req.GuestName == "" {
		return nil, apperrors.ErrValidation("guest name is required")
	}

	scope := availability.ScopeFor(*pkg)

	var selected []db.Room
	if scope.WholeProperty {
		allRooms, err := s.RoomRepo.ListAllRooms()
		if err != nil {
			return nil, err
		}
		snapshots, err := s.BookingRepo.ListSnapshots()
		if err != nil {
			return nil, err
		}
		avail := availability.Compute(allRooms, snapshots, req.CheckIn.Time, req.CheckOut.Time)
		freeIDs := availability.SelectWholeProperty(allRooms, avail)
		if len(freeIDs) != len(allRooms) {
			return nil, apperrors.ErrConflict("the property is not fully available for the selected dates")
		}
		selected = allRooms
	} else {
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
		inScope := availability.FilterRooms(rooms, scope)
		if len(inScope) != len(rooms) {
			return nil, apperrors.ErrValidation("one or more selected rooms are not covered by this package")
		}
		if err := availability.CheckCapacity(rooms, req.Adults, req.Children); err != nil {
			return nil, err
		}
		selected = rooms
	}

	roomIDs := make([]int, 0, len(selected))
	for _, room := range selected {
		roomIDs = append(roomIDs, room.ID)
	}

	conflict, err := s.BookingRepo.HasConflict(roomIDs, req.CheckIn.Time, req.CheckOut.Time, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.ErrConflict("one or more rooms are no longer available for the selected dates")
	}

	nights := billing.StayNights(req.CheckIn.Time, req.CheckOut.Time)
	booking := &db.PackageBooking{
		PackageID:   pkg.ID,
		GuestName:   req.GuestName,
		GuestMobile: nullString(req.GuestMobile),
		GuestEmail:  nullString(req.GuestEmail),
		CheckIn:     req.CheckIn.Time,
		CheckOut:    req.CheckOut.Time,
		Adults:      req.Adults,
		Children:    req.Children,
		Status:      availability.StatusBooked,
		TotalAmount: billing.PackageCharges(pkg.Price, scope.WholeProperty, len(selected), nights),
	}
	if err := s.PackageRepo.CreatePackageBooking(booking, roomIDs); err != nil {
		return nil, err
	}

	out := s.toPackageBookingOut(*booking, selected, pkg)
	s.notifyPackageBooked(out, selected, pkg, nights, booking.TotalAmount)
	s.scheduleRefresh()
	return &out, nil
}

func (s *PackageService) notifyPackageBooked(booking entities.PackageBookingOut, rooms []db.Room, pkg *db.Package, nights int, totalAmount float64) {
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
		BookingType:       "package",
		PackageName:       pkg.Title,
		CheckInFormatted:  FormatStayDate(booking.CheckIn.Time),
		CheckOutFormatted: FormatStayDate(booking.CheckOut.Time),
		StayNights:        nights,
		Adults:            booking.Adults,
		Children:          booking.Children,
		Rooms:             emailRooms,
		TotalAmount:       totalAmount,
		CurrentYear:       time.Now().Year(),
	}
	s.Sender.SendBookingEmail(data, booking.GuestEmail)
	s.Sender.SendBookingSMS(data, booking.GuestMobile)
}

// CheckInPackageBooking moves a booked package stay to checked-in and marks
// its rooms accordingly.
func (s *PackageService) CheckInPackageBooking(id int) (*entities.PackageBookingOut, error) {
	booking, err := s.PackageRepo.GetPackageBookingByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("package booking not found")
		}
		return nil, err
	}
	switch availability.NormalizeStatus(booking.Status) {
	case availability.StatusBooked:
	case availability.StatusCheckedIn:
		return nil, apperrors.ErrConflict("booking is already checked in")
	default:
		return nil, apperrors.ErrConflict("cannot check in a " + booking.Status + " booking")
	}

	if err := s.PackageRepo.UpdatePackageBookingStatus(id, availability.StatusCheckedIn); err != nil {
		return nil, err
	}
	rooms, err := s.PackageRepo.GetPackageBookingRooms(id)
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
	out := s.toPackageBookingOut(*booking, rooms, nil)
	s.scheduleRefresh()
	return &out, nil
}

// CancelPackageBooking releases the stay's rooms.
func (s *PackageService) CancelPackageBooking(id int) error {
	booking, err := s.PackageRepo.GetPackageBookingByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound("package booking not found")
		}
		return err
	}
	switch availability.NormalizeStatus(booking.Status) {
	case availability.StatusBooked, availability.StatusCheckedIn:
	default:
		return apperrors.ErrConflict("cannot cancel a " + booking.Status + " booking")
	}

	if err := s.PackageRepo.UpdatePackageBookingStatus(id, availability.StatusCancelled); err != nil {
		return err
	}
	rooms, err := s.PackageRepo.GetPackageBookingRooms(id)
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

func (s *PackageService) GetPackageBooking(id int) (*entities.PackageBookingOut, error) {
	booking, err := s.PackageRepo.GetPackageBookingByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("package booking not found")
		}
		return nil, err
	}
	rooms, err := s.PackageRepo.GetPackageBookingRooms(id)
	if err != nil {
		return nil, err
	}
	pkg, err := s.PackageRepo.GetPackageByID(booking.PackageID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	out := s.toPackageBookingOut(*booking, rooms, pkg)
	return &out, nil
}

func (s *PackageService) ListPackageBookings(skip, limit int) ([]entities.PackageBookingOut, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	bookings, err := s.PackageRepo.ListPackageBookings(skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PackageBookingOut, 0, len(bookings))
	for _, booking := range bookings {
		rooms, err := s.PackageRepo.GetPackageBookingRooms(booking.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, s.toPackageBookingOut(booking, rooms, nil))
	}
	return out, nil
}

func (s *PackageService) toPackageBookingOut(booking db.PackageBooking, rooms []db.Room, pkg *db.Package) entities.PackageBookingOut {
	out := entities.PackageBookingOut{
		ID:          booking.ID,
		DisplayID:   FormatPackageBookingID(booking.ID),
		PackageID:   booking.PackageID,
		GuestName:   booking.GuestName,
		GuestMobile: booking.GuestMobile.String,
		GuestEmail:  booking.GuestEmail.String,
		Status:      availability.NormalizeStatus(booking.Status),
		CheckIn:     entities.NewDate(booking.CheckIn),
		CheckOut:    entities.NewDate(booking.CheckOut),
		Adults:      booking.Adults,
		Children:    booking.Children,
		Rooms:       make([]entities.RoomOut, 0, len(rooms)),
	}
	for _, room := range rooms {
		out.Rooms = append(out.Rooms, toRoomOut(room))
	}
	if pkg != nil {
		pkgOut := toPackageOut(*pkg)
		out.Package = &pkgOut
	}
	return out
}

func toPackageOut(pkg db.Package) entities.PackageOut {
	return entities.PackageOut{
		ID:          pkg.ID,
		Title:       pkg.Title,
		Description: pkg.Description.String,
		Price:       pkg.Price,
		BookingType: pkg.BookingType,
		RoomTypes:   pkg.RoomTypes.String,
		Status:      pkg.Status,
	}
}
