package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
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
	CheckoutModeSingle   = "single"
	CheckoutModeMultiple = "multiple"
)

type CheckoutService struct {
	CheckoutRepo *repository.CheckoutRepository
	BookingRepo  *repository.BookingRepository
	PackageRepo  *repository.PackageRepository
	RoomRepo     *repository.RoomRepository
	Stripe       *StripeService
	Sender       *SenderService
}

func NewCheckoutService(checkoutRepo *repository.CheckoutRepository, bookingRepo *repository.BookingRepository,
	packageRepo *repository.PackageRepository, roomRepo *repository.RoomRepository,
	stripe *StripeService, sender *SenderService) *CheckoutService {
	return &CheckoutService{
		CheckoutRepo: checkoutRepo,
		BookingRepo:  bookingRepo,
		PackageRepo:  packageRepo,
		RoomRepo:     roomRepo,
		Stripe:       stripe,
		Sender:       sender,
	}
}

// billContext carries everything a checkout needs beyond the guest-facing
// summary: the stay being settled and the exact rooms folded into the bill.
type billContext struct {
	booking        *db.Booking
	packageBooking *db.PackageBooking
	pkg            *db.Package
	rooms          []db.Room
	summary        entities.BillSummary
}

func (c *billContext) roomIDs() []int {
	ids := make([]int, 0, len(c.rooms))
	for _, room := range c.rooms {
		ids = append(ids, room.ID)
	}
	return ids
}

// GetBill computes the current bill for the stay holding the given room.
// Mode "single" bills just that room; "multiple" folds in every room of the
// same booking.
func (s *CheckoutService) GetBill(roomNumber, checkoutMode string) (*entities.BillSummary, error) {
	ctx, err := s.buildBill(roomNumber, checkoutMode, time.Now())
	if err != nil {
		return nil, err
	}
	return &ctx.summary, nil
}

func (s *CheckoutService) buildBill(roomNumber, checkoutMode string, now time.Time) (*billContext, error) {
	switch checkoutMode {
	case "", CheckoutModeSingle:
		checkoutMode = CheckoutModeSingle
	case CheckoutModeMultiple:
	default:
		return nil, apperrors.ErrValidation("checkout_mode must be single or multiple")
	}

	room, err := s.RoomRepo.GetRoomByNumber(roomNumber)
	if err != nil {
		return nil, apperrors.ErrNotFound(fmt.Sprintf("room '%s' not found", strings.TrimSpace(roomNumber)))
	}

	ctx := &billContext{}
	booking, err := s.BookingRepo.GetActiveBookingForRoom(room.ID)
	switch {
	case err == nil:
		ctx.booking = booking
	case errors.Is(err, sql.ErrNoRows):
		packageBooking, pkgErr := s.PackageRepo.GetActivePackageBookingForRoom(room.ID)
		switch {
		case pkgErr == nil:
			ctx.packageBooking = packageBooking
		case errors.Is(pkgErr, sql.ErrNoRows):
			return nil, s.noActiveStayError(room.ID)
		default:
			return nil, pkgErr
		}
	default:
		return nil, err
	}

	billed, err := s.billedRoomNumbers(ctx)
	if err != nil {
		return nil, err
	}
	if billed[strings.TrimSpace(room.Number)] {
		return nil, apperrors.ErrConflict("guest has already checked out")
	}

	var (
		guestName          string
		checkIn, bookedOut time.Time
		adults, children   int
	)
	if ctx.booking != nil {
		guestName = ctx.booking.GuestName
		checkIn, bookedOut = ctx.booking.CheckIn, ctx.booking.CheckOut
		adults, children = ctx.booking.Adults, ctx.booking.Children

		if checkoutMode == CheckoutModeMultiple {
			ctx.rooms, err = s.BookingRepo.GetBookingRooms(ctx.booking.ID)
			if err != nil {
				return nil, err
			}
		} else {
			ctx.rooms = []db.Room{*room}
		}
	} else {
		guestName = ctx.packageBooking.GuestName
		checkIn, bookedOut = ctx.packageBooking.CheckIn, ctx.packageBooking.CheckOut
		adults, children = ctx.packageBooking.Adults, ctx.packageBooking.Children

		ctx.pkg, err = s.PackageRepo.GetPackageByID(ctx.packageBooking.PackageID)
		if err != nil {
			return nil, fmt.Errorf("error loading package for booking %d: %w", ctx.packageBooking.ID, err)
		}
		// Whole-property stays always settle as one bill.
		if checkoutMode == CheckoutModeMultiple || availability.ScopeFor(*ctx.pkg).WholeProperty {
			ctx.rooms, err = s.PackageRepo.GetPackageBookingRooms(ctx.packageBooking.ID)
			if err != nil {
				return nil, err
			}
		} else {
			ctx.rooms = []db.Room{*room}
		}
	}

	// Rooms settled by an earlier single-room checkout drop out of the bill.
	if len(billed) > 0 {
		remaining := ctx.rooms[:0]
		for _, billedRoom := range ctx.rooms {
			if !billed[strings.TrimSpace(billedRoom.Number)] {
				remaining = append(remaining, billedRoom)
			}
		}
		ctx.rooms = remaining
	}

	effectiveOut := billing.EffectiveCheckout(dateOnly(now), bookedOut)
	nights := billing.StayNights(checkIn, effectiveOut)

	var charges entities.BillBreakdown
	if ctx.booking != nil {
		prices := make([]float64, 0, len(ctx.rooms))
		for _, billedRoom := range ctx.rooms {
			prices = append(prices, billedRoom.Price)
		}
		charges.RoomCharges = billing.RoomCharges(prices, nights)
	} else {
		wholeProperty := availability.ScopeFor(*ctx.pkg).WholeProperty
		charges.PackageCharges = billing.PackageCharges(ctx.pkg.Price, wholeProperty, len(ctx.rooms), nights)
	}

	foodItems, err := s.CheckoutRepo.ListUnbilledFoodItems(ctx.roomIDs())
	if err != nil {
		return nil, err
	}
	for _, item := range foodItems {
		amount := item.Price * float64(item.Quantity)
		charges.FoodCharges += amount
		charges.FoodItems = append(charges.FoodItems, entities.FoodOrderItemOut{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Amount:   amount,
		})
	}

	services, err := s.CheckoutRepo.ListUnbilledServices(ctx.roomIDs())
	if err != nil {
		return nil, err
	}
	for _, svc := range services {
		charges.ServiceCharges += svc.Charges
		charges.ServiceItems = append(charges.ServiceItems, entities.ServiceItemOut{
			ServiceName: svc.ServiceName,
			Charges:     svc.Charges,
		})
	}

	billing.ApplyGST(&charges)

	roomNumbers := make([]string, 0, len(ctx.rooms))
	for _, billedRoom := range ctx.rooms {
		roomNumbers = append(roomNumbers, billedRoom.Number)
	}
	ctx.summary = entities.BillSummary{
		GuestName:      guestName,
		RoomNumbers:    roomNumbers,
		NumberOfGuests: adults + children,
		StayNights:     nights,
		CheckIn:        entities.NewDate(checkIn),
		CheckOut:       entities.NewDate(effectiveOut),
		Charges:        charges,
	}
	return ctx, nil
}

// billedRoomNumbers collects the room numbers already settled by earlier
// checkouts of the same stay.
func (s *CheckoutService) billedRoomNumbers(ctx *billContext) (map[string]bool, error) {
	var (
		stayID    int
		isPackage bool
	)
	if ctx.booking != nil {
		stayID = ctx.booking.ID
	} else {
		stayID = ctx.packageBooking.ID
		isPackage = true
	}

	joined, err := s.CheckoutRepo.ListBilledRoomNumbers(stayID, isPackage)
	if err != nil {
		return nil, err
	}
	billed := make(map[string]bool)
	for _, row := range joined {
		for _, number := range strings.Split(row, ",") {
			if number = strings.TrimSpace(number); number != "" {
				billed[number] = true
			}
		}
	}
	return billed, nil
}

// allStayRooms returns every room linked to the stay, regardless of checkout
// mode.
func (s *CheckoutService) allStayRooms(ctx *billContext) ([]db.Room, error) {
	if ctx.booking != nil {
		return s.BookingRepo.GetBookingRooms(ctx.booking.ID)
	}
	return s.PackageRepo.GetPackageBookingRooms(ctx.packageBooking.ID)
}

// settlesWholeStay reports whether this checkout covers the last unbilled
// rooms of the stay. A single-room checkout of a multi-room booking keeps the
// stay open for the remaining rooms.
func (s *CheckoutService) settlesWholeStay(ctx *billContext) (bool, error) {
	all, err := s.allStayRooms(ctx)
	if err != nil {
		return false, err
	}
	if len(ctx.rooms) >= len(all) {
		return true, nil
	}
	billed, err := s.billedRoomNumbers(ctx)
	if err != nil {
		return false, err
	}
	inBill := make(map[string]bool, len(ctx.rooms))
	for _, room := range ctx.rooms {
		inBill[strings.TrimSpace(room.Number)] = true
	}
	for _, room := range all {
		number := strings.TrimSpace(room.Number)
		if !inBill[number] && !billed[number] {
			return false, nil
		}
	}
	return true, nil
}

// noActiveStayError distinguishes a stay that already settled (409) from a
// room that has no booking at all (404).
func (s *CheckoutService) noActiveStayError(roomID int) error {
	if latest, err := s.BookingRepo.GetLatestBookingForRoom(roomID); err == nil {
		if availability.NormalizeStatus(latest.Status) == availability.StatusCheckedOut {
			return apperrors.ErrConflict("guest has already checked out")
		}
	}
	if latest, err := s.PackageRepo.GetLatestPackageBookingForRoom(roomID); err == nil {
		if availability.NormalizeStatus(latest.Status) == availability.StatusCheckedOut {
			return apperrors.ErrConflict("guest has already checked out")
		}
	}
	return apperrors.ErrNotFound("no active booking found for this room")
}

// Checkout settles the bill for the stay holding the given room. Cash and UPI
// settle immediately; Card opens a Stripe session and leaves the checkout
// pending until the webhook confirms payment.
func (s *CheckoutService) Checkout(roomNumber string, req entities.CheckoutRequest) (*entities.CheckoutSuccess, error) {
	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	switch strings.ToLower(paymentMethod) {
	case "cash", "card", "upi":
	case "":
		return nil, apperrors.ErrValidation("payment_method is required")
	default:
		return nil, apperrors.ErrValidation("payment_method must be Cash, Card or UPI")
	}

	now := time.Now()
	ctx, err := s.buildBill(roomNumber, req.CheckoutMode, now)
	if err != nil {
		return nil, err
	}

	if err := billing.ValidateDiscount(ctx.summary.Charges, req.DiscountAmount); err != nil {
		return nil, err
	}
	grandTotal := billing.GrandTotal(ctx.summary.Charges, req.DiscountAmount)

	receiptNumber, err := s.CheckoutRepo.NextReceiptNumber()
	if err != nil {
		return nil, err
	}

	checkout := &db.Checkout{
		ReceiptNumber:  receiptNumber,
		RoomTotal:      ctx.summary.Charges.RoomCharges,
		FoodTotal:      ctx.summary.Charges.FoodCharges,
		ServiceTotal:   ctx.summary.Charges.ServiceCharges,
		PackageTotal:   ctx.summary.Charges.PackageCharges,
		TaxAmount:      ctx.summary.Charges.TotalGST,
		DiscountAmount: req.DiscountAmount,
		GrandTotal:     grandTotal,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  "paid",
		GuestName:      ctx.summary.GuestName,
		RoomNumber:     strings.Join(ctx.summary.RoomNumbers, ", "),
		CheckoutDate:   now,
	}

	var guestEmail string
	if ctx.booking != nil {
		checkout.BookingID = sql.NullInt64{Int64: int64(ctx.booking.ID), Valid: true}
		guestEmail = ctx.booking.GuestEmail.String
	} else {
		checkout.PackageBookingID = sql.NullInt64{Int64: int64(ctx.packageBooking.ID), Valid: true}
		guestEmail = ctx.packageBooking.GuestEmail.String
	}

	var paymentURL string
	if strings.EqualFold(paymentMethod, "card") && s.Stripe != nil && grandTotal > 0 {
		description := fmt.Sprintf("Elysian Retreat checkout %s", receiptNumber)
		amountMinor := int64(math.Round(grandTotal * 100))
		url, sessionID, err := s.Stripe.CreateCheckoutSession(amountMinor, "inr", description, guestEmail)
		if err != nil {
			log.Printf("Error creating payment session: %v", err)
			return nil, apperrors.ErrTransient("payment provider unavailable, try again")
		}
		paymentURL = url
		checkout.StripeSessionID = sql.NullString{String: sessionID, Valid: true}
		checkout.PaymentStatus = "pending"
	}

	closeStay, err := s.settlesWholeStay(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.CheckoutRepo.CreateCheckout(checkout, ctx.roomIDs(), closeStay); err != nil {
		return nil, err
	}

	return &entities.CheckoutSuccess{
		Message:      "Checkout completed successfully",
		CheckoutID:   checkout.ID,
		GrandTotal:   grandTotal,
		CheckoutDate: checkout.CheckoutDate,
		PaymentURL:   paymentURL,
	}, nil
}

// ShareBill sends the current bill for a room to the guest's mobile as plain
// text.
func (s *CheckoutService) ShareBill(roomNumber, checkoutMode string, discount float64) error {
	ctx, err := s.buildBill(roomNumber, checkoutMode, time.Now())
	if err != nil {
		return err
	}
	if err := billing.ValidateDiscount(ctx.summary.Charges, discount); err != nil {
		return err
	}

	var guestMobile string
	if ctx.booking != nil {
		guestMobile = ctx.booking.GuestMobile.String
	} else {
		guestMobile = ctx.packageBooking.GuestMobile.String
	}
	if guestMobile == "" {
		return apperrors.ErrValidation("guest has no mobile number on file")
	}
	if err := s.Sender.ShareBill(guestMobile, billing.ShareText(ctx.summary, discount)); err != nil {
		return apperrors.ErrTransient("could not deliver the bill, try again")
	}
	return nil
}

func (s *CheckoutService) ListCheckouts(skip, limit int) ([]entities.CheckoutFull, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	checkouts, err := s.CheckoutRepo.ListCheckouts(skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]entities.CheckoutFull, 0, len(checkouts))
	for _, checkout := range checkouts {
		out = append(out, toCheckoutFull(checkout))
	}
	return out, nil
}

func (s *CheckoutService) GetCheckout(id int) (*entities.CheckoutFull, error) {
	checkout, err := s.CheckoutRepo.GetCheckoutByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound("checkout not found")
		}
		return nil, err
	}
	out := toCheckoutFull(*checkout)
	return &out, nil
}

// ActiveRoomOptions builds the checkout dropdown: one single-room entry per
// occupied room, plus one all-rooms entry for every booking holding more than
// one room.
func (s *CheckoutService) ActiveRoomOptions() ([]entities.ActiveRoomOption, error) {
	active, err := s.CheckoutRepo.ListActiveRooms()
	if err != nil {
		return nil, err
	}

	type group struct {
		guestName string
		isPackage bool
		rooms     []string
	}
	groups := make(map[string]*group)
	var options []entities.ActiveRoomOption

	for _, room := range active {
		bookingType := "room"
		if room.IsPackage {
			bookingType = "package"
		}
		options = append(options, entities.ActiveRoomOption{
			RoomNumber:   room.RoomNumber,
			RoomNumbers:  []string{room.RoomNumber},
			GuestName:    room.GuestName,
			BookingID:    room.RoomID,
			BookingType:  bookingType,
			CheckoutMode: CheckoutModeSingle,
			DisplayLabel: fmt.Sprintf("Room %s - %s", room.RoomNumber, room.GuestName),
		})

		key := fmt.Sprintf("%s|%t|%s|%s", room.GuestName, room.IsPackage,
			room.CheckIn.Format("2006-01-02"), room.CheckOut.Format("2006-01-02"))
		g, ok := groups[key]
		if !ok {
			g = &group{guestName: room.GuestName, isPackage: room.IsPackage}
			groups[key] = g
		}
		g.rooms = append(g.rooms, room.RoomNumber)
	}

	for _, g := range groups {
		if len(g.rooms) < 2 {
			continue
		}
		bookingType := "room"
		if g.isPackage {
			bookingType = "package"
		}
		options = append(options, entities.ActiveRoomOption{
			RoomNumber:   g.rooms[0],
			RoomNumbers:  g.rooms,
			GuestName:    g.guestName,
			BookingType:  bookingType,
			CheckoutMode: CheckoutModeMultiple,
			DisplayLabel: fmt.Sprintf("All rooms (%s) - %s", strings.Join(g.rooms, ", "), g.guestName),
		})
	}
	return options, nil
}

// ConfirmPayment marks a card checkout paid once Stripe reports the session
// complete.
func (s *CheckoutService) ConfirmPayment(sessionID string) error {
	if err := s.CheckoutRepo.UpdatePaymentStatusBySession(sessionID, "paid"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound("no checkout found for payment session")
		}
		return err
	}
	return nil
}

func toCheckoutFull(checkout db.Checkout) entities.CheckoutFull {
	out := entities.CheckoutFull{
		ID:             checkout.ID,
		ReceiptNumber:  checkout.ReceiptNumber,
		RoomTotal:      checkout.RoomTotal,
		FoodTotal:      checkout.FoodTotal,
		ServiceTotal:   checkout.ServiceTotal,
		PackageTotal:   checkout.PackageTotal,
		TaxAmount:      checkout.TaxAmount,
		DiscountAmount: checkout.DiscountAmount,
		GrandTotal:     checkout.GrandTotal,
		PaymentMethod:  checkout.PaymentMethod,
		PaymentStatus:  checkout.PaymentStatus,
		CreatedAt:      checkout.CreatedAt,
		GuestName:      checkout.GuestName,
		RoomNumber:     checkout.RoomNumber,
	}
	if checkout.BookingID.Valid {
		id := int(checkout.BookingID.Int64)
		out.BookingID = &id
	}
	if checkout.PackageBookingID.Valid {
		id := int(checkout.PackageBookingID.Int64)
		out.PackageBookingID = &id
	}
	return out
}
