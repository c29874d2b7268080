package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/service"
)

type BookingHandler struct {
	Bookings *service.BookingService
	Packages *service.PackageService
}

func NewBookingHandler(bookings *service.BookingService, packages *service.PackageService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Packages: packages}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	booking, err := h.Bookings.CreateBooking(req)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error creating booking")
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	skip, limit := paginationParams(r)
	list, err := h.Bookings.ListBookings(skip, limit)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing bookings")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetBooking resolves a guest-facing reference (BK-000123, PK-000042 or bare
// id) to either a room booking or a package booking.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, isPackage, err := service.ParseDisplayID(mux.Vars(r)["booking_id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation(err.Error()), "")
		return
	}

	if isPackage {
		booking, err := h.Packages.GetPackageBooking(id)
		if err != nil {
			apperrors.WriteDetail(w, err, "Error fetching booking")
			return
		}
		writeJSON(w, http.StatusOK, booking)
		return
	}

	booking, err := h.Bookings.GetBooking(id)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error fetching booking")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, isPackage, err := service.ParseDisplayID(mux.Vars(r)["booking_id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid booking reference"), "")
		return
	}

	if isPackage {
		booking, err := h.Packages.CheckInPackageBooking(id)
		if err != nil {
			apperrors.WriteDetail(w, err, "Error checking in booking")
			return
		}
		writeJSON(w, http.StatusOK, booking)
		return
	}

	booking, err := h.Bookings.CheckIn(id)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error checking in booking")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, isPackage, err := service.ParseDisplayID(mux.Vars(r)["booking_id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid booking reference"), "")
		return
	}

	if isPackage {
		err = h.Packages.CancelPackageBooking(id)
	} else {
		err = h.Bookings.Cancel(id)
	}
	if err != nil {
		apperrors.WriteDetail(w, err, "Error cancelling booking")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}

func (h *BookingHandler) ExtendStay(w http.ResponseWriter, r *http.Request) {
	id, isPackage, err := service.ParseDisplayID(mux.Vars(r)["booking_id"])
	if err != nil || isPackage {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid booking reference"), "")
		return
	}

	var newCheckout time.Time
	if raw := r.URL.Query().Get("new_checkout"); raw != "" {
		newCheckout, err = time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.WriteDetail(w, apperrors.ErrValidation("new_checkout must be YYYY-MM-DD"), "")
			return
		}
	} else {
		var req struct {
			CheckOut entities.Date `json:"check_out"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
			return
		}
		newCheckout = req.CheckOut.Time
	}

	booking, err := h.Bookings.ExtendStay(id, newCheckout)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error extending stay")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
