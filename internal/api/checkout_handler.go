package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/service"
)

type CheckoutHandler struct {
	Service *service.CheckoutService
}

func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Service: svc}
}

// GetBill returns the live bill for the stay holding a room. The checkout
// mode comes from the query string so the UI can flip between single room and
// whole booking without a body.
func (h *CheckoutHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["room_number"]
	checkoutMode := r.URL.Query().Get("checkout_mode")

	bill, err := h.Service.GetBill(roomNumber, checkoutMode)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error computing bill")
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["room_number"]

	var req entities.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}

	result, err := h.Service.Checkout(roomNumber, req)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error completing checkout")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CheckoutHandler) ShareBill(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["room_number"]

	var req struct {
		CheckoutMode   string  `json:"checkout_mode"`
		DiscountAmount float64 `json:"discount_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}

	if err := h.Service.ShareBill(roomNumber, req.CheckoutMode, req.DiscountAmount); err != nil {
		apperrors.WriteDetail(w, err, "Error sharing bill")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bill shared with guest"})
}

func (h *CheckoutHandler) ListCheckouts(w http.ResponseWriter, r *http.Request) {
	skip, limit := paginationParams(r)
	checkouts, err := h.Service.ListCheckouts(skip, limit)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing checkouts")
		return
	}
	writeJSON(w, http.StatusOK, checkouts)
}

func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid checkout id"), "")
		return
	}
	checkout, err := h.Service.GetCheckout(id)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error fetching checkout")
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) ActiveRooms(w http.ResponseWriter, r *http.Request) {
	options, err := h.Service.ActiveRoomOptions()
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing active rooms")
		return
	}
	writeJSON(w, http.StatusOK, options)
}
