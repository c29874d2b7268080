package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"elysian/internal/db"
	"elysian/internal/entities"
	apperrors "elysian/internal/errors"
	"elysian/internal/service"
)

type RoomHandler struct {
	Service *service.RoomService
}

func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{Service: svc}
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	skip, limit := paginationParams(r)
	rooms, err := h.Service.ListRooms(skip, limit)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing rooms")
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	resp, err := h.Service.CheckAvailability(req)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error checking availability")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number   string  `json:"number"`
		Type     string  `json:"type"`
		Price    float64 `json:"price"`
		Status   string  `json:"status"`
		Adults   int     `json:"adults"`
		Children int     `json:"children"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	room := &db.Room{
		Number:   req.Number,
		Type:     req.Type,
		Price:    req.Price,
		Status:   req.Status,
		Adults:   req.Adults,
		Children: req.Children,
	}
	out, err := h.Service.CreateRoom(room)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error creating room")
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid room id"), "")
		return
	}
	var req struct {
		Number   string  `json:"number"`
		Type     string  `json:"type"`
		Price    float64 `json:"price"`
		Status   string  `json:"status"`
		Adults   int     `json:"adults"`
		Children int     `json:"children"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	room := &db.Room{
		ID:       id,
		Number:   req.Number,
		Type:     req.Type,
		Price:    req.Price,
		Status:   req.Status,
		Adults:   req.Adults,
		Children: req.Children,
	}
	if err := h.Service.UpdateRoom(room); err != nil {
		apperrors.WriteDetail(w, err, "Error updating room")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room updated"})
}

func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid room id"), "")
		return
	}
	if err := h.Service.DeleteRoom(id); err != nil {
		apperrors.WriteDetail(w, err, "Error deleting room")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room deleted"})
}
