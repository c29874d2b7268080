package api

import (
	"encoding/json"
	"net/http"

	apperrors "elysian/internal/errors"
	"elysian/internal/service"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		apperrors.WriteDetail(w, err, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *AuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}

	if err := h.service.CreateAdmin(req.Email, req.Password); err != nil {
		apperrors.WriteDetail(w, err, "Error creating admin")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Admin registered successfully"})
}
