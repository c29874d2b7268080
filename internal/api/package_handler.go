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

type PackageHandler struct {
	Service *service.PackageService
}

func NewPackageHandler(svc *service.PackageService) *PackageHandler {
	return &PackageHandler{Service: svc}
}

func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.Service.ListPackages()
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing packages")
		return
	}
	writeJSON(w, http.StatusOK, packages)
}

func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid package id"), "")
		return
	}
	pkg, err := h.Service.GetPackage(id)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error retrieving package")
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req entities.PackageCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	pkg, err := h.Service.CreatePackage(req)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error creating package")
		return
	}
	writeJSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid package id"), "")
		return
	}
	if err := h.Service.DeletePackage(id); err != nil {
		apperrors.WriteDetail(w, err, "Error deleting package")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Package deleted"})
}

func (h *PackageHandler) CreatePackageBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.PackageBookingCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteDetail(w, apperrors.ErrValidation("Invalid request body"), "")
		return
	}
	booking, err := h.Service.CreatePackageBooking(req)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error creating package booking")
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *PackageHandler) ListPackageBookings(w http.ResponseWriter, r *http.Request) {
	skip, limit := paginationParams(r)
	bookings, err := h.Service.ListPackageBookings(skip, limit)
	if err != nil {
		apperrors.WriteDetail(w, err, "Error listing package bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
