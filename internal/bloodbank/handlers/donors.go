package handlers

import (
	"net/http"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
)

func (h *Handler) ListDonors(w http.ResponseWriter, r *http.Request) {
	donors, err := h.donors.ListDonors(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, donors)
}

func (h *Handler) CreateDonor(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		h.badBody(w, r, err)
		return
	}
	form := models.DonorForm{
		Name:             f.Get("name"),
		Age:              f.Get("age"),
		BloodGroup:       f.Get("blood_group"),
		Contact:          f.Get("contact"),
		City:             f.Get("city"),
		LastDonationDate: f.Get("last_donation_date"),
	}

	id, err := h.donors.RegisterDonor(r.Context(), form)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.JSON(w, http.StatusCreated, idResponse{ID: id})
}
