package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/models"
)

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.ListRequests(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, requests)
}

// CreateRequest ignores any status in the body, new requests start pending.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		h.badBody(w, r, err)
		return
	}
	form := models.RequestForm{
		PatientName: f.Get("patient_name"),
		BloodGroup:  f.Get("blood_group"),
		Units:       f.Get("units"),
		Hospital:    f.Get("hospital"),
		City:        f.Get("city"),
		Contact:     f.Get("contact"),
	}

	id, err := h.requests.SubmitRequest(r.Context(), form)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.JSON(w, http.StatusCreated, idResponse{ID: id})
}

func (h *Handler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.StaticFallback(w, r)
		return
	}

	// an unreadable body has no valid status either
	f, _ := readFields(r)
	status, ok := models.ParseStatus(f.Get("status"))
	if !ok {
		h.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid status"})
		return
	}

	change, err := h.requests.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, change)
}
