package handlers

import (
	"net/http"
)

// AdminLogin only answers whether the credentials match. No session, token or
// cookie is issued.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		h.badBody(w, r, err)
		return
	}

	ok, err := h.admin.Login(r.Context(), f.Get("username"), f.Get("password"))
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	if !ok {
		h.JSON(w, http.StatusUnauthorized, loginResponse{Success: false})
		return
	}
	h.JSON(w, http.StatusOK, loginResponse{Success: true})
}
