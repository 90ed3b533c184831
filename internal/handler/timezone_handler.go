package handler

import (
	"errors"
	"net/http"

	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
	"github.com/abhaypanjeta/TimeDesk/internal/timezone"
)

func (h *Handler) ListTimezones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, timezone.Available())
}

func (h *Handler) GetTimezone(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	zone, err := h.tz.Current(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"timezone": zone})
}

func (h *Handler) SetTimezone(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	var req struct {
		Timezone string `json:"timezone"`
	}
	if err := decode(r, &req); err != nil || req.Timezone == "" {
		writeError(w, http.StatusBadRequest, "timezone required")
		return
	}

	if err := h.tz.Set(r.Context(), uid, req.Timezone); err != nil {
		if errors.Is(err, schedule.ErrUnknownTimezone) {
			writeError(w, http.StatusBadRequest, "unknown timezone")
			return
		}
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"timezone": req.Timezone})
}
