// Package handler implements the JSON API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhaypanjeta/TimeDesk/internal/auth"
	"github.com/abhaypanjeta/TimeDesk/internal/model"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
	"github.com/abhaypanjeta/TimeDesk/internal/store"
	"github.com/abhaypanjeta/TimeDesk/internal/timezone"
)

type Handler struct {
	store *store.Store
	auth  *auth.Manager
	tz    *timezone.Resolver
	log   *slog.Logger
	now   func() time.Time
}

func New(st *store.Store, mgr *auth.Manager, tz *timezone.Resolver, log *slog.Logger) *Handler {
	return &Handler{store: st, auth: mgr, tz: tz, log: log, now: time.Now}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// storeError maps store failures onto HTTP statuses; everything
// unexpected is a logged 500 with an opaque body.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.Error("store", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// eventJSON is the wire shape of an event: date travels as an RFC 3339
// UTC instant, time as a naive "HH:MM" or absent.
type eventJSON struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Priority    model.Priority `json:"priority"`
	Date        time.Time      `json:"date"`
	Time        string         `json:"time,omitempty"`
	Description string         `json:"description,omitempty"`
	Completed   bool           `json:"completed"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toEventJSON(ev model.Event) eventJSON {
	return eventJSON{
		ID:          ev.ID,
		Title:       ev.Title,
		Category:    ev.Category,
		Priority:    ev.Priority,
		Date:        ev.Date.UTC(),
		Time:        ev.Time,
		Description: ev.Description,
		Completed:   ev.Completed,
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
}

func toEventList(events []model.Event) []eventJSON {
	out := make([]eventJSON, len(events))
	for i, ev := range events {
		out[i] = toEventJSON(ev)
	}
	return out
}

// zoneFor resolves the effective timezone for a request: an explicit
// override beats the stored selection.
func (h *Handler) zoneFor(r *http.Request, uid, override string) (string, error) {
	if override != "" {
		if _, err := schedule.LoadZone(override); err != nil {
			return "", err
		}
		return override, nil
	}
	return h.tz.Current(r.Context(), uid)
}
