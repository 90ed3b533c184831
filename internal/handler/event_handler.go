package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/model"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

// eventRequest is the create/update form: a local calendar date plus an
// optional wall-clock time, encoded against the caller's active timezone
// (or an explicit override) at submission.
type eventRequest struct {
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Priority    model.Priority `json:"priority"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	Description string         `json:"description"`
	Completed   bool           `json:"completed"`
	Timezone    string         `json:"timezone"`
}

// validate checks the draft field by field and resolves the date to an
// instant. Field errors come back as user-facing messages.
func (h *Handler) validate(r *http.Request, uid string, req *eventRequest) (*model.Event, string) {
	if req.Title == "" {
		return nil, "title required"
	}
	if req.Priority == "" {
		req.Priority = model.PriorityMedium
	}
	if !req.Priority.Valid() {
		return nil, "priority must be High, Medium or Low"
	}
	if req.Category == "" {
		req.Category = model.DefaultCategories[0]
	}
	if req.Time != "" {
		if _, err := schedule.ParseTimeOfDay(req.Time); err != nil {
			return nil, "time must be HH:MM"
		}
	}

	day, err := schedule.ParseCalendarDate(req.Date)
	if err != nil {
		return nil, "date must be YYYY-MM-DD"
	}
	zone, err := h.zoneFor(r, uid, req.Timezone)
	if err != nil {
		return nil, "unknown timezone"
	}
	instant, err := schedule.EncodeDate(day, zone)
	if err != nil {
		return nil, "unknown timezone"
	}

	return &model.Event{
		UserID:      uid,
		Title:       req.Title,
		Category:    req.Category,
		Priority:    req.Priority,
		Date:        instant,
		Time:        req.Time,
		Description: req.Description,
		Completed:   req.Completed,
	}, ""
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	events, err := h.store.ListEvents(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventList(events))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	var req eventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	ev, msg := h.validate(r, uid, &req)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	ev.ID = uuid.New().String()

	if err := h.store.CreateEvent(r.Context(), ev); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventJSON(*ev))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	id := r.PathValue("id")

	var req eventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	ev, msg := h.validate(r, uid, &req)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	ev.ID = id

	if err := h.store.UpdateEvent(r.Context(), ev); err != nil {
		h.storeError(w, r, err)
		return
	}
	got, err := h.store.GetEvent(r.Context(), uid, id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventJSON(*got))
}

func (h *Handler) ToggleEvent(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	id := r.PathValue("id")

	completed, err := h.store.ToggleEvent(r.Context(), uid, id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "completed": completed})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	id := r.PathValue("id")

	if err := h.store.DeleteEvent(r.Context(), uid, id); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}
