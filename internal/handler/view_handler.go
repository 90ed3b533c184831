package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/model"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

// Dashboard returns the ordered event list plus headline stats. Optional
// ?search= and ?category= narrow the list (stats stay global, as in the
// web UI).
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	events, err := h.store.ListEvents(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	zone, err := h.zoneFor(r, uid, r.URL.Query().Get("timezone"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}

	today, err := schedule.DecodeDate(h.now(), zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}
	completed, todayCount := 0, 0
	for _, ev := range events {
		if ev.Completed {
			completed++
		}
		if d, err := schedule.DecodeDate(ev.Date, zone); err == nil && d == today {
			todayCount++
		}
	}

	search := strings.ToLower(r.URL.Query().Get("search"))
	category := r.URL.Query().Get("category")
	filtered := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if search != "" && !strings.Contains(strings.ToLower(ev.Title), search) {
			continue
		}
		if category != "" && category != "All" && ev.Category != category {
			continue
		}
		filtered = append(filtered, ev)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"timezone": zone,
		"stats": map[string]int{
			"total":     len(events),
			"completed": completed,
			"remaining": len(events) - completed,
			"today":     todayCount,
		},
		"events": toEventList(schedule.DashboardOrder(filtered)),
	})
}

// DayView returns one day's bucket, default today in the active zone.
// ?sort=priority switches from the time ordering.
func (h *Handler) DayView(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	zone, err := h.zoneFor(r, uid, r.URL.Query().Get("timezone"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}

	day, err := schedule.DecodeDate(h.now(), zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}
	if ds := r.URL.Query().Get("date"); ds != "" {
		day, err = schedule.ParseCalendarDate(ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	key := schedule.SortByTime
	if r.URL.Query().Get("sort") == string(schedule.SortByPriority) {
		key = schedule.SortByPriority
	}

	events, err := h.store.ListEvents(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	bucket, err := schedule.DailyBucket(events, zone, day, key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":     day.String(),
		"timezone": zone,
		"sort":     string(key),
		"events":   toEventList(bucket),
	})
}

type cellJSON struct {
	Date    string      `json:"date"`
	InMonth bool        `json:"inMonth"`
	Events  []eventJSON `json:"events"`
}

// MonthView returns the 6x7 grid for ?month=YYYY-MM (default the current
// month in the active zone).
func (h *Handler) MonthView(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	zone, err := h.zoneFor(r, uid, r.URL.Query().Get("timezone"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}

	anchor, err := schedule.DecodeDate(h.now(), zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}
	if ms := r.URL.Query().Get("month"); ms != "" {
		anchor, err = parseMonth(ms)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
	}

	events, err := h.store.ListEvents(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	grid, err := schedule.MonthGrid(events, zone, anchor)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}

	weeks := make([][]cellJSON, schedule.GridRows)
	for row := range grid {
		weeks[row] = make([]cellJSON, schedule.GridCols)
		for col, cell := range grid[row] {
			weeks[row][col] = cellJSON{
				Date:    cell.Day.String(),
				InMonth: cell.InMonth,
				Events:  toEventList(cell.Events),
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":    fmt.Sprintf("%04d-%02d", anchor.Year, int(anchor.Month)),
		"timezone": zone,
		"weeks":    weeks,
	})
}

func parseMonth(s string) (schedule.CalendarDate, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return schedule.CalendarDate{}, fmt.Errorf("%w: %q", schedule.ErrInvalidDate, s)
	}
	return schedule.CalendarDate{Year: t.Year(), Month: t.Month(), Day: 1}, nil
}
