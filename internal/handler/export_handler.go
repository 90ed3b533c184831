package handler

import (
	"fmt"
	"net/http"

	"github.com/abhaypanjeta/TimeDesk/internal/export"
	"github.com/abhaypanjeta/TimeDesk/internal/metrics"
	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

// exports render in memory first; the response is written only once the
// whole document exists, so a failed render never leaks partial bytes.

func (h *Handler) ExportMonth(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	anchor, zone, ok := h.exportScope(w, r, uid, "month")
	if !ok {
		return
	}

	events, err := h.store.ListEvents(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	doc, err := export.MonthPDF(events, zone, anchor)
	metrics.CountExport("month", err)
	if err != nil {
		h.log.Error("month export", "uid", uid, "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("export failed: %v", err))
		return
	}
	servePDF(w, export.MonthFilename(anchor), doc)
}

func (h *Handler) ExportDay(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	day, zone, ok := h.exportScope(w, r, uid, "day")
	if !ok {
		return
	}

	events, err := h.store.ListEvents(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	doc, err := export.DayPDF(events, zone, day)
	metrics.CountExport("day", err)
	if err != nil {
		h.log.Error("day export", "uid", uid, "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("export failed: %v", err))
		return
	}
	servePDF(w, export.DayFilename(day), doc)
}

func (h *Handler) ExportICal(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	zone, err := h.zoneFor(r, uid, r.URL.Query().Get("timezone"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}
	events, err := h.store.ListEvents(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	feed, err := export.ICal(events, zone)
	metrics.CountExport("ical", err)
	if err != nil {
		h.log.Error("ical export", "uid", uid, "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("export failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ICalFilename))
	_, _ = w.Write([]byte(feed))
}

// exportScope resolves the date (or month anchor) and zone query
// parameters shared by the PDF exports.
func (h *Handler) exportScope(w http.ResponseWriter, r *http.Request, uid, kind string) (schedule.CalendarDate, string, bool) {
	zone, err := h.zoneFor(r, uid, r.URL.Query().Get("timezone"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return schedule.CalendarDate{}, "", false
	}

	day, err := schedule.DecodeDate(h.now(), zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return schedule.CalendarDate{}, "", false
	}

	if kind == "month" {
		if ms := r.URL.Query().Get("month"); ms != "" {
			day, err = parseMonth(ms)
			if err != nil {
				writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
				return schedule.CalendarDate{}, "", false
			}
		}
		return day, zone, true
	}

	if ds := r.URL.Query().Get("date"); ds != "" {
		day, err = schedule.ParseCalendarDate(ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return schedule.CalendarDate{}, "", false
		}
	}
	return day, zone, true
}

func servePDF(w http.ResponseWriter, filename string, doc []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(doc)
}
