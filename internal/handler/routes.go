package handler

import (
	"net/http"

	"github.com/abhaypanjeta/TimeDesk/internal/metrics"
	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
)

// Routes wires the API onto a mux. Register and login sit behind the
// per-IP rate limiter; everything under /api except the auth entry points
// requires a bearer token.
func (h *Handler) Routes(rl *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	open := func(route string, fn http.HandlerFunc) http.Handler {
		return middleware.Metrics(route, fn)
	}
	authed := func(route string, fn http.HandlerFunc) http.Handler {
		return middleware.Metrics(route, middleware.Auth(h.auth, fn))
	}

	mux.Handle("POST /api/users", rl.Limit(open("register", h.Register)))
	mux.Handle("POST /api/users/login", rl.Limit(open("login", h.Login)))
	mux.Handle("POST /api/users/refresh", open("refresh", h.Refresh))
	mux.Handle("POST /api/users/logout", authed("logout", h.Logout))
	mux.Handle("GET /api/users/me", authed("me", h.Me))

	mux.Handle("GET /api/events", authed("events.list", h.ListEvents))
	mux.Handle("POST /api/events", authed("events.create", h.CreateEvent))
	mux.Handle("PUT /api/events/{id}", authed("events.update", h.UpdateEvent))
	mux.Handle("PATCH /api/events/{id}/complete", authed("events.toggle", h.ToggleEvent))
	mux.Handle("DELETE /api/events/{id}", authed("events.delete", h.DeleteEvent))

	mux.Handle("GET /api/categories", authed("categories.list", h.ListCategories))
	mux.Handle("POST /api/categories", authed("categories.create", h.CreateCategory))

	mux.Handle("GET /api/timezones", open("timezones", h.ListTimezones))
	mux.Handle("GET /api/timezone", authed("timezone.get", h.GetTimezone))
	mux.Handle("PUT /api/timezone", authed("timezone.set", h.SetTimezone))

	mux.Handle("GET /api/views/dashboard", authed("views.dashboard", h.Dashboard))
	mux.Handle("GET /api/views/day", authed("views.day", h.DayView))
	mux.Handle("GET /api/views/month", authed("views.month", h.MonthView))

	mux.Handle("GET /api/export/month", authed("export.month", h.ExportMonth))
	mux.Handle("GET /api/export/day", authed("export.day", h.ExportDay))
	mux.Handle("GET /api/export/calendar.ics", authed("export.ical", h.ExportICal))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}
