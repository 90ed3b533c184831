package handler

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/model"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	cats, err := h.store.ListCategories(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	out := make([]map[string]string, 0, len(cats)+len(model.DefaultCategories))
	for _, name := range model.DefaultCategories {
		out = append(out, map[string]string{"name": name, "color": "#000000"})
	}
	for _, c := range cats {
		out = append(out, map[string]string{"id": c.ID, "name": c.Name, "color": c.Color})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "category name required")
		return
	}
	if req.Color == "" {
		req.Color = "#000000"
	}
	if !hexColor.MatchString(req.Color) {
		writeError(w, http.StatusBadRequest, "color must be #rrggbb")
		return
	}

	c := &model.Category{
		ID:     uuid.New().String(),
		UserID: uid,
		Name:   req.Name,
		Color:  req.Color,
	}
	if err := h.store.CreateCategory(r.Context(), c); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID, "name": c.Name, "color": c.Color})
}
