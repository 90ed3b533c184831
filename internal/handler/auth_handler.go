package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhaypanjeta/TimeDesk/internal/auth"
	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/model"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

type session struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, uid, name string) {
	tok, err := h.auth.AccessToken(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), uid, hash, h.now().Add(h.auth.RefreshTTL())); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session{UserID: uid, Name: name, Token: tok, RefreshToken: raw})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "all fields required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password too short")
		return
	}
	if req.Timezone != "" {
		if _, err := schedule.LoadZone(req.Timezone); err != nil {
			writeError(w, http.StatusBadRequest, "unknown timezone")
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Timezone:     req.Timezone,
	}

	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		writeError(w, http.StatusConflict, "registration failed")
		return
	}

	h.log.Info("user registered", "uid", u.ID)
	h.issueSession(w, r, u.ID, u.Name)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.issueSession(w, r, u.ID, u.Name)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh token required")
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || h.now().After(rt.ExpiresAt) {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, hash, h.now().Add(h.auth.RefreshTTL())); err != nil {
		h.storeError(w, r, err)
		return
	}

	tok, err := h.auth.AccessToken(rt.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, session{UserID: rt.UserID, Token: tok, RefreshToken: raw})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	if err := h.store.RevokeAllRefreshTokens(r.Context(), uid); err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UserID(r.Context())
	u, err := h.store.UserByID(r.Context(), uid)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"timezone":  u.Timezone,
		"createdAt": u.CreatedAt.Format(time.RFC3339),
	})
}
