package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/tarsalgabko/logitrack/internal/auth"
	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/session"
	"github.com/tarsalgabko/logitrack/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
	Session   *session.Store
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type updateMeRequest struct {
	Email  *string `json:"email" validate:"omitempty,email"`
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Avatar *string `json:"avatar"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, ok, err := h.Session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Error("persisting session", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, user)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user logged in", "user", user.Email, "role", user.Role)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout. The token is revoked and the
// session cleared.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	expiresAt := time.Now().Add(auth.TokenExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, expiresAt); err != nil {
		slog.Error("revoking token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to revoke token")
		return
	}
	if err := h.Session.Logout(r.Context()); err != nil {
		slog.Error("clearing session", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to clear persisted session")
		return
	}

	slog.Info("user logged out", "user", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Session.User()
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /api/auth/me. Roles are not self-service.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.Session.UpdateUser(r.Context(), session.UserPatch{
		Email:  req.Email,
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		slog.Error("updating session user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, _ := h.Session.User()
	jsonResponse(w, http.StatusOK, user)
}

// Users handles GET /api/users, the identities tasks can be assigned to.
func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Session.Directory().Users())
}
