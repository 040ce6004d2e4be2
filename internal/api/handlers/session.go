package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/casey/kickball-cup/internal/api/middleware"
	"github.com/casey/kickball-cup/internal/service"
)

type SessionHandler struct {
	sessions *service.SessionService
	log      *slog.Logger
}

func NewSessionHandler(sessions *service.SessionService, log *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, log: log}
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type SessionResponse struct {
	ID         string `json:"id"`
	PlayerName string `json:"playerName,omitempty"`
	Role       string `json:"role"`
}

// Me returns the caller classification for the current session.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SessionResponse{
		ID:         caller.ID,
		PlayerName: caller.PlayerName,
		Role:       string(caller.Role),
	})
}

// AdminLogin upgrades the session to the admin role.
func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	admin, err := h.sessions.LoginAdmin(caller, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.log.Error("admin login failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := middleware.SetSessionCookie(w, h.sessions, admin); err != nil {
		h.log.Error("failed to set admin cookie", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SessionResponse{
		ID:   admin.ID,
		Role: string(admin.Role),
	})
}

// Logout replaces the session with a fresh anonymous identity.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	fresh := h.sessions.NewAnonymousCaller()
	if err := middleware.SetSessionCookie(w, h.sessions, fresh); err != nil {
		h.log.Error("failed to reset session", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
