package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/application"
)

type authService interface {
	Login(ctx context.Context, username string) (application.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler exposes username login and session teardown.
type AuthHandler struct {
	service   authService
	responder responder
}

// NewAuthHandler builds the handler.
func NewAuthHandler(service authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, responder: newResponder(logger)}
}

// Login resolves or creates the user behind the submitted username and
// opens a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, loginResponse{
		User: userDTO{
			ID:        result.User.ID,
			Username:  result.User.Username,
			CreatedAt: result.User.CreatedAt.UTC().Format(time.RFC3339),
		},
		Token: result.Session.Token,
	})
}

// Logout revokes the current session. Revoking an absent session succeeds
// silently.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.service.Logout(r.Context(), extractTokenFromRequest(r)); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

type userDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}
