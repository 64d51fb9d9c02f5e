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

type shiftService interface {
	ListShifts(ctx context.Context, principal application.Principal, day string) ([]application.Shift, error)
	CreateShift(ctx context.Context, principal application.Principal, input application.ShiftInput) (application.Shift, error)
	DeleteShift(ctx context.Context, principal application.Principal, id string) error
}

// ShiftHandler exposes shift assignment management for the authenticated
// assistant.
type ShiftHandler struct {
	service   shiftService
	responder responder
}

// NewShiftHandler builds the handler.
func NewShiftHandler(service shiftService, logger *slog.Logger) *ShiftHandler {
	return &ShiftHandler{service: service, responder: newResponder(logger)}
}

// List returns the principal's shifts, optionally narrowed by the `day`
// query parameter.
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	shifts, err := h.service.ListShifts(r.Context(), principal, r.URL.Query().Get("day"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, shiftListResponse{Shifts: toShiftDTOs(shifts)})
}

// Create validates and stores a new shift for the principal.
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	var req shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	shift, err := h.service.CreateShift(r.Context(), principal, application.ShiftInput{
		Block:     req.Block,
		Floor:     req.Floor,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Temporal:  req.Temporal,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toShiftDTO(shift))
}

// Delete removes a shift owned by the principal. Deleting an absent id is
// a no-op.
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	id, ok := ShiftIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidShiftID)
		return
	}

	if err := h.service.DeleteShift(r.Context(), principal, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type shiftRequest struct {
	Block     string `json:"block"`
	Floor     int    `json:"floor"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Temporal  bool   `json:"temporal"`
}

type shiftDTO struct {
	ID        string `json:"id"`
	Block     string `json:"block"`
	Floor     int    `json:"floor"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Temporal  bool   `json:"temporal"`
	CreatedAt string `json:"created_at"`
}

type shiftListResponse struct {
	Shifts []shiftDTO `json:"shifts"`
}

func toShiftDTO(shift application.Shift) shiftDTO {
	return shiftDTO{
		ID:        shift.ID,
		Block:     shift.Block,
		Floor:     shift.Floor,
		Day:       shift.Day,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		Temporal:  shift.Temporal,
		CreatedAt: shift.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toShiftDTOs(shifts []application.Shift) []shiftDTO {
	out := make([]shiftDTO, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, toShiftDTO(shift))
	}
	return out
}
