package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/application"
	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

type logService interface {
	TodayLogs(ctx context.Context) ([]application.OperationalLog, error)
	SetStatus(ctx context.Context, eventID string, status persistence.Status, userID string) (application.OperationalLog, error)
	CycleStatus(ctx context.Context, eventID, userID string) (application.OperationalLog, error)
}

// LogHandler exposes the per-day operational status records.
type LogHandler struct {
	service   logService
	responder responder
}

// NewLogHandler builds the handler.
func NewLogHandler(service logService, logger *slog.Logger) *LogHandler {
	return &LogHandler{service: service, responder: newResponder(logger)}
}

// Today returns every log recorded for the current calendar date.
func (h *LogHandler) Today(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logs, err := h.service.TodayLogs(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, logListResponse{Logs: toLogDTOs(logs)})
}

// SetStatus upserts the log for (event, today) with an explicit status.
func (h *LogHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	log, err := h.service.SetStatus(r.Context(), req.EventID, persistence.Status(req.Status), principal.UserID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toLogDTO(log))
}

// Cycle advances the event's status one step along the tap cycle.
func (h *LogHandler) Cycle(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	var req cycleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	log, err := h.service.CycleStatus(r.Context(), req.EventID, principal.UserID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toLogDTO(log))
}

type setStatusRequest struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

type cycleStatusRequest struct {
	EventID string `json:"event_id"`
}

type logDTO struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	UpdatedBy string `json:"updated_by"`
	Timestamp string `json:"timestamp"`
}

type logListResponse struct {
	Logs []logDTO `json:"logs"`
}

func toLogDTO(log application.OperationalLog) logDTO {
	return logDTO{
		ID:        log.ID,
		EventID:   log.EventID,
		Date:      log.Date,
		Status:    string(log.Status),
		UpdatedBy: log.UpdatedBy,
		Timestamp: log.Timestamp.UTC().Format(time.RFC3339),
	}
}

func toLogDTOs(logs []application.OperationalLog) []logDTO {
	out := make([]logDTO, 0, len(logs))
	for _, log := range logs {
		out = append(out, toLogDTO(log))
	}
	return out
}
