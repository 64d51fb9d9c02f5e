package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aflondonor-afk/horario-app/internal/application"
	"github.com/aflondonor-afk/horario-app/internal/feed"
)

var (
	errBadRequestBody      = errors.New("El formato de la solicitud no es válido.")
	errInvalidShiftID      = errors.New("El identificador del turno no es válido.")
	errMissingSessionToken = errors.New("Debe iniciar sesión para realizar esta operación.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_REQUIRED",
			Message:   "La sesión no es válida. Inicie sesión nuevamente.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "El recurso solicitado no existe."})
	case errors.Is(err, feed.ErrFetchFailed):
		r.loggerFor(ctx).ErrorContext(ctx, "schedule feed unavailable", "kind", application.ErrorKind(err), "error", err)
		r.writeJSON(ctx, w, http.StatusBadGateway, errorResponse{
			ErrorCode: "FEED_UNAVAILABLE",
			Message:   "No se pudo cargar el horario. Intente más tarde.",
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Los datos ingresados no son válidos.",
				Errors:  localizeValidationErrors(vErr),
			})
			return
		}

		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "kind", application.ErrorKind(err), "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Ocurrió un error interno."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "La solicitud no es correcta."
	case http.StatusUnauthorized:
		return "Debe iniciar sesión."
	case http.StatusForbidden:
		return "No tiene permiso para realizar esta operación."
	case http.StatusNotFound:
		return "El recurso solicitado no existe."
	case http.StatusUnprocessableEntity:
		return "Los datos ingresados no son válidos."
	default:
		return "Ocurrió un error interno."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "username is required":
		return "El nombre de usuario es obligatorio."
	case "block is required":
		return "El bloque es obligatorio."
	case "floor must be positive":
		return "El piso debe ser un número positivo."
	case "day is required":
		return "El día es obligatorio."
	case "start time must be HH:MM":
		return "La hora de inicio debe tener el formato HH:MM."
	case "end time must be HH:MM":
		return "La hora final debe tener el formato HH:MM."
	case "end time must be after start time":
		return "La hora final debe ser posterior a la hora de inicio."
	case "an assistant is already assigned to this block and floor at this time":
		return "Ya existe un asistente asignado a este bloque/piso en este horario."
	case "event id is required":
		return "El identificador del evento es obligatorio."
	case "status must be one of IN_USE, FREE, NONE":
		return "El estado debe ser IN_USE, FREE o NONE."
	default:
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
