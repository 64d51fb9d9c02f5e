package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aflondonor-afk/horario-app/internal/application"
	"github.com/aflondonor-afk/horario-app/internal/timetable"
)

var errMissingSelection = errors.New("Debe indicar bloque, piso y día para consultar el horario.")

type gridService interface {
	Grid(ctx context.Context, sel timetable.Selection) (application.GridView, error)
	OperationGrid(ctx context.Context, principal application.Principal, shiftID string) (application.GridView, application.Shift, error)
}

// GridHandler exposes the assembled schedule grid views.
type GridHandler struct {
	service   gridService
	responder responder
}

// NewGridHandler builds the handler.
func NewGridHandler(service gridService, logger *slog.Logger) *GridHandler {
	return &GridHandler{service: service, responder: newResponder(logger)}
}

// Preview builds the supervisor view from explicit block/floor/day query
// parameters. No session is required.
func (h *GridHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	sel := timetable.Selection{
		Block: strings.TrimSpace(query.Get("block")),
		Floor: strings.TrimSpace(query.Get("floor")),
		Day:   query.Get("day"),
	}
	if sel.Block == "" || sel.Floor == "" || timetable.NormalizeDay(sel.Day) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingSelection)
		return
	}

	view, err := h.service.Grid(r.Context(), sel)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toGridViewDTO(view, nil))
}

// Operation builds the assistant view parameterized by one of the
// principal's shifts (`shift_id` query parameter).
func (h *GridHandler) Operation(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	shiftID := strings.TrimSpace(r.URL.Query().Get("shift_id"))
	if shiftID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidShiftID)
		return
	}

	view, shift, err := h.service.OperationGrid(r.Context(), principal, shiftID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dto := toShiftDTO(shift)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toGridViewDTO(view, &dto))
}

type gridViewResponse struct {
	Selection gridSelectionDTO `json:"selection"`
	Shift     *shiftDTO        `json:"shift,omitempty"`
	Columns   []columnDTO      `json:"columns"`
	Events    []gridEventDTO   `json:"events"`
	NowMarker nowMarkerDTO     `json:"now_marker"`
}

type gridSelectionDTO struct {
	Block string `json:"block"`
	Floor string `json:"floor"`
	Day   string `json:"day"`
}

type columnDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Alternate bool   `json:"alternate"`
}

type gridEventDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle"`
	RoomID     string  `json:"room_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Color      string  `json:"color"`
	Instructor string  `json:"instructor"`
	AvatarURL  string  `json:"avatar_url"`
	Top        float64 `json:"top"`
	Height     float64 `json:"height"`
	Status     string  `json:"status"`
}

type nowMarkerDTO struct {
	Offset  float64 `json:"offset"`
	Visible bool    `json:"visible"`
}

func toGridViewDTO(view application.GridView, shift *shiftDTO) gridViewResponse {
	columns := make([]columnDTO, 0, len(view.Columns))
	for _, column := range view.Columns {
		columns = append(columns, columnDTO{
			ID:        column.ID,
			Title:     column.Title,
			Subtitle:  column.Subtitle,
			Alternate: column.Alternate,
		})
	}

	events := make([]gridEventDTO, 0, len(view.Events))
	for _, placed := range view.Events {
		events = append(events, gridEventDTO{
			ID:         placed.Event.ID,
			Title:      placed.Event.Title,
			Subtitle:   placed.Event.Subtitle,
			RoomID:     placed.Event.RoomID,
			StartTime:  placed.Event.StartTime,
			EndTime:    placed.Event.EndTime,
			Color:      string(placed.Event.Color),
			Instructor: placed.Event.Instructor.Name,
			AvatarURL:  placed.Event.Instructor.Avatar,
			Top:        placed.Box.Top,
			Height:     placed.Box.Height,
			Status:     string(placed.Status),
		})
	}

	return gridViewResponse{
		Selection: gridSelectionDTO{
			Block: view.Selection.Block,
			Floor: view.Selection.Floor,
			Day:   view.Selection.Day,
		},
		Shift:     shift,
		Columns:   columns,
		Events:    events,
		NowMarker: nowMarkerDTO{Offset: view.NowMarker.Offset, Visible: view.NowMarker.Visible},
	}
}
