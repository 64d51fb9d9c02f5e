package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
	"github.com/aflondonor-afk/horario-app/internal/timetable"
)

// ShiftRepository captures the persistence interactions needed by the service.
type ShiftRepository interface {
	CreateShift(ctx context.Context, shift persistence.Shift) error
	GetShift(ctx context.Context, id string) (persistence.Shift, error)
	ListShifts(ctx context.Context) ([]persistence.Shift, error)
	ListShiftsByUser(ctx context.Context, userID string) ([]persistence.Shift, error)
	DeleteShift(ctx context.Context, id string) error
}

// ShiftService orchestrates validation, collision detection and persistence
// for shift assignments. Shifts are never updated in place; editing is
// delete-then-create.
type ShiftService struct {
	shifts      ShiftRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewShiftService wires dependencies for shift operations.
func NewShiftService(shifts ShiftRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ShiftService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ShiftService{
		shifts:      shifts,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// ListShifts returns the principal's shifts, optionally narrowed to one day
// (day matching is diacritic and case insensitive).
func (s *ShiftService) ListShifts(ctx context.Context, principal Principal, day string) ([]Shift, error) {
	if s == nil || s.shifts == nil {
		return nil, fmt.Errorf("ShiftService is not configured")
	}

	shifts, err := s.shifts.ListShiftsByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(day) == "" {
		return toShifts(shifts), nil
	}

	var matched []persistence.Shift
	for _, shift := range shifts {
		if timetable.SameDay(shift.Day, day) {
			matched = append(matched, shift)
		}
	}
	return toShifts(matched), nil
}

// GetShift resolves one shift owned by the principal.
func (s *ShiftService) GetShift(ctx context.Context, principal Principal, id string) (Shift, error) {
	if s == nil || s.shifts == nil {
		return Shift{}, fmt.Errorf("ShiftService is not configured")
	}

	shift, err := s.shifts.GetShift(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Shift{}, ErrNotFound
		}
		return Shift{}, err
	}
	if shift.UserID != principal.UserID {
		return Shift{}, ErrUnauthorized
	}
	return toShift(shift), nil
}

// CreateShift validates the candidate, runs the collision check against
// every existing shift (all users) and persists the result with a fresh id.
func (s *ShiftService) CreateShift(ctx context.Context, principal Principal, input ShiftInput) (Shift, error) {
	if s == nil || s.shifts == nil {
		return Shift{}, fmt.Errorf("ShiftService is not configured")
	}

	start, end, vErr := validateShiftInput(input)
	if vErr.HasErrors() {
		return Shift{}, vErr
	}

	existing, err := s.shifts.ListShifts(ctx)
	if err != nil {
		return Shift{}, err
	}

	if !input.Temporal && hasCollision(existing, input, start, end) {
		conflict := &ValidationError{}
		conflict.add("time_range", "an assistant is already assigned to this block and floor at this time")
		return Shift{}, conflict
	}

	shift := persistence.Shift{
		ID:        s.idGenerator(),
		UserID:    principal.UserID,
		Block:     strings.TrimSpace(input.Block),
		Floor:     input.Floor,
		Day:       timetable.NormalizeDay(input.Day),
		StartTime: strings.TrimSpace(input.StartTime),
		EndTime:   strings.TrimSpace(input.EndTime),
		Temporal:  input.Temporal,
		CreatedAt: s.now(),
	}
	if err := s.shifts.CreateShift(ctx, shift); err != nil {
		return Shift{}, err
	}

	serviceLogger(ctx, s.logger, "shifts", "create").InfoContext(ctx, "shift created",
		"shift_id", shift.ID, "block", shift.Block, "floor", shift.Floor, "day", shift.Day, "temporal", shift.Temporal)
	return toShift(shift), nil
}

// DeleteShift removes a shift by id. Deleting an absent id is a no-op.
func (s *ShiftService) DeleteShift(ctx context.Context, principal Principal, id string) error {
	if s == nil || s.shifts == nil {
		return fmt.Errorf("ShiftService is not configured")
	}

	shift, err := s.shifts.GetShift(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil
		}
		return err
	}
	if shift.UserID != principal.UserID {
		return ErrUnauthorized
	}

	if err := s.shifts.DeleteShift(ctx, id); err != nil && !errors.Is(err, persistence.ErrNotFound) {
		return err
	}
	return nil
}

// hasCollision applies the boundary test `start ∈ [s.start, s.end) OR
// end ∈ (s.start, s.end]` against every existing shift sharing block, floor
// and day. Touching endpoints do not collide. A candidate that fully
// contains a shorter existing shift escapes both halves of the OR; that
// asymmetry is the feed producer's documented behavior and is kept as is.
func hasCollision(existing []persistence.Shift, input ShiftInput, start, end int) bool {
	block := strings.TrimSpace(input.Block)
	for _, shift := range existing {
		if shift.Block != block || shift.Floor != input.Floor {
			continue
		}
		if !timetable.SameDay(shift.Day, input.Day) {
			continue
		}
		existingStart, err := timetable.ParseClock(shift.StartTime)
		if err != nil {
			continue
		}
		existingEnd, err := timetable.ParseClock(shift.EndTime)
		if err != nil {
			continue
		}
		if (start >= existingStart && start < existingEnd) ||
			(end > existingStart && end <= existingEnd) {
			return true
		}
	}
	return false
}

func validateShiftInput(input ShiftInput) (start, end int, vErr *ValidationError) {
	vErr = &ValidationError{}

	if strings.TrimSpace(input.Block) == "" {
		vErr.add("block", "block is required")
	}
	if input.Floor <= 0 {
		vErr.add("floor", "floor must be positive")
	}
	if timetable.NormalizeDay(input.Day) == "" {
		vErr.add("day", "day is required")
	}

	var err error
	start, err = timetable.ParseClock(input.StartTime)
	if err != nil {
		vErr.add("start_time", "start time must be HH:MM")
	}
	end, err = timetable.ParseClock(input.EndTime)
	if err != nil {
		vErr.add("end_time", "end time must be HH:MM")
	}
	if !vErr.HasErrors() && end <= start {
		vErr.add("time_range", "end time must be after start time")
	}
	return start, end, vErr
}
