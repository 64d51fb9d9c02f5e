package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
	"github.com/aflondonor-afk/horario-app/internal/persistence/memory"
	"github.com/aflondonor-afk/horario-app/internal/testfixtures"
)

func newLogFixture(t *testing.T) (*OperationalLogService, *testfixtures.Clock) {
	t.Helper()
	store := memory.NewStorage()
	ids := testfixtures.NewIDGenerator("log")
	clock := testfixtures.NewClock(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	return NewOperationalLogService(store, ids.NextFunc(), clock.NowFunc(), nil), clock
}

func TestNextStatus(t *testing.T) {
	cases := []struct {
		current persistence.Status
		want    persistence.Status
	}{
		{persistence.StatusNone, persistence.StatusInUse},
		{persistence.StatusInUse, persistence.StatusFree},
		{persistence.StatusFree, persistence.StatusNone},
		{persistence.Status("garbage"), persistence.StatusInUse},
		{persistence.Status(""), persistence.StatusInUse},
	}
	for _, tc := range cases {
		if got := NextStatus(tc.current); got != tc.want {
			t.Errorf("NextStatus(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestOperationalLogServiceSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a log on first write", func(t *testing.T) {
		service, _ := newLogFixture(t)

		log, err := service.SetStatus(ctx, "evt-0", persistence.StatusInUse, "user-ana")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if log.ID == "" {
			t.Error("expected a generated id")
		}
		if log.Date != "2026-03-02" {
			t.Errorf("date = %q, want %q", log.Date, "2026-03-02")
		}
		if log.Status != persistence.StatusInUse {
			t.Errorf("status = %q, want %q", log.Status, persistence.StatusInUse)
		}
	})

	t.Run("second write upserts and preserves the id", func(t *testing.T) {
		service, _ := newLogFixture(t)

		first, err := service.SetStatus(ctx, "evt-0", persistence.StatusInUse, "user-ana")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := service.SetStatus(ctx, "evt-0", persistence.StatusFree, "user-beto")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("id changed from %q to %q", first.ID, second.ID)
		}
		if second.UpdatedBy != "user-beto" {
			t.Errorf("updated_by = %q, want %q", second.UpdatedBy, "user-beto")
		}

		logs, err := service.TodayLogs(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("expected one log after upsert, got %d", len(logs))
		}
		if logs[0].Status != persistence.StatusFree {
			t.Errorf("status = %q, want %q", logs[0].Status, persistence.StatusFree)
		}
	})

	t.Run("a new day starts a fresh record", func(t *testing.T) {
		service, clock := newLogFixture(t)

		first, err := service.SetStatus(ctx, "evt-0", persistence.StatusInUse, "user-ana")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		clock.Advance(24 * time.Hour)
		second, err := service.SetStatus(ctx, "evt-0", persistence.StatusFree, "user-ana")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.ID == first.ID {
			t.Error("expected a new id for the new date")
		}

		logs, err := service.TodayLogs(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(logs) != 1 || logs[0].Date != "2026-03-03" {
			t.Fatalf("expected only today's log, got %+v", logs)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		service, _ := newLogFixture(t)

		_, err := service.SetStatus(ctx, "  ", persistence.Status("BROKEN"), "user-ana")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		for _, field := range []string{"event_id", "status"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected field error for %q, got %v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestOperationalLogServiceCycleStatus(t *testing.T) {
	ctx := context.Background()
	service, _ := newLogFixture(t)

	want := []persistence.Status{
		persistence.StatusInUse,
		persistence.StatusFree,
		persistence.StatusNone,
		persistence.StatusInUse,
	}
	for step, expected := range want {
		log, err := service.CycleStatus(ctx, "evt-0", "user-ana")
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", step, err)
		}
		if log.Status != expected {
			t.Fatalf("step %d: status = %q, want %q", step, log.Status, expected)
		}
	}
}

func TestOperationalLogServiceStatusMap(t *testing.T) {
	ctx := context.Background()
	service, _ := newLogFixture(t)

	if _, err := service.SetStatus(ctx, "evt-0", persistence.StatusInUse, "user-ana"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.SetStatus(ctx, "evt-1", persistence.StatusFree, "user-ana"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	statuses, err := service.StatusMap(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statuses["evt-0"] != persistence.StatusInUse || statuses["evt-1"] != persistence.StatusFree {
		t.Fatalf("unexpected status map: %v", statuses)
	}
}
