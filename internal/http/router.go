package http

import (
	"log/slog"
	"net/http"
)

// RouterConfig collects the handlers and middleware dependencies for the
// HTTP surface.
type RouterConfig struct {
	Auth   *AuthHandler
	Shifts *ShiftHandler
	Logs   *LogHandler
	Grid   *GridHandler

	Sessions SessionValidator
	Logger   *slog.Logger
}

// NewRouter assembles the route table. The login endpoint, the supervisor
// grid preview and the supervisor log poll are reachable without a session;
// everything else goes through RequireSession.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	requireSession := RequireSession(cfg.Sessions, cfg.Logger)

	mux.HandleFunc("POST /sessions", cfg.Auth.Login)
	mux.Handle("DELETE /sessions/current", requireSession(http.HandlerFunc(cfg.Auth.Logout)))

	mux.Handle("GET /shifts", requireSession(http.HandlerFunc(cfg.Shifts.List)))
	mux.Handle("POST /shifts", requireSession(http.HandlerFunc(cfg.Shifts.Create)))
	mux.Handle("DELETE /shifts/{id}", requireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ContextWithShiftID(r.Context(), r.PathValue("id"))
		cfg.Shifts.Delete(w, r.WithContext(ctx))
	})))

	mux.HandleFunc("GET /logs/today", cfg.Logs.Today)
	mux.Handle("PUT /logs/status", requireSession(http.HandlerFunc(cfg.Logs.SetStatus)))
	mux.Handle("POST /logs/cycle", requireSession(http.HandlerFunc(cfg.Logs.Cycle)))

	mux.HandleFunc("GET /grid", cfg.Grid.Preview)
	mux.Handle("GET /grid/operation", requireSession(http.HandlerFunc(cfg.Grid.Operation)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return RequestLogger(cfg.Logger)(mux)
}
