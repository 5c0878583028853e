package web

import (
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/strcalc/internal/core"
	"github.com/JonMunkholm/strcalc/internal/logging"
	"github.com/JonMunkholm/strcalc/internal/web/middleware"
	"github.com/a-h/templ"
)

// requestLogger returns a logger carrying the request ID, client IP and
// User-Agent for calculation logging.
func requestLogger(r *http.Request) *slog.Logger {
	return logging.WithFields(r.Context(),
		"ip", middleware.ClientIP(r),
		"user_agent", r.Header.Get("User-Agent"),
	)
}

// logCalculation records one calculation. Input is logged by size only.
func logCalculation(r *http.Request, id, input string, res core.Result) {
	log := requestLogger(r)
	if res.OK() {
		log.Info("calculation", "calculation_id", id, "input_bytes", len(input), "result", res.Display())
		return
	}
	log.Info("calculation rejected", "calculation_id", id, "input_bytes", len(input), "kind", res.Kind().String())
}

// render writes an HTML component with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		requestLogger(r).Warn("render error", "error", err)
	}
}
