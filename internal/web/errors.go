package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error (request-level or from the calculator)
//  2. Calls respondError(w, r, err, statusCode, calcID)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in the format the client asked for

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/strcalc/internal/core"
	"github.com/JonMunkholm/strcalc/internal/web/middleware"
	"github.com/JonMunkholm/strcalc/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code, Kind) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Action        string `json:"action,omitempty"`
	Code          string `json:"code"`
	Kind          string `json:"kind,omitempty"`
	CalculationID string `json:"id,omitempty"`
}

// statusFor picks the HTTP status for an error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrMissingInput):
		return http.StatusBadRequest
	case core.KindOf(err) != 0:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes a user-friendly response in the format
// the client prefers (HTMX fragment, JSON, or plain HTML).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int, calcID string) {
	userMsg := core.MapError(err)

	level := slog.LevelWarn
	if !core.IsUserFacing(err) {
		level = slog.LevelError
	}
	requestLogger(r).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"calculation_id", calcID,
	)

	switch {
	case middleware.IsHTMX(r):
		renderErrorPartial(w, r, userMsg, statusCode)
	case middleware.WantsJSON(r):
		respondErrorJSON(w, ErrorResponse{
			Error:         userMsg.Message,
			Message:       userMsg.Message,
			Action:        userMsg.Action,
			Code:          userMsg.Code,
			Kind:          kindName(err),
			CalculationID: calcID,
		}, statusCode)
	default:
		http.Error(w, userMsg.Message+" ("+userMsg.Code+")", statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, body ErrorResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("json encode error", "error", err)
	}
}

// renderErrorPartial renders an HTMX-compatible error fragment.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		slog.Warn("render error partial", "error", err)
	}
}

func kindName(err error) string {
	if k := core.KindOf(err); k != 0 {
		return k.String()
	}
	return ""
}
