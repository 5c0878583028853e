// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/strcalc/internal/core"
	"github.com/JonMunkholm/strcalc/internal/web/templates"
)

// errorBody is the JSON shape of errors written by middleware. It matches the
// API error responses of the calculator endpoints.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// writeError maps err to a user message and writes it in the format the
// client prefers: an HTMX fragment, JSON, or plain text.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := core.MapError(err)

	switch {
	case IsHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if renderErr := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); renderErr != nil {
			slog.Warn("middleware: render error fragment", "error", renderErr)
		}
	case WantsJSON(r):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if encErr := json.NewEncoder(w).Encode(errorBody{
			Error:   msg.Message,
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		}); encErr != nil {
			slog.Warn("middleware: encode error response", "error", encErr)
		}
	default:
		http.Error(w, msg.Message+" ("+msg.Code+")", status)
	}
}

// IsHTMX checks if the request is an HTMX request.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// WantsJSON checks if the client prefers a JSON response.
func WantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
