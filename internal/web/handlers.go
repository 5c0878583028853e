package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/JonMunkholm/strcalc/internal/core"
	"github.com/JonMunkholm/strcalc/internal/web/middleware"
	"github.com/JonMunkholm/strcalc/internal/web/templates"
	"github.com/google/uuid"
)

// CalculateRequest is the JSON body of POST /api/calculate.
// Input is a pointer so an absent field can be told apart from "".
type CalculateRequest struct {
	Input *string `json:"input"`
}

// CalculateResponse is the JSON body of a successful calculation.
// Result is null when the sum overflowed float64; Display still shows it.
type CalculateResponse struct {
	ID      string   `json:"id"`
	Input   string   `json:"input"`
	Result  *float64 `json:"result"`
	Display string   `json:"display"`
}

// handleIndex renders the empty calculator page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.Page(templates.PageData{}))
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleCalculateForm processes the calculator form. Calculation errors are
// part of a normal response and shown in the result region; only
// request-level failures get an error status.
func (s *Server) handleCalculateForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.bodyLimit())

	if err := r.ParseForm(); err != nil {
		err = readError("parse form", err)
		s.respondError(w, r, err, statusFor(err), "")
		return
	}

	values, ok := r.PostForm[templates.InputField]
	if !ok {
		s.respondError(w, r, core.ErrMissingInput, http.StatusBadRequest, "")
		return
	}
	input := values[0]
	if int64(len(input)) > s.cfg.Calculator.MaxInputBytes {
		s.respondError(w, r, core.ErrInputTooLarge, http.StatusRequestEntityTooLarge, "")
		return
	}

	id := uuid.NewString()
	res := core.Calculate(input)
	logCalculation(r, id, input, res)

	view := resultView(id, res)
	if middleware.IsHTMX(r) {
		render(w, r, http.StatusOK, templates.ResultRegion(view))
		return
	}
	render(w, r, http.StatusOK, templates.Page(templates.PageData{Input: input, Result: view}))
}

// handleCalculateAPI processes a JSON calculation request.
func (s *Server) handleCalculateAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.bodyLimit())

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		err = readError("decode body", err)
		s.respondError(w, r, err, statusFor(err), "")
		return
	}
	if req.Input == nil {
		s.respondError(w, r, core.ErrMissingInput, http.StatusBadRequest, "")
		return
	}
	input := *req.Input
	if int64(len(input)) > s.cfg.Calculator.MaxInputBytes {
		s.respondError(w, r, core.ErrInputTooLarge, http.StatusRequestEntityTooLarge, "")
		return
	}

	id := uuid.NewString()
	res := core.Calculate(input)
	logCalculation(r, id, input, res)

	if !res.OK() {
		s.respondError(w, r, res.Err, statusFor(res.Err), id)
		return
	}

	resp := CalculateResponse{
		ID:      id,
		Input:   input,
		Display: res.Display(),
	}
	if !math.IsInf(res.Sum, 0) {
		sum := res.Sum
		resp.Result = &sum
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		requestLogger(r).Warn("json encode error", "error", err)
	}
}

// bodyLimit bounds the raw request body. Form and JSON encodings can expand
// each input byte up to six bytes, plus room for field names.
func (s *Server) bodyLimit() int64 {
	return s.cfg.Calculator.MaxInputBytes*6 + 1024
}

// readError classifies a body read failure.
func readError(op string, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		err = core.ErrInputTooLarge
	} else {
		err = core.ErrMissingInput
	}
	return fmt.Errorf("%s: %w", op, err)
}

// resultView turns a calculation outcome into what the result region shows.
func resultView(id string, res core.Result) templates.ResultView {
	view := templates.ResultView{
		CalculationID: id,
		Display:       res.String(),
		IsError:       !res.OK(),
	}
	if view.IsError {
		msg := core.MapError(res.Err)
		view.Code = msg.Code
		view.Action = msg.Action
	}
	return view
}
