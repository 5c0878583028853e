package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/JonMunkholm/strcalc/internal/config"
	"github.com/google/uuid"
)

// newTestServer builds a server from env-style overrides. Rate limiting is
// off unless the test turns it on.
func newTestServer(t *testing.T, env map[string]string) *Server {
	t.Helper()
	values := map[string]string{"RATE_LIMIT_ENABLED": "false"}
	for k, v := range env {
		values[k] = v
	}
	cfg, err := config.LoadFrom(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s
}

func postForm(t *testing.T, s *Server, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, s *Server, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{`<form method="post" action="/calculate"`, `name="numbers"`, `aria-live="assertive"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy header missing")
	}
}

func TestHealthAndStatic(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/healthz", "/static/style.css"} {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestCalculateForm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantCode string
	}{
		{"empty", "", "Result: 0", ""},
		{"commas", "1,2,3", "Result: 6", ""},
		{"newlines", "1\n2,3", "Result: 6", ""},
		{"custom delimiter", "//;\n1;2", "Result: 3", ""},
		{"decimals", "1.5,2.5", "Result: 4", ""},
		{"negatives", "1,-2,-3", "Error: negatives not allowed: -2, -3", "CALC002"},
		{"invalid", "1,abc", "Error: invalid input detected:", "CALC001"},
		{"malformed header", "//;1;2", "Error: malformed delimiter header", "CALC003"},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, s, url.Values{"numbers": {tt.input}}, false)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			body := rec.Body.String()
			if !strings.Contains(body, "<!doctype html>") {
				t.Error("expected a full page")
			}
			if !strings.Contains(body, tt.wantText) {
				t.Errorf("body missing %q", tt.wantText)
			}
			if tt.wantCode != "" && !strings.Contains(body, tt.wantCode) {
				t.Errorf("body missing code %q", tt.wantCode)
			}
		})
	}
}

func TestCalculateForm_KeepsInput(t *testing.T) {
	s := newTestServer(t, nil)
	rec := postForm(t, s, url.Values{"numbers": {"1,<b>"}}, false)

	body := rec.Body.String()
	if strings.Contains(body, "1,<b>") {
		t.Error("input rendered without escaping")
	}
	if !strings.Contains(body, "1,&lt;b&gt;") {
		t.Error("escaped input not echoed in the textarea")
	}
}

func TestCalculateForm_HTMX(t *testing.T) {
	s := newTestServer(t, nil)
	rec := postForm(t, s, url.Values{"numbers": {"2,3"}}, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!doctype html>") {
		t.Error("HTMX response should be a fragment")
	}
	if !strings.HasPrefix(body, `<div id="result"`) {
		t.Errorf("fragment = %q, want result region", body)
	}
	if !strings.Contains(body, "Result: 5") {
		t.Errorf("fragment missing result: %q", body)
	}
}

func TestCalculateForm_RequestErrors(t *testing.T) {
	s := newTestServer(t, map[string]string{"CALC_MAX_INPUT_BYTES": "8"})

	t.Run("missing field", func(t *testing.T) {
		rec := postForm(t, s, url.Values{"other": {"1"}}, false)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("input too large", func(t *testing.T) {
		rec := postForm(t, s, url.Values{"numbers": {"1,1,1,1,1"}}, true)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
		if !strings.Contains(rec.Body.String(), "REQ001") {
			t.Errorf("body missing REQ001: %q", rec.Body.String())
		}
	})

	t.Run("body too large", func(t *testing.T) {
		rec := postForm(t, s, url.Values{"numbers": {strings.Repeat("1,", 2000)}}, false)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
	})
}

func TestCalculateAPI(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s, `{"input":"1\n2,3"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp CalculateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result == nil || *resp.Result != 6 {
		t.Errorf("Result = %v, want 6", resp.Result)
	}
	if resp.Display != "6" {
		t.Errorf("Display = %q, want %q", resp.Display, "6")
	}
	if resp.Input != "1\n2,3" {
		t.Errorf("Input = %q", resp.Input)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", resp.ID, err)
	}
}

func TestCalculateAPI_Overflow(t *testing.T) {
	s := newTestServer(t, nil)

	rec := postJSON(t, s, `{"input":"1e308,1e308"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp CalculateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result != nil {
		t.Errorf("Result = %v, want null", *resp.Result)
	}
	if resp.Display != "+Inf" {
		t.Errorf("Display = %q, want +Inf", resp.Display)
	}
}

func TestCalculateAPI_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantKind   string
		wantID     bool
	}{
		{"invalid number", `{"input":"1,x"}`, http.StatusUnprocessableEntity, "CALC001", "InvalidNumber", true},
		{"negatives", `{"input":"-1,2"}`, http.StatusUnprocessableEntity, "CALC002", "NegativesNotAllowed", true},
		{"malformed header", `{"input":"//"}`, http.StatusUnprocessableEntity, "CALC003", "MalformedDelimiterHeader", true},
		{"missing input", `{}`, http.StatusBadRequest, "REQ002", "", false},
		{"bad json", `{"input":`, http.StatusBadRequest, "REQ002", "", false},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s, tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", resp.Kind, tt.wantKind)
			}
			if (resp.CalculationID != "") != tt.wantID {
				t.Errorf("CalculationID = %q, want present=%v", resp.CalculationID, tt.wantID)
			}
			if resp.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestCalculateAPI_NegativesMessage(t *testing.T) {
	s := newTestServer(t, nil)
	rec := postJSON(t, s, `{"input":"//;\n-1;2;-3"}`, nil)

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "negatives not allowed: -1, -3" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestCalculateAPI_APIKey(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"REQUIRE_API_KEY": "true",
		"API_KEYS":        "k1,k2",
	})

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusForbidden},
		{"valid key", "k2", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.key != "" {
				h.Set("X-API-Key", tt.key)
			}
			rec := postJSON(t, s, `{"input":"1"}`, h)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	// The form is not behind the API key.
	rec := postForm(t, s, url.Values{"numbers": {"1"}}, false)
	if rec.Code != http.StatusOK {
		t.Errorf("form status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"RATE_LIMIT_ENABLED":             "true",
		"RATE_LIMIT_REQUESTS_PER_MINUTE": "1",
		"RATE_LIMIT_BURST":               "1",
	})

	first := postJSON(t, s, `{"input":"1"}`, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want %d", first.Code, http.StatusOK)
	}
	second := postJSON(t, s, `{"input":"1"}`, nil)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestRateLimit_FormGetsAlertFragment(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"RATE_LIMIT_ENABLED":             "true",
		"RATE_LIMIT_REQUESTS_PER_MINUTE": "1",
		"RATE_LIMIT_BURST":               "1",
	})

	if first := postForm(t, s, url.Values{"numbers": {"1"}}, true); first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want %d", first.Code, http.StatusOK)
	}
	second := postForm(t, s, url.Values{"numbers": {"1"}}, true)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
	body := second.Body.String()
	if !strings.HasPrefix(body, `<div id="result" class="result-region" role="alert">`) {
		t.Errorf("body = %q, want alert fragment", body)
	}
	if !strings.Contains(body, "(Code: RATE001)") {
		t.Errorf("body missing RATE001: %q", body)
	}

	plain := postForm(t, s, url.Values{"numbers": {"1"}}, false)
	if ct := plain.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("plain form Content-Type = %q, want text/plain", ct)
	}
}
