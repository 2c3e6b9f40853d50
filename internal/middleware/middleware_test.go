package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterCapturesStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK) // second call must not overwrite

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want 404", rw.statusCode)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("recorded code = %d, want 404", rec.Code)
	}
}

func TestResponseWriterCountsBytes(t *testing.T) {
	t.Parallel()

	rw := newResponseWriter(httptest.NewRecorder())
	if _, err := rw.Write([]byte("hello")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := rw.Write([]byte(" world")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if rw.bytesWritten != 11 {
		t.Errorf("bytesWritten = %d, want 11", rw.bytesWritten)
	}
}

func TestSanitizeLogField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"two\nlines", "two lines"},
		{"cr\rhere", "cr here"},
		{"null\x00byte", "nullbyte"},
		{"esc\x1b[31mred", "esc[31mred"},
		{"tab\tok", "tab\tok"},
	}
	for _, tt := range tests {
		if got := sanitizeLogField(tt.in); got != tt.want {
			t.Errorf("sanitizeLogField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShouldSkip(t *testing.T) {
	t.Parallel()

	cfg := LoggingConfig{SkipPaths: []string{"/internal"}, LogHealthChecks: false}

	if !shouldSkip("/internal/debug", cfg) {
		t.Error("configured skip path not skipped")
	}
	if !shouldSkip("/healthz", cfg) {
		t.Error("health check not skipped with LogHealthChecks=false")
	}
	if shouldSkip("/api/libraries", cfg) {
		t.Error("API path skipped unexpectedly")
	}

	cfg.LogHealthChecks = true
	if shouldSkip("/healthz", cfg) {
		t.Error("health check skipped with LogHealthChecks=true")
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:4711"
	if got := getClientIP(r); got != "192.0.2.10" {
		t.Errorf("RemoteAddr IP = %q", got)
	}

	r.Header.Set("X-Real-IP", "198.51.100.7")
	if got := getClientIP(r); got != "198.51.100.7" {
		t.Errorf("X-Real-IP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
	if got := getClientIP(r); got != "203.0.113.5" {
		t.Errorf("X-Forwarded-For first hop = %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/api/libraries", "/api/libraries"},
		{"/api/libraries/0b6e6b4e-7dc5-4b3e-9a39-123456789abc/refresh", "/api/libraries/{id}/refresh"},
		{"/api/libraries/lib-42", "/api/libraries/{id}"},
		{"/health", "/health"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	t.Parallel()

	handler := Metrics(DefaultMetricsConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/libraries", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("skipped path status = %d, want 418", rec.Code)
	}
}

func TestLoggerMiddlewarePassesThrough(t *testing.T) {
	t.Parallel()

	handler := Logger(DefaultLoggingConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/libraries", nil))
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}
