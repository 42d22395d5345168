package response

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuccessResponse(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, http.StatusOK, "Test successful", map[string]string{"key": "value"})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Code != http.StatusOK || resp.Message != "Test successful" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Error != "" {
		t.Errorf("Expected no error, got '%s'", resp.Error)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, "Test error", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
	}
}

func TestErrorResponse_WithError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusNotFound, "Provider not found", errors.New("provider not configured"))

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("Expected success to be false")
	}
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected code 404, got %d", resp.Code)
	}
	if resp.Error != "provider not configured" {
		t.Errorf("Expected error 'provider not configured', got '%s'", resp.Error)
	}
}

func BenchmarkSuccessResponse(b *testing.B) {
	data := map[string]string{"test": "data"}

	for b.Loop() {
		w := httptest.NewRecorder()
		Success(w, http.StatusOK, "Benchmark test", data)
	}
}

func TestHTMLResponse(t *testing.T) {
	tmpl := template.Must(template.New("t").Parse(`<p>{{.}}</p>`))
	w := httptest.NewRecorder()

	if err := HTML(w, http.StatusOK, tmpl, "<b>order</b>"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Unexpected Content-Type '%s'", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Unexpected Cache-Control '%s'", cc)
	}
	if body := w.Body.String(); body != "<p>&lt;b&gt;order&lt;/b&gt;</p>" {
		t.Errorf("Unexpected body '%s'", body)
	}
}

func TestHTMLResponse_RenderError(t *testing.T) {
	tmpl := template.Must(template.New("t").Parse(`{{.Missing}}`))
	w := httptest.NewRecorder()

	if err := HTML(w, http.StatusOK, tmpl, 42); err == nil {
		t.Fatal("Expected rendering error")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON error body, got '%s'", ct)
	}
}
