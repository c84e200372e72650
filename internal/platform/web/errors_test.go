package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestValidationError_AccumulatesFields(t *testing.T) {
	e := NewValidationError().
		Add("age", "must be a non-negative integer").
		Add("gender", "must be one of M, F, O").
		Add("age", "is required")

	if !e.HasErrors() {
		t.Fatal("expected HasErrors to be true")
	}
	if len(e.Fields["age"]) != 2 {
		t.Errorf("expected 2 messages for age, got %d", len(e.Fields["age"]))
	}
	if !strings.Contains(e.Error(), "age") || !strings.Contains(e.Error(), "gender") {
		t.Errorf("expected Error() to mention both fields, got %q", e.Error())
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("patient")
	if err.Error() != "patient not found" {
		t.Errorf("expected 'patient not found', got %q", err.Error())
	}
}

func runErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	logger := zerolog.New(os.Stderr)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	ErrorHandler(logger)(err, c)
	return rec
}

func TestErrorHandler_Validation(t *testing.T) {
	rec := runErrorHandler(t, FieldError("phone_number", "doctor with this contact info already exists"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body["errors"]["phone_number"]) != 1 {
		t.Errorf("expected one phone_number error, got %v", body["errors"])
	}
}

func TestErrorHandler_Authentication(t *testing.T) {
	rec := runErrorHandler(t, Unauthorized("missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["detail"] != "missing authorization header" {
		t.Errorf("unexpected detail: %q", body["detail"])
	}
}

func TestErrorHandler_NotFound(t *testing.T) {
	rec := runErrorHandler(t, NotFound("mapping"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["detail"] != "mapping not found" {
		t.Errorf("unexpected detail: %q", body["detail"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := runErrorHandler(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestErrorHandler_Unknown(t *testing.T) {
	rec := runErrorHandler(t, os.ErrClosed)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["detail"] != "internal server error" {
		t.Errorf("internal detail should be opaque, got %q", body["detail"])
	}
}
