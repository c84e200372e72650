package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(t *testing.T, e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterHandlerResponse(t *testing.T) {
	repo := newMockUserRepo()
	h := NewHandler(newTestService(repo))
	e := echo.New()

	c, rec := postJSON(t, e, "/auth/register", `{
		"username": "alice",
		"email": "alice@example.com",
		"password": "correct horse",
		"password2": "correct horse"
	}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusCreated)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["message"] != "User registered successfully." {
		t.Fatalf("message %q", body["message"])
	}
}

func TestRegisterHandlerMalformedBody(t *testing.T) {
	repo := newMockUserRepo()
	h := NewHandler(newTestService(repo))
	e := echo.New()

	c, _ := postJSON(t, e, "/auth/register", `{not json`)
	if err := h.Register(c); err == nil {
		t.Fatal("expected error for malformed body")
	}
	if len(repo.created) != 0 {
		t.Fatalf("created %d users from malformed body", len(repo.created))
	}
}

func TestLoginHandlerReturnsPair(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)
	if err := svc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	h := NewHandler(svc)
	e := echo.New()

	c, rec := postJSON(t, e, "/auth/login", `{"username": "alice", "password": "correct horse"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["access"] == "" || body["refresh"] == "" {
		t.Fatalf("incomplete token pair: %v", body)
	}
}

func TestRefreshHandlerReturnsAccessOnly(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)
	if err := svc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	pair, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	h := NewHandler(svc)
	e := echo.New()

	c, rec := postJSON(t, e, "/auth/login/refresh", `{"refresh": "`+pair.Refresh+`"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["access"] == "" {
		t.Fatal("missing access token")
	}
	if _, ok := body["refresh"]; ok {
		t.Fatal("refresh endpoint must not return a refresh token")
	}
}
