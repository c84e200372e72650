package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medrec/medrec/internal/platform/web"
)

func runAuthMiddleware(t *testing.T, issuer *Issuer, authHeader string) (error, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	return RequireAuth(issuer)(handler)(c), c
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	err, _ := runAuthMiddleware(t, newTestIssuer(), "")
	var authErr *web.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
}

func TestRequireAuth_BadScheme(t *testing.T) {
	err, _ := runAuthMiddleware(t, newTestIssuer(), "Basic Zm9vOmJhcg==")
	var authErr *web.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	err, _ := runAuthMiddleware(t, newTestIssuer(), "Bearer garbage")
	var authErr *web.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
}

func TestRequireAuth_RejectsRefreshToken(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.IssuePair(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mwErr, _ := runAuthMiddleware(t, issuer, "Bearer "+pair.Refresh)
	var authErr *web.AuthenticationError
	if !errors.As(mwErr, &authErr) {
		t.Fatalf("expected refresh token to be rejected, got %v", mwErr)
	}
}

func TestRequireAuth_SetsIdentity(t *testing.T) {
	issuer := newTestIssuer()
	userID := uuid.New()
	pair, err := issuer.IssuePair(userID, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mwErr, c := runAuthMiddleware(t, issuer, "Bearer "+pair.Access)
	if mwErr != nil {
		t.Fatalf("unexpected error: %v", mwErr)
	}

	ctx := c.Request().Context()
	if got := UserIDFromContext(ctx); got != userID {
		t.Errorf("expected user id %s on context, got %s", userID, got)
	}
	if got := UsernameFromContext(ctx); got != "alice" {
		t.Errorf("expected username alice on context, got %s", got)
	}
}

func TestUserIDFromContext_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := UserIDFromContext(req.Context()); got != uuid.Nil {
		t.Errorf("expected uuid.Nil, got %s", got)
	}
}
