package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medrec/medrec/internal/platform/web"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the anonymous auth endpoints. These are the only
// routes served without the bearer-token middleware.
func (h *Handler) RegisterRoutes(authGroup *echo.Group) {
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/login/refresh", h.Refresh)
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	if err := h.svc.Register(c.Request().Context(), &in); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "User registered successfully.",
	})
}

func (h *Handler) Login(c echo.Context) error {
	var in LoginInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	pair, err := h.svc.Login(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) Refresh(c echo.Context) error {
	var in RefreshInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	access, err := h.svc.Refresh(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"access": access})
}
