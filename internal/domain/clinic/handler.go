package clinic

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medrec/medrec/internal/platform/auth"
	"github.com/medrec/medrec/internal/platform/web"
	"github.com/medrec/medrec/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the clinical endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	doctors := api.Group("/doctors")
	doctors.POST("", h.CreateDoctor)
	doctors.GET("", h.ListDoctors)
	doctors.GET("/:id", h.GetDoctor)
	doctors.PUT("/:id", h.UpdateDoctor)
	doctors.PATCH("/:id", h.PatchDoctor)
	doctors.DELETE("/:id", h.DeleteDoctor)

	patients := api.Group("/patients")
	patients.POST("", h.CreatePatient)
	patients.GET("", h.ListPatients)
	patients.GET("/:id", h.GetPatient)
	patients.PUT("/:id", h.UpdatePatient)
	patients.PATCH("/:id", h.PatchPatient)
	patients.DELETE("/:id", h.DeletePatient)
	patients.GET("/:id/doctors", h.PatientDoctors)

	mappings := api.Group("/mappings")
	mappings.POST("", h.CreateMapping)
	mappings.GET("", h.ListMappings)
	mappings.GET("/:id", h.GetMapping)
	mappings.PUT("/:id", h.UpdateMapping)
	mappings.PATCH("/:id", h.PatchMapping)
	mappings.DELETE("/:id", h.DeleteMapping)
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var in DoctorInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	d, err := h.svc.CreateDoctor(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	page := pagination.FromContext(c)
	items, total, err := h.svc.ListDoctors(c.Request().Context(), page.Limit, page.Offset)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Doctor{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, page))
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error { return h.updateDoctor(c, false) }
func (h *Handler) PatchDoctor(c echo.Context) error  { return h.updateDoctor(c, true) }

func (h *Handler) updateDoctor(c echo.Context, partial bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in DoctorInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	d, err := h.svc.UpdateDoctor(c.Request().Context(), id, &in, partial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var in PatientInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	p, err := h.svc.CreatePatient(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	page := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), page.Limit, page.Offset)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Patient{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, page))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error { return h.updatePatient(c, false) }
func (h *Handler) PatchPatient(c echo.Context) error  { return h.updatePatient(c, true) }

func (h *Handler) updatePatient(c echo.Context, partial bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in PatientInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	p, err := h.svc.UpdatePatient(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id, &in, partial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatientDoctors(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.PatientDoctors(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Doctor{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMapping(c echo.Context) error {
	var in MappingInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	m, err := h.svc.CreateMapping(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) ListMappings(c echo.Context) error {
	page := pagination.FromContext(c)
	items, total, err := h.svc.ListMappings(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), page.Limit, page.Offset)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Mapping{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, page))
}

func (h *Handler) GetMapping(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := h.svc.GetMapping(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) UpdateMapping(c echo.Context) error { return h.updateMapping(c, false) }
func (h *Handler) PatchMapping(c echo.Context) error  { return h.updateMapping(c, true) }

func (h *Handler) updateMapping(c echo.Context, partial bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in MappingInput
	if err := c.Bind(&in); err != nil {
		return web.FieldError("non_field_errors", "invalid request body")
	}
	m, err := h.svc.UpdateMapping(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id, &in, partial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteMapping(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMapping(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
