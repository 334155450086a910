package patient

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carehub/carehub/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
}

func respondErr(c echo.Context, err error) error {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Patient not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

// parseBool mirrors the query contract for hasUpcoming: only the literal
// strings "true" and "false" count, anything else means no filter.
func parseBool(v string) *bool {
	switch strings.ToLower(v) {
	case "true":
		t := true
		return &t
	case "false":
		f := false
		return &f
	default:
		return nil
	}
}

func (h *Handler) ListPatients(c echo.Context) error {
	q := Query{
		Search:      c.QueryParam("search"),
		Status:      c.QueryParam("status"),
		RiskLevel:   c.QueryParam("riskLevel"),
		ProviderID:  c.QueryParam("provider"),
		HasUpcoming: parseBool(c.QueryParam("hasUpcoming")),
		SortBy:      c.QueryParam("sortBy"),
		SortOrder:   c.QueryParam("sortOrder"),
	}

	resp, err := h.svc.List(c.Request().Context(), q, pagination.FromContext(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON body"})
	}
	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
