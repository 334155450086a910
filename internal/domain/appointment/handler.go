package appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.CreateAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.DELETE("/appointments/:id", h.DeleteAppointment)
	api.GET("/patients/:id/appointments", h.ListPatientAppointments)
}

// respondErr maps service errors onto the API's error envelope.
func respondErr(c echo.Context, err error) error {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Appointment not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func (h *Handler) ListAppointments(c echo.Context) error {
	start, okStart := parseDate(c.QueryParam("start"))
	end, okEnd := parseDate(c.QueryParam("end"))
	if !okStart || !okEnd {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "start and end query params are required (ISO date strings).",
		})
	}

	providerID := strings.TrimSpace(c.QueryParam("providerId"))
	room := strings.TrimSpace(c.QueryParam("room"))

	data, err := h.svc.ListWindow(c.Request().Context(), start, end, providerID, room)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON body"})
	}
	created, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
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

func (h *Handler) DeleteAppointment(c echo.Context) error {
	// Idempotent: deleting an id that is already gone is still success,
	// which keeps clients and server from drifting after retries.
	if _, err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *Handler) ListPatientAppointments(c echo.Context) error {
	data, err := h.svc.ListByPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}
