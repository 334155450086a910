package note

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/notes", h.ListNotes)
	api.POST("/patients/:id/notes", h.CreateNote)
}

func (h *Handler) ListNotes(c echo.Context) error {
	data, err := h.svc.ListByPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if data == nil {
		data = []Note{}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

func (h *Handler) CreateNote(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON body"})
	}
	created, err := h.svc.Create(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, created)
}
