package notification

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// EmitRequest is the debug-emit body. Everything is optional.
type EmitRequest struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Href  string `json:"href"`
}

type Handler struct {
	repo Repository
	// debugEnabled gates the emit endpoint to test environments.
	debugEnabled bool
	now          func() time.Time
}

func NewHandler(repo Repository, debugEnabled bool) *Handler {
	return &Handler{repo: repo, debugEnabled: debugEnabled, now: time.Now}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications/:id/read", h.MarkRead)
	api.POST("/notifications/debug/emit", h.DebugEmit)
}

func (h *Handler) ListNotifications(c echo.Context) error {
	data, err := h.repo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

// MarkRead acknowledges a notification. The stamp is returned to the
// caller but not stored; each client tracks its own read state.
func (h *Handler) MarkRead(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"id":     c.Param("id"),
		"readAt": h.now().Format(time.RFC3339),
	})
}

// DebugEmit inserts a notification so end-to-end tests can drive the
// bell menu. Hidden outside test environments.
func (h *Handler) DebugEmit(c echo.Context) error {
	if !h.debugEnabled {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	}

	// A malformed or absent body falls back to defaults instead of
	// erroring; this endpoint exists for test convenience.
	var req EmitRequest
	_ = c.Bind(&req)

	title := req.Title
	if title == "" {
		title = "E2E Notification"
	}

	inserted, err := h.repo.Insert(c.Request().Context(), Notification{
		Type:  NormalizeType(req.Type),
		Title: title,
		Body:  req.Body,
		Href:  req.Href,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": inserted})
}
