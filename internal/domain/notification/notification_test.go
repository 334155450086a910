package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func seedNotifications() []Notification {
	base := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	return []Notification{
		{ID: "ntf-001", Type: TypeAppointment, Title: "Upcoming appointment", CreatedAt: base},
		{ID: "ntf-002", Type: TypePatientAlert, Title: "Critical vitals", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "ntf-003", Type: TypeMessage, Title: "New message", CreatedAt: base.Add(time.Hour)},
	}
}

func setup(debugEnabled bool) (*echo.Echo, *MemRepo) {
	repo := NewMemRepo(seedNotifications())
	e := echo.New()
	NewHandler(repo, debugEnabled).RegisterRoutes(e.Group("/api/v1"))
	return e, repo
}

func TestListNotifications_NewestFirst(t *testing.T) {
	e, _ := setup(false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data []Notification `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(body.Data))
	}
	want := []string{"ntf-002", "ntf-003", "ntf-001"}
	for i, id := range want {
		if body.Data[i].ID != id {
			t.Fatalf("expected order %v, got %s at %d", want, body.Data[i].ID, i)
		}
	}
}

func TestMarkRead_StampsWithoutPersisting(t *testing.T) {
	e, repo := setup(false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/ntf-001/read", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["id"] != "ntf-001" {
		t.Errorf("expected echoed id, got %v", body)
	}
	if _, err := time.Parse(time.RFC3339, body["readAt"]); err != nil {
		t.Errorf("expected RFC3339 readAt, got %q", body["readAt"])
	}

	// The store itself stays unread.
	all, _ := repo.List(req.Context())
	for _, n := range all {
		if n.ReadAt != nil {
			t.Errorf("notification %s unexpectedly marked read in store", n.ID)
		}
	}
}

func TestDebugEmit_HiddenWhenDisabled(t *testing.T) {
	e, _ := setup(false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/debug/emit", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with debug disabled, got %d", rec.Code)
	}
}

func TestDebugEmit_InsertsWithDefaults(t *testing.T) {
	e, repo := setup(true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/debug/emit",
		strings.NewReader(`{"type":"patient-alert","body":"Check pat-007"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data Notification `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Data.Type != TypePatientAlert {
		t.Errorf("expected normalized patient_alert, got %s", body.Data.Type)
	}
	if body.Data.Title != "E2E Notification" {
		t.Errorf("expected default title, got %q", body.Data.Title)
	}
	if body.Data.ID == "" {
		t.Error("expected generated id")
	}

	all, _ := repo.List(req.Context())
	if len(all) != 4 {
		t.Errorf("expected insert to reach the store, got %d entries", len(all))
	}
}

func TestNormalizeType(t *testing.T) {
	cases := map[string]Type{
		"appointment":   TypeAppointment,
		"patient-alert": TypePatientAlert,
		"patient_alert": TypePatientAlert,
		"message":       TypeMessage,
		"":              TypeMessage,
		"carrier-pigeon": TypeMessage,
	}
	for in, want := range cases {
		if got := NormalizeType(in); got != want {
			t.Errorf("NormalizeType(%q) = %s, want %s", in, got, want)
		}
	}
}
