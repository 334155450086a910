package note

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func seedNotes() []Note {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return []Note{
		{ID: "note-0001", PatientID: "pat-001", Author: "Dr. Patel", Text: "Initial consult.", CreatedAt: base},
		{ID: "note-0002", PatientID: "pat-001", Author: "Dr. Patel", Text: "Follow-up booked.", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "note-0003", PatientID: "pat-002", Author: "System", Text: "Chart imported.", CreatedAt: base.Add(time.Hour)},
	}
}

func setup(seed []Note) *echo.Echo {
	e := echo.New()
	NewHandler(NewService(NewMemRepo(seed))).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func TestListNotes_NewestFirst(t *testing.T) {
	e := setup(seedNotes())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/pat-001/notes", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data []Note `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 notes for pat-001, got %d", len(body.Data))
	}
	if body.Data[0].ID != "note-0002" || body.Data[1].ID != "note-0001" {
		t.Errorf("expected newest-first order, got %v then %v", body.Data[0].ID, body.Data[1].ID)
	}
}

func TestListNotes_EmptyPatientReturnsEmptyArray(t *testing.T) {
	e := setup(seedNotes())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/pat-999/notes", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestCreateNote(t *testing.T) {
	e := setup(seedNotes())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/pat-002/notes",
		strings.NewReader(`{"text":"  BP trending down.  ","author":"Dr. Okafor"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created Note
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if created.ID != "note-0004" {
		t.Errorf("expected counter-based id note-0004, got %s", created.ID)
	}
	if created.Text != "BP trending down." {
		t.Errorf("expected trimmed text, got %q", created.Text)
	}
	if created.PatientID != "pat-002" {
		t.Errorf("expected patient from path, got %s", created.PatientID)
	}
}

func TestCreateNote_DefaultsAuthor(t *testing.T) {
	e := setup(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/pat-001/notes",
		strings.NewReader(`{"text":"No author given."}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var created Note
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if created.Author != DefaultAuthor {
		t.Errorf("expected author %q, got %q", DefaultAuthor, created.Author)
	}
}

func TestCreateNote_RequiresText(t *testing.T) {
	e := setup(nil)

	for _, body := range []string{`{}`, `{"text":"   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/pat-001/notes",
			strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Note text is required") {
			t.Errorf("body %s: unexpected error %s", body, rec.Body.String())
		}
	}
}
