package appointment

import (
	"context"
	"testing"
	"time"
)

func seedAppointments() []Appointment {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return []Appointment{
		{
			ID:         "appt-0001",
			PatientID:  "pat-001",
			ProviderID: "prov-001",
			StartTime:  base,
			EndTime:    base.Add(30 * time.Minute),
			Status:     StatusScheduled,
			CreatedAt:  base.AddDate(0, 0, -3),
		},
		{
			ID:         "appt-0002",
			PatientID:  "pat-002",
			ProviderID: "prov-002",
			StartTime:  base.Add(time.Hour),
			EndTime:    base.Add(90 * time.Minute),
			Status:     StatusScheduled,
			Room:       "Room 101",
			CreatedAt:  base.AddDate(0, 0, -1),
		},
	}
}

func TestMemRepo_ListReturnsSnapshot(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	first, _ := repo.List(ctx)
	first[0].Status = StatusCanceled

	second, _ := repo.List(ctx)
	if second[0].Status == StatusCanceled {
		t.Error("mutating a returned snapshot must not affect the store")
	}
}

func TestMemRepo_CreateAssignsUniqueIDs(t *testing.T) {
	repo := NewMemRepo(nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		a, err := repo.Create(ctx, Appointment{PatientID: "pat-001", ProviderID: "prov-001"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.ID == "" {
			t.Fatal("expected a generated id")
		}
		if seen[a.ID] {
			t.Fatalf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
		if a.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	}
}

func TestMemRepo_CreateInsertsAtFront(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	created, _ := repo.Create(ctx, Appointment{PatientID: "pat-009", ProviderID: "prov-001"})
	all, _ := repo.List(ctx)
	if all[0].ID != created.ID {
		t.Errorf("expected new appointment at front, got %s", all[0].ID)
	}
}

func TestMemRepo_UpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	status := StatusCompleted
	updated, err := repo.Update(ctx, "appt-0002", Update{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Errorf("expected status updated, got %s", updated.Status)
	}
	if updated.Room != "Room 101" {
		t.Errorf("expected room untouched, got %q", updated.Room)
	}
	if updated.PatientID != "pat-002" {
		t.Errorf("expected patientId untouched, got %s", updated.PatientID)
	}
}

func TestMemRepo_UpdateClearsRoom(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	empty := ""
	updated, err := repo.Update(ctx, "appt-0002", Update{Room: &empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Room != "" {
		t.Errorf("expected room cleared, got %q", updated.Room)
	}
}

func TestMemRepo_UpdateUnknownID(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	if _, err := repo.Update(context.Background(), "nope", Update{}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemRepo_RemoveReportsOutcome(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	removed, _ := repo.Remove(ctx, "appt-0001")
	if !removed {
		t.Error("expected first delete to report removal")
	}
	removed, _ = repo.Remove(ctx, "appt-0001")
	if removed {
		t.Error("expected second delete to report nothing removed")
	}
}

func TestMemRepo_ReseedRestoresMissingEntries(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	repo.Remove(ctx, "appt-0001")

	all, _ := repo.List(ctx)
	ids := make(map[string]int)
	for _, a := range all {
		ids[a.ID]++
	}
	if ids["appt-0001"] != 1 {
		t.Errorf("expected appt-0001 restored exactly once, got %d", ids["appt-0001"])
	}
}

func TestMemRepo_ReseedDoesNotOverwriteEdits(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	// Edit a seed entry, then shrink the store below seed size.
	status := StatusCanceled
	repo.Update(ctx, "appt-0002", Update{Status: &status})
	repo.Remove(ctx, "appt-0001")

	all, _ := repo.List(ctx)
	for _, a := range all {
		if a.ID == "appt-0002" && a.Status != StatusCanceled {
			t.Error("reseed must not overwrite live edits to seed entries")
		}
	}
}

func TestMemRepo_ReseedBeforeUpdate(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	// Drain the store bypassing List so the reseed check inside Update
	// itself is exercised.
	repo.mu.Lock()
	repo.store = nil
	repo.mu.Unlock()

	status := StatusCompleted
	if _, err := repo.Update(ctx, "appt-0001", Update{Status: &status}); err != nil {
		t.Fatalf("expected update of seed entry to succeed after reseed, got %v", err)
	}
}

func TestMemRepo_ResetRestoresSeed(t *testing.T) {
	repo := NewMemRepo(seedAppointments())
	ctx := context.Background()

	repo.Create(ctx, Appointment{PatientID: "pat-003", ProviderID: "prov-001"})
	status := StatusCanceled
	repo.Update(ctx, "appt-0001", Update{Status: &status})

	repo.Reset()

	all, _ := repo.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected pristine seed after reset, got %d entries", len(all))
	}
	for _, a := range all {
		if a.ID == "appt-0001" && a.Status != StatusScheduled {
			t.Error("expected seed values restored after reset")
		}
	}
}
