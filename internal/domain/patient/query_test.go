package patient

import (
	"testing"
	"time"
)

func boolPtr(v bool) *bool { return &v }

func samplePatients() []Patient {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []Patient{
		{ID: "pat-001", FirstName: "Alice", LastName: "Nguyen", Dob: "1984-02-11",
			MRN: "MRN-1001", Status: StatusActive, RiskLevel: RiskHigh,
			PrimaryProviderID: "prov-001", CreatedAt: base},
		{ID: "pat-002", FirstName: "Bob", LastName: "nguyen", Dob: "1990-07-23",
			MRN: "MRN-1002", Status: StatusInactive, RiskLevel: RiskLow,
			PrimaryProviderID: "prov-002", CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "pat-003", FirstName: "Carol", LastName: "Adams", Dob: "1972-12-05",
			MRN: "MRN-1003", Status: StatusActive, RiskLevel: RiskCritical,
			PrimaryProviderID: "prov-001", CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "pat-004", FirstName: "Dan", LastName: "Baker", Dob: "not-a-date",
			MRN: "MRN-1004", Status: StatusDeceased, RiskLevel: RiskMedium,
			PrimaryProviderID: "prov-003", CreatedAt: base.AddDate(0, 0, 3)},
	}
}

func ids(patients []Patient) []string {
	out := make([]string, len(patients))
	for i, p := range patients {
		out[i] = p.ID
	}
	return out
}

func assertOrder(t *testing.T, got []Patient, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d patients %v, got %v", len(want), want, ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected order %v, got %v", want, ids(got))
		}
	}
}

func TestQuery_SearchMatchesNameMRNAndDob(t *testing.T) {
	patients := samplePatients()

	// Substring of "Alice Nguyen", case-insensitive.
	got := Query{Search: "alice ng", SortBy: "id"}.Run(patients, nil)
	assertOrder(t, got, "pat-001")

	got = Query{Search: "mrn-1003", SortBy: "id"}.Run(patients, nil)
	assertOrder(t, got, "pat-003")

	got = Query{Search: "1990-07", SortBy: "id"}.Run(patients, nil)
	assertOrder(t, got, "pat-002")
}

func TestQuery_InvalidEnumFiltersIgnored(t *testing.T) {
	patients := samplePatients()
	got := Query{Status: "zombie", RiskLevel: "extreme", SortBy: "id"}.Run(patients, nil)
	if len(got) != len(patients) {
		t.Errorf("invalid enum filters must be ignored, got %d of %d", len(got), len(patients))
	}
}

func TestQuery_FiltersAreANDCombined(t *testing.T) {
	patients := samplePatients()
	got := Query{Status: "active", ProviderID: "prov-001", RiskLevel: "critical", SortBy: "id"}.Run(patients, nil)
	assertOrder(t, got, "pat-003")
}

func TestQuery_HasUpcoming(t *testing.T) {
	patients := samplePatients()
	upcoming := map[string]bool{"pat-001": true, "pat-003": true}

	got := Query{HasUpcoming: boolPtr(true), SortBy: "id"}.Run(patients, upcoming)
	assertOrder(t, got, "pat-001", "pat-003")

	got = Query{HasUpcoming: boolPtr(false), SortBy: "id"}.Run(patients, upcoming)
	assertOrder(t, got, "pat-002", "pat-004")
}

func TestQuery_SortLastNameTieBreaksOnFirstName(t *testing.T) {
	patients := samplePatients()
	// Nguyen vs nguyen tie case-insensitively; Alice before Bob.
	got := Query{SortBy: "lastName"}.Run(patients, nil)
	assertOrder(t, got, "pat-003", "pat-004", "pat-001", "pat-002")
}

func TestQuery_SortRiskLevelBySeverity(t *testing.T) {
	patients := samplePatients()
	got := Query{SortBy: "riskLevel"}.Run(patients, nil)
	assertOrder(t, got, "pat-002", "pat-004", "pat-001", "pat-003")

	got = Query{SortBy: "riskLevel", SortOrder: "desc"}.Run(patients, nil)
	assertOrder(t, got, "pat-003", "pat-001", "pat-004", "pat-002")
}

func TestQuery_SortStatusByWorkflowRank(t *testing.T) {
	patients := samplePatients()
	got := Query{SortBy: "status"}.Run(patients, nil)
	// inactive < active < deceased; stable within equal ranks.
	if got[0].ID != "pat-002" || got[len(got)-1].ID != "pat-004" {
		t.Errorf("unexpected status order %v", ids(got))
	}
}

func TestQuery_SortDobTreatsInvalidAsEpoch(t *testing.T) {
	patients := samplePatients()
	got := Query{SortBy: "dob"}.Run(patients, nil)
	// pat-004 has an unparsable dob and sorts as the epoch, so first asc.
	assertOrder(t, got, "pat-004", "pat-003", "pat-001", "pat-002")
}

func TestQuery_SortCreatedAt(t *testing.T) {
	patients := samplePatients()
	got := Query{SortBy: "createdAt", SortOrder: "desc"}.Run(patients, nil)
	assertOrder(t, got, "pat-004", "pat-003", "pat-002", "pat-001")
}

func TestQuery_UnlistedSortKeyFallsBackToLastName(t *testing.T) {
	patients := samplePatients()
	got := Query{SortBy: "ssn"}.Run(patients, nil)
	want := Query{SortBy: "lastName"}.Run(patients, nil)
	assertOrder(t, got, ids(want)...)
}

func TestQuery_GenericSortPrefersNumericCompare(t *testing.T) {
	patients := []Patient{
		{ID: "10", LastName: "A"},
		{ID: "2", LastName: "B"},
	}
	got := Query{SortBy: "id"}.Run(patients, nil)
	// Numeric compare puts 2 before 10; a string compare would not.
	assertOrder(t, got, "2", "10")
}
