package vitals

import (
	"context"
	"sort"
)

// MemRepo indexes seeded readings by patient at construction. The data
// never changes afterwards, so reads take no lock.
type MemRepo struct {
	byPatient map[string][]VitalReading
}

func NewMemRepo(seed []VitalReading) *MemRepo {
	byPatient := make(map[string][]VitalReading)
	for _, v := range seed {
		byPatient[v.PatientID] = append(byPatient[v.PatientID], v)
	}
	for _, readings := range byPatient {
		sort.SliceStable(readings, func(i, j int) bool {
			return readings[i].RecordedAt.Before(readings[j].RecordedAt)
		})
	}
	return &MemRepo{byPatient: byPatient}
}

func (r *MemRepo) ListByPatient(_ context.Context, patientID string) ([]VitalReading, error) {
	readings := r.byPatient[patientID]
	out := make([]VitalReading, len(readings))
	copy(out, readings)
	return out, nil
}
