package vitals

import "context"

// Repository serves seeded vital readings. The collection is read-only;
// there is no recording surface in this service.
type Repository interface {
	ListByPatient(ctx context.Context, patientID string) ([]VitalReading, error)
}
