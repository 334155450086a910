package note

import "context"

// Repository is the note collection. Notes are append-only; there is no
// edit or delete surface.
type Repository interface {
	ListByPatient(ctx context.Context, patientID string) ([]Note, error)
	Create(ctx context.Context, n Note) (*Note, error)
}
