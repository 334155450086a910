package appointment

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("appointment not found")

// Update carries a partial update: nil fields keep their prior value.
// A pointer to an empty Room clears the assignment.
type Update struct {
	PatientID  *string
	ProviderID *string
	StartTime  *time.Time
	EndTime    *time.Time
	Status     *Status
	Room       *string
}

type Repository interface {
	List(ctx context.Context) ([]Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	// Create assigns a fresh id and CreatedAt; the caller's values for
	// those fields are ignored.
	Create(ctx context.Context, a Appointment) (*Appointment, error)
	Update(ctx context.Context, id string, upd Update) (*Appointment, error)
	// Remove reports whether an entity was actually removed. Callers at
	// the API boundary treat delete as idempotent regardless.
	Remove(ctx context.Context, id string) (bool, error)
}
