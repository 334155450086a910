package patient

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("patient not found")

// Update carries the fields of a partial patient update. Nil means
// "leave unchanged"; validation happens in the service before the
// repository sees the value.
type Update struct {
	FirstName         *string
	LastName          *string
	Dob               *string
	Status            *Status
	RiskLevel         *RiskLevel
	PrimaryProviderID *string
}

// Repository is the patient collection. One instance per process; the
// query engine reads a snapshot from List, mutation goes through Apply.
type Repository interface {
	List(ctx context.Context) ([]Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	Apply(ctx context.Context, id string, upd Update) (*Patient, error)
	Exists(ctx context.Context, id string) bool
}
