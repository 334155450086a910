package provider

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("provider not found")

// MemRepo serves the fixed provider roster. Providers are reference data
// for this system: read, never mutated, so no locking is needed.
type MemRepo struct {
	providers []Provider
	byID      map[string]int
}

func NewMemRepo(providers []Provider) *MemRepo {
	byID := make(map[string]int, len(providers))
	for i, p := range providers {
		byID[p.ID] = i
	}
	return &MemRepo{providers: providers, byID: byID}
}

func (r *MemRepo) List(_ context.Context) ([]Provider, error) {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out, nil
}

func (r *MemRepo) GetByID(_ context.Context, id string) (*Provider, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := r.providers[i]
	return &p, nil
}

func (r *MemRepo) Exists(_ context.Context, id string) bool {
	_, ok := r.byID[id]
	return ok
}
