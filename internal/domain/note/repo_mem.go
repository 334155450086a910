package note

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemRepo is the in-process note store.
type MemRepo struct {
	mu      sync.Mutex
	store   []Note
	counter int
	now     func() time.Time
}

func NewMemRepo(seed []Note) *MemRepo {
	store := make([]Note, len(seed))
	copy(store, seed)
	return &MemRepo{
		store:   store,
		counter: len(seed) + 1,
		now:     time.Now,
	}
}

func (r *MemRepo) ListByPatient(_ context.Context, patientID string) ([]Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Note
	for _, n := range r.store {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	// Newest first.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemRepo) Create(_ context.Context, n Note) (*Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = fmt.Sprintf("note-%04d", r.counter)
	r.counter++
	n.CreatedAt = r.now()
	r.store = append(r.store, n)
	return &n, nil
}
