package patient

import (
	"context"
	"sync"
)

// MemRepo is the in-process patient store. Patients are seeded once at
// construction; the collection's membership is fixed (no create/delete),
// only partial updates mutate it. A mutex serializes access so handler
// goroutines observe each other's writes immediately.
type MemRepo struct {
	mu    sync.Mutex
	seed  []Patient
	store []Patient
}

func NewMemRepo(seed []Patient) *MemRepo {
	store := make([]Patient, len(seed))
	copy(store, seed)
	pristine := make([]Patient, len(seed))
	copy(pristine, seed)
	return &MemRepo{seed: pristine, store: store}
}

func (r *MemRepo) List(_ context.Context) ([]Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Patient, len(r.store))
	copy(out, r.store)
	return out, nil
}

func (r *MemRepo) GetByID(_ context.Context, id string) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.store {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemRepo) Apply(_ context.Context, id string, upd Update) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.store {
		if r.store[i].ID != id {
			continue
		}
		p := r.store[i]
		if upd.FirstName != nil {
			p.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			p.LastName = *upd.LastName
		}
		if upd.Dob != nil {
			p.Dob = *upd.Dob
		}
		if upd.Status != nil {
			p.Status = *upd.Status
		}
		if upd.RiskLevel != nil {
			p.RiskLevel = *upd.RiskLevel
		}
		if upd.PrimaryProviderID != nil {
			p.PrimaryProviderID = *upd.PrimaryProviderID
		}
		r.store[i] = p
		return &p, nil
	}
	return nil, ErrNotFound
}

func (r *MemRepo) Exists(_ context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.store {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Reset restores the pristine seed dataset for test fixtures.
func (r *MemRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store = make([]Patient, len(r.seed))
	copy(r.store, r.seed)
}
