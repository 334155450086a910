package appointment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemRepo is the in-process appointment store. It is seeded once at
// construction and self-healing: if the collection ever drops below its
// seed size, missing seed entries are restored on the next access,
// without duplicating or overwriting live edits. Mutations are
// serialized by a mutex so concurrent handlers stay consistent.
type MemRepo struct {
	mu      sync.Mutex
	seed    []Appointment
	store   []Appointment
	counter int
	now     func() time.Time
}

func NewMemRepo(seed []Appointment) *MemRepo {
	store := make([]Appointment, len(seed))
	copy(store, seed)
	pristine := make([]Appointment, len(seed))
	copy(pristine, seed)
	return &MemRepo{
		seed:    pristine,
		store:   store,
		counter: 1,
		now:     time.Now,
	}
}

// nextIDLocked builds a collision-free id from the current timestamp and
// a monotonic counter. The counter is never rewound, so ids are never
// reused within a process lifetime.
func (r *MemRepo) nextIDLocked() string {
	id := fmt.Sprintf("appt_%d_%04d", r.now().UnixMilli(), r.counter)
	r.counter++
	return id
}

// ensureSeededLocked restores any seed entries missing from the live
// store. Existing entries, seeded or not, are left untouched.
func (r *MemRepo) ensureSeededLocked() {
	if len(r.store) >= len(r.seed) {
		return
	}
	existing := make(map[string]bool, len(r.store))
	for _, a := range r.store {
		existing[a.ID] = true
	}
	for _, a := range r.seed {
		if !existing[a.ID] {
			r.store = append(r.store, a)
		}
	}
}

func (r *MemRepo) List(_ context.Context) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSeededLocked()
	out := make([]Appointment, len(r.store))
	copy(out, r.store)
	return out, nil
}

func (r *MemRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSeededLocked()
	for _, a := range r.store {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemRepo) Create(_ context.Context, a Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSeededLocked()
	a.ID = r.nextIDLocked()
	a.CreatedAt = r.now()
	// Most-recent-first is a store convention, not an ordering guarantee
	// for consumers.
	r.store = append([]Appointment{a}, r.store...)
	return &a, nil
}

func (r *MemRepo) Update(_ context.Context, id string, upd Update) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSeededLocked()
	for i := range r.store {
		if r.store[i].ID != id {
			continue
		}
		a := r.store[i]
		if upd.PatientID != nil {
			a.PatientID = *upd.PatientID
		}
		if upd.ProviderID != nil {
			a.ProviderID = *upd.ProviderID
		}
		if upd.StartTime != nil {
			a.StartTime = *upd.StartTime
		}
		if upd.EndTime != nil {
			a.EndTime = *upd.EndTime
		}
		if upd.Status != nil {
			a.Status = *upd.Status
		}
		if upd.Room != nil {
			a.Room = *upd.Room
		}
		r.store[i] = a
		return &a, nil
	}
	return nil, ErrNotFound
}

func (r *MemRepo) Remove(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSeededLocked()
	for i := range r.store {
		if r.store[i].ID == id {
			r.store = append(r.store[:i], r.store[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Reset restores the pristine seed dataset. It exists for test fixtures;
// the id counter is deliberately not rewound so ids stay unique across
// resets.
func (r *MemRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store = make([]Appointment, len(r.seed))
	copy(r.store, r.seed)
}
