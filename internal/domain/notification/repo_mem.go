package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the notification collection.
type Repository interface {
	List(ctx context.Context) ([]Notification, error)
	Insert(ctx context.Context, n Notification) (*Notification, error)
}

// MemRepo is the in-process notification store.
type MemRepo struct {
	mu    sync.Mutex
	seed  []Notification
	store []Notification
	now   func() time.Time
}

func NewMemRepo(seed []Notification) *MemRepo {
	store := make([]Notification, len(seed))
	copy(store, seed)
	pristine := make([]Notification, len(seed))
	copy(pristine, seed)
	return &MemRepo{seed: pristine, store: store, now: time.Now}
}

// List returns all notifications, newest first.
func (r *MemRepo) List(_ context.Context) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.store))
	copy(out, r.store)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemRepo) Insert(_ context.Context, n Notification) (*Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now()
	}
	r.store = append([]Notification{n}, r.store...)
	return &n, nil
}

// Reset restores the pristine seed dataset for test fixtures.
func (r *MemRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store = make([]Notification, len(r.seed))
	copy(r.store, r.seed)
}
