package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/google/uuid"
)

// MemoryStore keeps every entity in process. Values are copied on the way
// in and out so callers never share state with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	owners map[string]*domain.Owner
	snakes map[string]*domain.Snake
	cages  map[string]*domain.Cage
	// insertion order for deterministic scans
	cageOrder []string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		owners: make(map[string]*domain.Owner),
		snakes: make(map[string]*domain.Snake),
		cages:  make(map[string]*domain.Cage),
	}
}

// Store exposes the memory repositories as a Store
func (m *MemoryStore) Store() *Store {
	return &Store{
		Owners: &memoryOwners{m},
		Snakes: &memorySnakes{m},
		Cages:  &memoryCages{m},
		Ping:   func(context.Context) error { return nil },
		Close:  func(context.Context) error { return nil },
	}
}

type memoryOwners struct{ m *MemoryStore }

func (r *memoryOwners) Create(ctx context.Context, owner *domain.Owner) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	owner.ID = uuid.NewString()
	r.m.owners[owner.ID] = owner.Clone()
	return nil
}

func (r *memoryOwners) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	o, ok := r.m.owners[id]
	if !ok {
		return nil, domain.ErrOwnerNotFound
	}
	return o.Clone(), nil
}

func (r *memoryOwners) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var first *domain.Owner
	for _, o := range r.m.owners {
		if o.Email != email {
			continue
		}
		if first == nil || o.RegisteredAt.Before(first.RegisteredAt) {
			first = o
		}
	}
	if first == nil {
		return nil, domain.ErrOwnerNotFound
	}
	return first.Clone(), nil
}

func (r *memoryOwners) Update(ctx context.Context, owner *domain.Owner) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.owners[owner.ID]; !ok {
		return domain.ErrOwnerNotFound
	}
	r.m.owners[owner.ID] = owner.Clone()
	return nil
}

type memorySnakes struct{ m *MemoryStore }

func (r *memorySnakes) Create(ctx context.Context, snake *domain.Snake) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	snake.ID = uuid.NewString()
	cp := *snake
	r.m.snakes[snake.ID] = &cp
	return nil
}

func (r *memorySnakes) GetByID(ctx context.Context, id string) (*domain.Snake, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	s, ok := r.m.snakes[id]
	if !ok {
		return nil, domain.ErrSnakeNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memorySnakes) GetByIDs(ctx context.Context, ids []string) ([]*domain.Snake, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]*domain.Snake, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.m.snakes[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return orderByIDs(ids, out, func(s *domain.Snake) string { return s.ID }), nil
}

type memoryCages struct{ m *MemoryStore }

func (r *memoryCages) Create(ctx context.Context, cage *domain.Cage) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	cage.ID = uuid.NewString()
	if cage.Bookings == nil {
		cage.Bookings = []domain.Booking{}
	}
	r.m.cages[cage.ID] = cage.Clone()
	r.m.cageOrder = append(r.m.cageOrder, cage.ID)
	return nil
}

func (r *memoryCages) GetByID(ctx context.Context, id string) (*domain.Cage, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	c, ok := r.m.cages[id]
	if !ok {
		return nil, domain.ErrCageNotFound
	}
	return c.Clone(), nil
}

func (r *memoryCages) GetByIDs(ctx context.Context, ids []string) ([]*domain.Cage, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]*domain.Cage, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.m.cages[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return orderByIDs(ids, out, func(c *domain.Cage) string { return c.ID }), nil
}

func (r *memoryCages) AppendWindow(ctx context.Context, cageID string, window domain.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	c, ok := r.m.cages[cageID]
	if !ok {
		return domain.ErrCageNotFound
	}
	c.Bookings = append(c.Bookings, window.Clone())
	return nil
}

func (r *memoryCages) FindCandidates(ctx context.Context, q CageQuery) ([]*domain.Cage, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var out []*domain.Cage
	for _, id := range r.m.cageOrder {
		c := r.m.cages[id]
		if c.SquareMeters < q.MinSquareMeters {
			continue
		}
		if q.RequireDangerous && !c.AllowDangerousSnakes {
			continue
		}
		if _, ok := c.FindOpenWindow(q.CheckIn, q.CheckOut); !ok {
			continue
		}
		out = append(out, c.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].SquareMeters > out[j].SquareMeters
	})
	return out, nil
}

func (r *memoryCages) FindByGuestOwner(ctx context.Context, ownerID string) ([]*domain.Cage, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var out []*domain.Cage
	for _, id := range r.m.cageOrder {
		c := r.m.cages[id]
		for _, b := range c.Bookings {
			if b.GuestOwnerID == ownerID {
				out = append(out, c.Clone())
				break
			}
		}
	}
	return out, nil
}

func (r *memoryCages) ReserveWindow(ctx context.Context, cageID string, index int, expected, reserved domain.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	c, ok := r.m.cages[cageID]
	if !ok {
		return domain.ErrCageNotFound
	}
	if index < 0 || index >= len(c.Bookings) || !sameWindow(c.Bookings[index], expected) {
		return domain.ErrAvailabilityConflict
	}
	c.Bookings[index] = reserved.Clone()
	return nil
}
