package receipts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps receipts in process memory. Writes are serialized, reads
// run concurrently.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]ScoredReceipt
	newID   IDGenerator
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]ScoredReceipt),
		newID:   defaultIDGenerator,
		now:     time.Now,
	}
}

// WithIDGenerator swaps the id source.
func (s *MemoryStore) WithIDGenerator(gen IDGenerator) *MemoryStore {
	s.newID = gen
	return s
}

func (s *MemoryStore) Put(ctx context.Context, rec ScoredReceipt) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < maxPutAttempts; attempt++ {
		id := s.newID()
		if _, taken := s.records[id]; taken || id == uuid.Nil {
			continue
		}
		rec.ID = id
		rec.Receipt = cloneReceipt(rec.Receipt)
		rec.CreatedAt = s.now().UTC()
		s.records[id] = rec
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, ErrIDCollision)
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*ScoredReceipt, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	rec, found := s.records[parsed]
	s.mu.RUnlock()
	if !found {
		return nil, ErrNotFound
	}
	rec.Receipt = cloneReceipt(rec.Receipt)
	return &rec, nil
}

// Len reports how many receipts are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
