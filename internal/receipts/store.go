package receipts

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Get for unknown or malformed ids.
	ErrNotFound = errors.New("receipt not found")
	// ErrStoreUnavailable wraps every backend failure.
	ErrStoreUnavailable = errors.New("receipt store unavailable")
	// ErrIDCollision marks a generated id that was already taken.
	ErrIDCollision = errors.New("receipt id collision")
)

// maxPutAttempts bounds id regeneration after a collision.
const maxPutAttempts = 3

// Store persists scored receipts under generated ids. Put ignores rec.ID and
// returns the id it assigned; it never returns an id for an uncommitted write.
type Store interface {
	Put(ctx context.Context, rec ScoredReceipt) (uuid.UUID, error)
	Get(ctx context.Context, id string) (*ScoredReceipt, error)
}

// IDGenerator produces candidate receipt ids.
type IDGenerator func() uuid.UUID

func defaultIDGenerator() uuid.UUID {
	return uuid.New()
}

func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func cloneReceipt(r Receipt) Receipt {
	items := make([]Item, len(r.Items))
	copy(items, r.Items)
	r.Items = items
	return r
}
