package journal

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind names the email a desk action sends.
type Kind string

const (
	KindIntroduction Kind = "introduction"
	KindProposal     Kind = "proposal"
	KindMandat       Kind = "mandat"
	KindProfile      Kind = "profile"
)

// Entry is one delivery attempt.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	Kind      Kind      `json:"kind"`
	Sender    string    `json:"sender"`
	To        []string  `json:"to"`
	Subject   string    `json:"subject"`
	Test      bool      `json:"test"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxRecent bounds how many entries one Recent call returns.
const MaxRecent = 200

// Store records entries and lists the most recent first.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// normalize fills the id and timestamp of a new entry.
func normalize(e Entry, now time.Time) Entry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return e
}

// MemoryStore keeps at most capacity entries; older ones are dropped.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	now      func() time.Time
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 500
	}
	return &MemoryStore{capacity: capacity, now: time.Now}
}

func (s *MemoryStore) Record(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, normalize(e, s.now()))
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = slices.Delete(s.entries, 0, over)
	}
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > MaxRecent {
		limit = MaxRecent
	}
	limit = min(limit, len(s.entries))
	out := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}
