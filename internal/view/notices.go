package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultNoticeTTL = 5 * time.Second

// Notice levels understood by the admin SPA. LevelNewListings additionally
// cues the one-shot arrival sound client-side.
const (
	LevelInfo        = "info"
	LevelError       = "error"
	LevelNewListings = "new-listings"
)

// Notice is a transient, auto-expiring message for the dashboard.
type Notice struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Board holds active notices and expires them lazily on read.
type Board struct {
	mu      sync.Mutex
	notices []Notice
	ttl     time.Duration
	now     func() time.Time
}

// BoardOption applies a configuration option to the Board.
type BoardOption func(*Board)

// WithNoticeTTL sets how long a notice stays active.
func WithNoticeTTL(ttl time.Duration) BoardOption {
	return func(b *Board) {
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// WithClock overrides the board's time source. Intended for tests.
func WithClock(now func() time.Time) BoardOption {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBoard creates a notice board with configuration options.
func NewBoard(opts ...BoardOption) *Board {
	b := &Board{
		ttl: defaultNoticeTTL,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Push adds a notice and returns it.
func (b *Board) Push(level, message string) Notice {
	n := Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: b.now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked()
	b.notices = append(b.notices, n)
	return n
}

// Active returns the notices that have not yet expired, oldest first.
func (b *Board) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked()
	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

func (b *Board) pruneLocked() {
	cutoff := b.now().Add(-b.ttl)
	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.CreatedAt.After(cutoff) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
}
