package view

import (
	"sort"
	"sync"
	"time"
)

const defaultDwell = 4 * time.Second

// HighlightSet tracks listings flagged "new". An id enters the set when it
// is first observed in a reconciliation cycle and leaves automatically after
// the dwell time, independent of further polling.
type HighlightSet struct {
	mu      sync.Mutex
	ids     map[string]*time.Timer
	dwell   time.Duration
	stopped bool
}

// HighlightOption applies a configuration option to the HighlightSet.
type HighlightOption func(*HighlightSet)

// WithDwell sets how long a highlight stays active.
func WithDwell(dwell time.Duration) HighlightOption {
	return func(h *HighlightSet) {
		if dwell > 0 {
			h.dwell = dwell
		}
	}
}

// NewHighlightSet creates a highlight set with configuration options.
func NewHighlightSet(opts ...HighlightOption) *HighlightSet {
	h := &HighlightSet{
		ids:   make(map[string]*time.Timer),
		dwell: defaultDwell,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Add flags ids as new and schedules their removal. Re-adding an id restarts
// its dwell.
func (h *HighlightSet) Add(ids ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	for _, id := range ids {
		if t, ok := h.ids[id]; ok {
			t.Stop()
		}
		id := id
		h.ids[id] = time.AfterFunc(h.dwell, func() {
			h.remove(id)
		})
	}
}

func (h *HighlightSet) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.ids, id)
}

// Contains reports whether id is currently highlighted.
func (h *HighlightSet) Contains(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.ids[id]
	return ok
}

// Active returns the highlighted ids in sorted order.
func (h *HighlightSet) Active() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.ids))
	for id := range h.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Stop cancels all pending removals and rejects further additions.
func (h *HighlightSet) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for id, t := range h.ids {
		t.Stop()
		delete(h.ids, id)
	}
}
