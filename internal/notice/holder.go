package notice

import (
	"sync"
	"time"
)

// Notice is the site-wide announcement banner the admin can publish. There is
// one slot: setting a new notice replaces the pending one, the same
// single-writer deferred-slot shape the site uses for its install prompt.
type Notice struct {
	Message string    `json:"message"`
	Kind    string    `json:"kind"` // info, warning, promo
	SetAt   time.Time `json:"set_at"`
}

type Holder struct {
	mu      sync.RWMutex
	current *Notice
}

func NewHolder() *Holder {
	return &Holder{}
}

// Get returns the pending notice, or nil when the slot is empty.
func (h *Holder) Get() *Notice {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *Holder) Set(message, kind string) *Notice {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = &Notice{
		Message: message,
		Kind:    kind,
		SetAt:   time.Now(),
	}
	return h.current
}

func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
}
