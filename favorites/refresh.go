package favorites

import (
	"encoding/json"
	"sync"

	"github.com/r3labs/sse/v2"

	"github.com/showdeck/showdeck/events"
)

// Refresher keeps an in-memory copy of the favorites list for presentation
// clients. The persisted list stays the source of truth; this is only a
// read-through cache refreshed on start, on app foreground and on demand.
type Refresher struct {
	mu      sync.RWMutex
	svc     *Service
	items   []Item
	loading bool
}

func NewRefresher(svc *Service) *Refresher {
	return &Refresher{
		svc:   svc,
		items: []Item{},
	}
}

// Load is the loud variant used on start and for pull-to-refresh.
func (r *Refresher) Load() {
	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()
	r.reload()
}

// OnForeground reloads without flipping the loading flag so clients don't
// flash a spinner on a background/foreground bounce.
func (r *Refresher) OnForeground() {
	r.reload()
}

func (r *Refresher) reload() {
	items := r.svc.Get()
	r.mu.Lock()
	r.items = items
	r.loading = false
	r.mu.Unlock()
	r.publish()
}

func (r *Refresher) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]Item, len(r.items))
	copy(items, r.items)
	return items
}

func (r *Refresher) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

func (r *Refresher) publish() {
	if events.Server == nil {
		return
	}
	jsonState, _ := json.Marshal(r.Items())
	events.Server.Publish("favorites", &sse.Event{Data: jsonState})
}
