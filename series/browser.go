package series

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/r3labs/sse/v2"

	"github.com/showdeck/showdeck/events"
	"github.com/showdeck/showdeck/shared"
	"github.com/showdeck/showdeck/tvmaze"
)

// Mode says where the visible list comes from. Browse pages through the
// catalog server-side; Search slices a client-held pool of results, since
// the catalog returns every search hit in one call. Mode only changes at
// the debounced search entry points, never derived ad hoc from the input.
type Mode string

const (
	ModeBrowse Mode = "browse"
	ModeSearch Mode = "search"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// Catalog is the slice of the remote client the browser depends on.
type Catalog interface {
	SeriesPage(ctx context.Context, page int) ([]tvmaze.Series, error)
	SearchSeries(ctx context.Context, name string) ([]tvmaze.Series, error)
}

type Snapshot struct {
	Items      []tvmaze.Series  `json:"items"`
	SearchTerm string           `json:"search_term"`
	Mode       Mode             `json:"mode"`
	Status     Status           `json:"status"`
	HasMore    bool             `json:"has_more"`
	Error      *shared.APIError `json:"error,omitempty"`
}

// Browser is the single source of truth for what the series list shows.
// Both browse paging and search slicing run under the one HasMore/LoadMore
// contract. Responses only commit while their epoch is still current, so a
// slow response can never clobber state a later operation produced.
type Browser struct {
	mu      sync.Mutex
	catalog Catalog

	items      []tvmaze.Series
	searchTerm string
	mode       Mode
	page       int
	pool       []tvmaze.Series
	cursor     int
	hasMore    bool
	status     Status
	err        *shared.APIError

	loadInFlight   bool
	searchInFlight bool
	epoch          uint64
	closed         bool

	lastPublished uint64
}

func NewBrowser(catalog Catalog) *Browser {
	return &Browser{
		catalog: catalog,
		mode:    ModeBrowse,
		hasMore: true,
		status:  StatusIdle,
	}
}

// SetSearchTerm tracks the raw input box contents. It never fetches; the
// debounced ApplySearch call is the side-effecting entry point.
func (b *Browser) SetSearchTerm(term string) {
	b.mu.Lock()
	b.searchTerm = term
	b.mu.Unlock()
	b.publish()
}

// ApplySearch is invoked once the input has settled. An emptied term tears
// search mode down without refetching browse data; the next LoadMore call
// repopulates the list. A non-empty term runs one search and shows the
// first page of the pool.
func (b *Browser) ApplySearch(ctx context.Context, term string) {
	b.mu.Lock()
	trimmed := strings.TrimSpace(term)

	if trimmed == "" {
		if b.mode != ModeSearch {
			b.mu.Unlock()
			return
		}
		b.epoch++
		b.items = nil
		b.pool = nil
		b.page = 0
		b.cursor = 0
		b.hasMore = true
		b.err = nil
		b.mode = ModeBrowse
		b.status = StatusIdle
		b.mu.Unlock()
		b.publish()
		return
	}

	if b.searchInFlight {
		// overlapping debounced calls are dropped, not queued
		b.mu.Unlock()
		return
	}
	b.searchInFlight = true
	b.status = StatusLoading
	b.err = nil
	b.epoch++
	epoch := b.epoch
	b.mu.Unlock()
	b.publish()

	results, err := b.catalog.SearchSeries(ctx, trimmed)

	b.mu.Lock()
	b.searchInFlight = false
	if b.closed || epoch != b.epoch {
		b.mu.Unlock()
		return
	}
	if err != nil {
		// the last good list stays visible behind the error banner
		b.err = shared.ToAPIError(err, "Failed to search series")
		b.status = StatusError
		b.mu.Unlock()
		b.publish()
		return
	}
	b.mode = ModeSearch
	b.pool = results
	first := results
	if len(first) > shared.PageSize {
		first = first[:shared.PageSize]
	}
	b.items = append([]tvmaze.Series{}, first...)
	b.cursor = len(first)
	b.hasMore = len(results) > len(first)
	b.status = StatusLoaded
	b.mu.Unlock()
	b.publish()
}

// LoadMore appends the next page in either mode. Calls made while a load
// is already running, or once HasMore is false, are no-ops.
func (b *Browser) LoadMore(ctx context.Context) {
	b.mu.Lock()
	if b.loadInFlight || b.status == StatusLoading || !b.hasMore {
		b.mu.Unlock()
		return
	}

	if b.mode == ModeSearch {
		// search pages come out of the pool, no network involved
		next := b.pool[b.cursor:min(b.cursor+shared.PageSize, len(b.pool))]
		if len(next) == 0 {
			b.hasMore = false
		} else {
			b.items = append(b.items, next...)
			b.cursor += len(next)
			b.hasMore = b.cursor < len(b.pool)
		}
		b.status = StatusLoaded
		b.err = nil
		b.mu.Unlock()
		b.publish()
		return
	}

	b.loadInFlight = true
	b.status = StatusLoading
	b.err = nil
	page := b.page
	epoch := b.epoch
	b.mu.Unlock()
	b.publish()

	results, err := b.catalog.SeriesPage(ctx, page)

	b.mu.Lock()
	b.loadInFlight = false
	if b.closed || epoch != b.epoch {
		b.mu.Unlock()
		return
	}
	switch {
	case err != nil:
		b.err = shared.ToAPIError(err, "Failed to load series")
		b.status = StatusError
	case len(results) == 0:
		b.hasMore = false
		b.status = StatusLoaded
	default:
		b.items = append(b.items, results...)
		b.page++
		b.status = StatusLoaded
	}
	b.mu.Unlock()
	b.publish()
}

// Refresh resets everything, exits search mode and reloads browse page
// zero. Pull-to-refresh and retry-after-error both land here.
func (b *Browser) Refresh(ctx context.Context) {
	b.mu.Lock()
	b.epoch++
	epoch := b.epoch
	b.items = nil
	b.pool = nil
	b.page = 0
	b.cursor = 0
	b.hasMore = true
	b.err = nil
	b.searchTerm = ""
	b.mode = ModeBrowse
	b.status = StatusLoading
	b.mu.Unlock()
	b.publish()

	b.fetchFirstPage(ctx, epoch)
}

// RefreshOnFocus refetches page zero only when a freshly focused browse
// screen has nothing to show; a populated list stays as it is.
func (b *Browser) RefreshOnFocus(ctx context.Context) {
	b.mu.Lock()
	if b.mode != ModeBrowse || len(b.items) > 0 || b.status == StatusLoading {
		b.mu.Unlock()
		return
	}
	b.epoch++
	epoch := b.epoch
	b.err = nil
	b.status = StatusLoading
	b.mu.Unlock()
	b.publish()

	b.fetchFirstPage(ctx, epoch)
}

func (b *Browser) fetchFirstPage(ctx context.Context, epoch uint64) {
	results, err := b.catalog.SeriesPage(ctx, 0)

	b.mu.Lock()
	if b.closed || epoch != b.epoch {
		b.mu.Unlock()
		return
	}
	switch {
	case err != nil:
		b.err = shared.ToAPIError(err, "Failed to load series")
		b.status = StatusError
	case len(results) == 0:
		b.hasMore = false
		b.status = StatusLoaded
	default:
		b.items = results
		b.page = 1
		b.hasMore = true
		b.status = StatusLoaded
	}
	b.mu.Unlock()
	b.publish()
}

func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]tvmaze.Series, len(b.items))
	copy(items, b.items)
	return Snapshot{
		Items:      items,
		SearchTerm: b.searchTerm,
		Mode:       b.mode,
		Status:     b.status,
		HasMore:    b.hasMore,
		Error:      b.err,
	}
}

// Close makes every pending response a no-op, mirroring presentation
// teardown.
func (b *Browser) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

func (b *Browser) publish() {
	if events.Server == nil {
		return
	}
	data, _ := json.Marshal(b.Snapshot())
	sum := xxhash.Sum64(data)
	b.mu.Lock()
	if b.closed || sum == b.lastPublished {
		b.mu.Unlock()
		return
	}
	b.lastPublished = sum
	b.mu.Unlock()
	events.Server.Publish("catalog", &sse.Event{Data: data})
}
