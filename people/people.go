package people

import (
	"context"
	"strings"
	"sync"

	"github.com/showdeck/showdeck/shared"
	"github.com/showdeck/showdeck/tvmaze"
)

type Catalog interface {
	SearchPeople(ctx context.Context, query string) ([]tvmaze.Person, error)
	PersonByID(ctx context.Context, id int) (tvmaze.Person, error)
	PersonCastCredits(ctx context.Context, id int) ([]tvmaze.CastCredit, error)
}

// Search drives the people screen: a debounced query box over the catalog
// people search. Unlike the series browser there is no paging; the screen
// shows every hit at once.
type Search struct {
	mu      sync.Mutex
	catalog Catalog

	query       string
	people      []tvmaze.Person
	loading     bool
	err         *shared.APIError
	hasSearched bool

	debounce *shared.Debouncer
}

func NewSearch(catalog Catalog) *Search {
	return &Search{
		catalog:  catalog,
		debounce: shared.NewDebouncer(shared.PeopleSearchDebounce),
	}
}

// SetQuery updates the box and schedules the search once typing settles.
func (s *Search) SetQuery(ctx context.Context, query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
	s.debounce.Trigger(func() {
		s.run(ctx, query)
	})
}

// Retry re-runs the current query immediately, skipping the debounce.
func (s *Search) Retry(ctx context.Context) {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()
	s.run(ctx, query)
}

func (s *Search) Reset() {
	s.debounce.Stop()
	s.mu.Lock()
	s.query = ""
	s.people = nil
	s.err = nil
	s.hasSearched = false
	s.loading = false
	s.mu.Unlock()
}

func (s *Search) run(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		s.mu.Lock()
		s.people = nil
		s.err = nil
		s.hasSearched = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	results, err := s.catalog.SearchPeople(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.hasSearched = true
	if err != nil {
		s.err = shared.ToAPIError(err, "Failed to search people")
		s.people = nil
		return
	}
	s.people = results
}

func (s *Search) People() []tvmaze.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	people := make([]tvmaze.Person, len(s.people))
	copy(people, s.people)
	return people
}

func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Search) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Search) Err() *shared.APIError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Search) HasSearched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSearched
}
