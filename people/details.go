package people

import (
	"context"
	"sync"

	"github.com/showdeck/showdeck/shared"
	"github.com/showdeck/showdeck/tvmaze"
)

// Details loads one person and their cast credits side by side.
type Details struct {
	mu       sync.Mutex
	catalog  Catalog
	personID int

	person  *tvmaze.Person
	credits []tvmaze.CastCredit
	loading bool
	err     *shared.APIError
}

func NewDetails(catalog Catalog, personID int) *Details {
	return &Details{
		catalog:  catalog,
		personID: personID,
	}
}

func (d *Details) Load(ctx context.Context) {
	if d.personID == 0 {
		return
	}
	d.mu.Lock()
	d.loading = true
	d.err = nil
	d.mu.Unlock()

	var (
		wg         sync.WaitGroup
		person     tvmaze.Person
		credits    []tvmaze.CastCredit
		personErr  error
		creditsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		person, personErr = d.catalog.PersonByID(ctx, d.personID)
	}()
	go func() {
		defer wg.Done()
		credits, creditsErr = d.catalog.PersonCastCredits(ctx, d.personID)
	}()
	wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if personErr != nil {
		d.err = shared.ToAPIError(personErr, "Failed to load person details")
		return
	}
	if creditsErr != nil {
		d.err = shared.ToAPIError(creditsErr, "Failed to load person details")
		return
	}
	d.person = &person
	d.credits = credits
}

// Retry re-runs the fetch after an error.
func (d *Details) Retry(ctx context.Context) {
	d.Load(ctx)
}

func (d *Details) Person() *tvmaze.Person {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.person
}

func (d *Details) Credits() []tvmaze.CastCredit {
	d.mu.Lock()
	defer d.mu.Unlock()
	credits := make([]tvmaze.CastCredit, len(d.credits))
	copy(credits, d.credits)
	return credits
}

func (d *Details) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Details) Err() *shared.APIError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
