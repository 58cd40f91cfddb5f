package episodes

import (
	"context"
	"sort"
	"sync"

	"github.com/showdeck/showdeck/shared"
	"github.com/showdeck/showdeck/tvmaze"
)

// SeasonEpisodes groups one season's episodes ordered by number. It is
// derived from the flat catalog list on every fetch and never persisted.
type SeasonEpisodes struct {
	Season   int              `json:"season"`
	Episodes []tvmaze.Episode `json:"episodes"`
}

type Catalog interface {
	Episodes(ctx context.Context, seriesID int) ([]tvmaze.Episode, error)
}

// GroupBySeason buckets episodes by season, sorting seasons ascending and
// episodes by number within each.
func GroupBySeason(eps []tvmaze.Episode) []SeasonEpisodes {
	buckets := map[int][]tvmaze.Episode{}
	for _, ep := range eps {
		buckets[ep.Season] = append(buckets[ep.Season], ep)
	}
	seasons := make([]SeasonEpisodes, 0, len(buckets))
	for season, group := range buckets {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Number < group[j].Number
		})
		seasons = append(seasons, SeasonEpisodes{Season: season, Episodes: group})
	}
	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].Season < seasons[j].Season
	})
	return seasons
}

// Loader fetches and regroups the episode list for one series.
type Loader struct {
	mu       sync.Mutex
	catalog  Catalog
	seriesID int

	seasons []SeasonEpisodes
	loading bool
	err     *shared.APIError
}

func NewLoader(catalog Catalog, seriesID int) *Loader {
	return &Loader{
		catalog:  catalog,
		seriesID: seriesID,
	}
}

func (l *Loader) Load(ctx context.Context) {
	if l.seriesID == 0 {
		return
	}
	l.mu.Lock()
	l.loading = true
	l.err = nil
	l.mu.Unlock()

	eps, err := l.catalog.Episodes(ctx, l.seriesID)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.err = shared.ToAPIError(err, "Failed to load episodes")
		return
	}
	for i := range eps {
		eps[i].SummaryPlain = shared.StripMarkup(eps[i].Summary)
	}
	l.seasons = GroupBySeason(eps)
}

func (l *Loader) Seasons() []SeasonEpisodes {
	l.mu.Lock()
	defer l.mu.Unlock()
	seasons := make([]SeasonEpisodes, len(l.seasons))
	copy(seasons, l.seasons)
	return seasons
}

func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Loader) Err() *shared.APIError {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
