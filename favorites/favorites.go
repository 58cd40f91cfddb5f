package favorites

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/showdeck/showdeck/db"
	"github.com/showdeck/showdeck/tvmaze"
)

const storageKey = "favorites"

// Item is the slimmed-down projection of a series we persist, enough to
// render the favorites list without re-fetching details. The stored list
// keeps insertion order, which is the order things were favorited in.
type Item struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Image     *tvmaze.Image  `json:"image,omitempty"`
	Genres    []string       `json:"genres,omitempty"`
	Rating    *tvmaze.Rating `json:"rating,omitempty"`
	Status    string         `json:"status,omitempty"`
	Premiered string         `json:"premiered,omitempty"`
}

func itemFromSeries(series tvmaze.Series) Item {
	return Item{
		ID:        series.ID,
		Name:      series.Name,
		Image:     series.Image,
		Genres:    series.Genres,
		Rating:    series.Rating,
		Status:    series.Status,
		Premiered: series.Premiered,
	}
}

// Service owns the persisted favorites list. Every mutation is a
// read-modify-write of the whole list under one key; the mutex serialises
// those cycles within this process.
type Service struct {
	m     sync.Mutex
	store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{store: store}
}

// Get reads the full list. Store failures read as an empty list so a
// broken disk never takes the favorites screen down.
func (s *Service) Get() []Item {
	return s.load()
}

func (s *Service) load() []Item {
	raw, err := s.store.GetValue(storageKey)
	if err != nil {
		slog.Error("Failed to read favorites", slog.String("error", err.Error()))
		return []Item{}
	}
	if raw == "" {
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Error("Failed to decode favorites", slog.String("error", err.Error()))
		return []Item{}
	}
	return items
}

func (s *Service) save(items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.store.SetValue(storageKey, string(raw))
}

func (s *Service) IsFavorite(id int) bool {
	for _, item := range s.load() {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) Add(series tvmaze.Series) error {
	s.m.Lock()
	defer s.m.Unlock()
	items := s.load()
	return s.save(append(items, itemFromSeries(series)))
}

func (s *Service) Remove(id int) error {
	s.m.Lock()
	defer s.m.Unlock()
	items := s.load()
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return s.save(kept)
}

// Toggle flips membership for series and reports the new state.
func (s *Service) Toggle(series tvmaze.Series) (bool, error) {
	s.m.Lock()
	defer s.m.Unlock()
	items := s.load()
	kept := make([]Item, 0, len(items))
	found := false
	for _, item := range items {
		if item.ID == series.ID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		kept = append(kept, itemFromSeries(series))
	}
	if err := s.save(kept); err != nil {
		return found, err
	}
	return !found, nil
}
