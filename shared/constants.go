package shared

import "time"

const (
	// PageSize is shared between browse paging and search slicing so
	// infinite scroll feels the same in both modes.
	PageSize = 20

	SeriesSearchDebounce = 400 * time.Millisecond
	PeopleSearchDebounce = 300 * time.Millisecond

	StatusRunning = "Running"
	StatusEnded   = "Ended"

	UserAgent = "Showdeck/1.0 <github.com/showdeck/showdeck>"
)
