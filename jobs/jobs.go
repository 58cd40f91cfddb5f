package jobs

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/showdeck/showdeck/favorites"
)

// SetupInBackground wires the periodic jobs but leaves the scheduler
// stopped so the caller can decide whether jobs should run at all.
func SetupInBackground(view *favorites.Refresher) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)

	// Quiet reload keeps long-running clients in sync with writes that
	// happened through another device sharing the same store.
	s.Every(5).Minutes().Do(view.OnForeground)

	slog.Info("Jobs scheduled. Scheduler not running yet.")

	return s
}
