package shared

import (
	"fmt"
	"strings"
	"time"
)

// FormatYear pulls the premiere year out of an ISO date string.
func FormatYear(premiered string) string {
	if premiered == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", premiered)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d", t.Year())
}

// FormatRating renders an average rating to one decimal place.
func FormatRating(average float64) string {
	if average == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", average)
}

// FormatGenres joins the first maxCount genres for display. Order matters,
// the catalog lists genres by relevance.
func FormatGenres(genres []string, maxCount int) string {
	if len(genres) == 0 || maxCount <= 0 {
		return ""
	}
	if len(genres) > maxCount {
		genres = genres[:maxCount]
	}
	return strings.Join(genres, " • ")
}

// StatusColor maps a series status to a display hint.
func StatusColor(status string) string {
	switch status {
	case StatusEnded:
		return "error"
	case StatusRunning:
		return "success"
	default:
		return "default"
	}
}

// FormatAge renders a person's age, or their lifespan if they have died.
func FormatAge(birthday, deathday string) string {
	if birthday == "" {
		return ""
	}
	born, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return ""
	}
	end := time.Now()
	if deathday != "" {
		died, err := time.Parse("2006-01-02", deathday)
		if err != nil {
			return ""
		}
		end = died
	}
	age := end.Year() - born.Year()
	if end.Month() < born.Month() || (end.Month() == born.Month() && end.Day() < born.Day()) {
		age--
	}
	if deathday != "" {
		return fmt.Sprintf("%d (%d-%d)", age, born.Year(), end.Year())
	}
	return fmt.Sprintf("%d years old", age)
}

// Truncate trims text to maxLength runes, appending an ellipsis.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return ""
	}
	return strings.TrimSpace(string(runes[:maxLength-3])) + "..."
}
