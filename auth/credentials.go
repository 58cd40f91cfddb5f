package auth

import (
	"log/slog"
	"strconv"

	"github.com/showdeck/showdeck/db"
)

const (
	pinKey       = "user_pin"
	biometricKey = "use_biometric"
)

// Credentials wraps the secure store behind the two keys the lock screen
// needs. Reads fail soft, writes surface their errors.
type Credentials struct {
	store db.Store
}

func NewCredentials(store db.Store) *Credentials {
	return &Credentials{store: store}
}

// Pin returns the stored PIN, or the empty string when there is none or
// the store read failed.
func (c *Credentials) Pin() string {
	pin, err := c.store.GetValue(pinKey)
	if err != nil {
		slog.Error("Failed to read stored PIN", slog.String("error", err.Error()))
		return ""
	}
	return pin
}

func (c *Credentials) SavePin(pin string) error {
	return c.store.SetValue(pinKey, pin)
}

func (c *Credentials) DeletePin() error {
	return c.store.DeleteValue(pinKey)
}

func (c *Credentials) BiometricEnabled() bool {
	value, err := c.store.GetValue(biometricKey)
	if err != nil {
		return false
	}
	return value == "true"
}

func (c *Credentials) SaveBiometricPreference(enabled bool) error {
	return c.store.SetValue(biometricKey, strconv.FormatBool(enabled))
}
