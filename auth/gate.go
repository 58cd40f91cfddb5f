package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gregdel/pushover"
	"github.com/r3labs/sse/v2"

	"github.com/showdeck/showdeck/config"
	"github.com/showdeck/showdeck/events"
)

type State string

const (
	StatePinEntry        State = "pin_entry"
	StateBiometricPrompt State = "biometric_prompt"
	StateAuthenticated   State = "authenticated"
)

const failedAttemptAlertThreshold = 3

// Snapshot is what presentation clients see of the gate.
type Snapshot struct {
	State              State  `json:"state"`
	Error              string `json:"error,omitempty"`
	Loading            bool   `json:"loading"`
	BiometricAvailable bool   `json:"biometric_available"`
	BiometricEnabled   bool   `json:"biometric_enabled"`
}

// Gate owns the lock screen state. Authenticated is terminal: there is no
// logout transition.
type Gate struct {
	mu     sync.Mutex
	creds  *Credentials
	sensor Sensor

	state              State
	pinInput           string
	errMsg             string
	loading            bool
	biometricAvailable bool
	biometricEnabled   bool
	failedAttempts     int

	alerts         *pushover.Pushover
	alertRecipient *pushover.Recipient
}

func NewGate(creds *Credentials, sensor Sensor, cfg config.PushoverConfig) *Gate {
	g := &Gate{
		creds:  creds,
		sensor: sensor,
		state:  StatePinEntry,
	}
	if cfg.Token != "" && cfg.Recipient != "" {
		g.alerts = pushover.New(cfg.Token)
		g.alertRecipient = pushover.NewRecipient(cfg.Recipient)
	}
	return g
}

// Start checks whether a biometric prompt should front the PIN screen and,
// if so, kicks the sensor off immediately.
func (g *Gate) Start(ctx context.Context) {
	g.mu.Lock()
	g.biometricAvailable = g.sensor.Available()
	g.biometricEnabled = g.creds.BiometricEnabled()
	prompt := g.biometricAvailable && g.biometricEnabled && g.creds.Pin() != ""
	if prompt {
		g.state = StateBiometricPrompt
	}
	g.mu.Unlock()
	g.publish()

	if prompt {
		g.AuthenticateWithBiometrics(ctx)
	}
}

// SetPinInput tracks the PIN field. Editing always clears a lingering
// error so it cannot outlive the input it described.
func (g *Gate) SetPinInput(text string) {
	g.mu.Lock()
	g.pinInput = text
	g.errMsg = ""
	g.mu.Unlock()
	g.publish()
}

// SubmitPin validates the candidate against the stored PIN. With no PIN on
// record the submission doubles as first-time setup.
func (g *Gate) SubmitPin(ctx context.Context, candidate string) {
	g.mu.Lock()
	if len(candidate) < 4 {
		g.errMsg = "PIN must be at least 4 digits"
		g.mu.Unlock()
		g.publish()
		return
	}

	g.loading = true
	g.errMsg = ""

	alert := false
	stored := g.creds.Pin()
	switch {
	case stored == "":
		if err := g.creds.SavePin(candidate); err != nil {
			g.errMsg = "Authentication failed. Please try again."
		} else {
			g.state = StateAuthenticated
		}
	case stored == candidate:
		g.state = StateAuthenticated
	default:
		g.errMsg = "Incorrect PIN. Please try again."
		g.pinInput = ""
		g.failedAttempts++
		alert = g.failedAttempts >= failedAttemptAlertThreshold
	}
	g.loading = false
	attempts := g.failedAttempts
	g.mu.Unlock()
	g.publish()

	if alert {
		g.sendFailedAttemptAlert(attempts)
	}
}

// AuthenticateWithBiometrics asks the sensor once. Any failure falls back
// to PIN entry with a biometric-specific message.
func (g *Gate) AuthenticateWithBiometrics(ctx context.Context) {
	g.mu.Lock()
	g.loading = true
	g.mu.Unlock()
	g.publish()

	success, err := g.sensor.Authenticate(ctx)

	g.mu.Lock()
	g.loading = false
	switch {
	case err != nil:
		g.state = StatePinEntry
		g.errMsg = "Biometric authentication error. Please enter your PIN."
	case success:
		g.state = StateAuthenticated
	default:
		g.state = StatePinEntry
		g.errMsg = "Biometric authentication failed. Please enter your PIN."
	}
	g.mu.Unlock()
	g.publish()
}

// ToggleBiometric persists the flipped preference. The in-memory value
// follows the store write outcome rather than flipping optimistically.
func (g *Gate) ToggleBiometric() {
	g.mu.Lock()
	next := !g.biometricEnabled
	if err := g.creds.SaveBiometricPreference(next); err != nil {
		g.errMsg = "Failed to update biometric preference"
	} else {
		g.biometricEnabled = next
	}
	g.mu.Unlock()
	g.publish()
}

// SkipBiometric dismisses the prompt in favour of PIN entry.
func (g *Gate) SkipBiometric() {
	g.mu.Lock()
	if g.state == StateBiometricPrompt {
		g.state = StatePinEntry
	}
	g.mu.Unlock()
	g.publish()
}

func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		State:              g.state,
		Error:              g.errMsg,
		Loading:            g.loading,
		BiometricAvailable: g.biometricAvailable,
		BiometricEnabled:   g.biometricEnabled,
	}
}

// PinInput exposes the current field contents for the lock screen.
func (g *Gate) PinInput() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pinInput
}

func (g *Gate) publish() {
	if events.Server == nil {
		return
	}
	jsonState, _ := json.Marshal(g.Snapshot())
	events.Server.Publish("auth", &sse.Event{Data: jsonState})
}

func (g *Gate) sendFailedAttemptAlert(attempts int) {
	if g.alerts == nil {
		return
	}
	message := &pushover.Message{
		Message:    fmt.Sprintf("%d failed PIN attempts on the lock screen", attempts),
		Title:      "Showdeck lock screen",
		Priority:   pushover.PriorityHigh,
		Timestamp:  time.Now().Unix(),
		DeviceName: "Showdeck",
	}
	if _, err := g.alerts.SendMessage(message, g.alertRecipient); err != nil {
		slog.Error("Failed to send lock screen alert", slog.String("error", err.Error()))
	}
}
