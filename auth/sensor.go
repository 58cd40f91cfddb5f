package auth

import (
	"context"
	"errors"
)

// Sensor is the biometric device as the gate sees it. Available should
// only report true when hardware exists and a biometric is enrolled.
type Sensor interface {
	Available() bool
	Authenticate(ctx context.Context) (bool, error)
}

// UnavailableSensor is the deployment default on hosts without a usable
// biometric device; the gate then goes straight to PIN entry.
type UnavailableSensor struct{}

func (UnavailableSensor) Available() bool {
	return false
}

func (UnavailableSensor) Authenticate(ctx context.Context) (bool, error) {
	return false, errors.New("no biometric sensor present")
}
