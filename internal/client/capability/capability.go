// Package capability describes device features the client borrows from its
// host: location, speech output and the payment widget. Each comes with an
// Unsupported implementation so callers can degrade instead of failing.
package capability

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/medmate/internal/client/client"
)

var ErrNotSupported = errors.New("not supported on this device")

// ErrCheckoutCancelled is returned when the user closes the payment widget.
var ErrCheckoutCancelled = errors.New("payment cancelled")

// Position is a point on the map in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Checkout takes a payment for an order and returns the triple the backend
// verifies. It never credits anything itself.
type Checkout interface {
	Pay(ctx context.Context, order client.PaymentOrder) (client.PaymentVerification, error)
}

type UnsupportedLocator struct{}

func (UnsupportedLocator) CurrentPosition(context.Context) (Position, error) {
	return Position{}, ErrNotSupported
}

type UnsupportedSpeaker struct{}

func (UnsupportedSpeaker) Speak(context.Context, string) error {
	return ErrNotSupported
}

type UnsupportedCheckout struct{}

func (UnsupportedCheckout) Pay(context.Context, client.PaymentOrder) (client.PaymentVerification, error) {
	return client.PaymentVerification{}, ErrNotSupported
}
