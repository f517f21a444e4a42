// Package alert implements the shopper device's notification escalation
// engine. Every channel event becomes an alert delivered through ranked
// channels; urgent events repeat audibly and fall back to blocking prompts
// and persistent banners until the shopper acknowledges them.
package alert

import (
	"context"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// Alert is one notification as a channel receives it.
type Alert struct {
	Event wire.Event
	Title string
	Body  string

	// RequireInteraction asks the system notifier to keep the notification
	// on screen until the shopper dismisses it.
	RequireInteraction bool

	// TTL bounds how long a persistent surface (the banner) may stay up.
	// Zero means the channel's default.
	TTL time.Duration
}

// Channel is one way of getting the shopper's attention. Delivery errors
// are absorbed by the engine: it logs them and falls through to the next
// ranked channel, never failing the event.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, alert Alert) error
}

// Scheduler plants cancellable timers for escalation follow-ups. The real
// implementation wraps time.AfterFunc; tests substitute a manual one to
// control when follow-ups fire.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending follow-up.
type Timer interface {
	Stop() bool
}

type systemScheduler struct{}

// NewSystemScheduler returns a Scheduler backed by time.AfterFunc.
func NewSystemScheduler() Scheduler {
	return systemScheduler{}
}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
