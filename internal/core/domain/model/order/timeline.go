package order

import (
	"errors"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

// Actors recorded in timeline entries.
const (
	ActorShopper  = "shopper"
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
	ActorSystem   = "system"
)

// ErrTimelineEntryIsNotConstructed is returned when a TimelineEntry was not
// created via NewTimelineEntry.
var ErrTimelineEntryIsNotConstructed = errors.New(
	"TimelineEntry must be created via NewTimelineEntry constructor")

// TimelineEntry is one immutable record in an order's append-only history:
// which status the order entered, when, why, and on whose behalf. The
// timeline is the only record of `status` history; entries are never edited
// or removed, and their timestamps are monotonically non-decreasing.
type TimelineEntry struct {
	status    Status
	timestamp time.Time
	note      string
	actor     string
	guard     guard.ConstructorGuard
}

// NewTimelineEntry creates a validated timeline entry.
// The status must be a defined lifecycle state, the timestamp non-zero, and
// the actor non-empty. The note may be empty.
func NewTimelineEntry(status Status, timestamp time.Time, note, actor string) (TimelineEntry, error) {
	if err := status.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if timestamp.IsZero() {
		return TimelineEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	if actor == "" {
		return TimelineEntry{}, errs.NewValueIsRequiredError("actor")
	}

	return TimelineEntry{
		status:    status,
		timestamp: timestamp.UTC(),
		note:      note,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created via NewTimelineEntry.
func (e TimelineEntry) Validate() error {
	return e.guard.Validate(ErrTimelineEntryIsNotConstructed)
}

// Status returns the status the order entered.
func (e TimelineEntry) Status() Status {
	return e.status
}

// Timestamp returns when the entry was recorded.
func (e TimelineEntry) Timestamp() time.Time {
	return e.timestamp
}

// Note returns the free-text annotation, possibly empty.
func (e TimelineEntry) Note() string {
	return e.note
}

// Actor returns on whose behalf the entry was recorded.
func (e TimelineEntry) Actor() string {
	return e.actor
}
