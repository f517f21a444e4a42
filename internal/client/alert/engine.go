package alert

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

const (
	// newOrderRepeatDelay is when the second audible cue for a fresh offer
	// fires if the shopper has not reacted yet.
	newOrderRepeatDelay = 2 * time.Second
	// revisionRepeatDelay is the same for an approved revision.
	revisionRepeatDelay = 1500 * time.Millisecond
	// promptRepeatDelay is when the blocking prompt is shown a second time.
	promptRepeatDelay = 2 * time.Second
	// bannerTTL bounds how long the persistent banner stays up, and with it
	// the lifetime of an unacknowledged urgent alert.
	bannerTTL = 15 * time.Second
)

type alertKey struct {
	orderID   string
	eventType wire.EventType
}

// PendingAlert tracks one outstanding alert: the latest event payload for
// its (order, event type) key and the follow-up timers still scheduled.
type PendingAlert struct {
	key    alertKey
	event  wire.Event
	timers []Timer
}

// Engine fans events out to ranked channels and escalates the urgent ones.
// A delivery error on any channel is logged and the next channel tried; the
// engine never reports failure to its caller.
type Engine struct {
	notifier Channel
	audio    Channel
	banner   Channel
	prompt   Channel

	scheduler Scheduler
	logger    *slog.Logger

	// constrained marks a device where system notifications are unreliable
	// (denied permission, aggressive battery policies). Urgent alerts go
	// straight to the blocking prompt path there.
	constrained bool

	mu      sync.Mutex
	pending map[alertKey]*PendingAlert
}

// NewEngine creates an escalation engine over the four attention channels.
// Any channel may be nil when the surface does not exist on the device.
func NewEngine(
	notifier, audio, banner, prompt Channel,
	scheduler Scheduler,
	constrained bool,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		notifier:    notifier,
		audio:       audio,
		banner:      banner,
		prompt:      prompt,
		scheduler:   scheduler,
		logger:      logger.With("component", "alert_engine"),
		constrained: constrained,
		pending:     make(map[alertKey]*PendingAlert),
	}
}

// Raise ingests one channel event. A second event for an order that already
// has an outstanding alert of the same type replaces the pending payload
// instead of stacking a duplicate; different event types for the same order
// escalate independently.
func (e *Engine) Raise(ctx context.Context, event wire.Event) {
	key := alertKey{orderID: event.OrderID, eventType: event.Type}

	e.mu.Lock()
	if outstanding, ok := e.pending[key]; ok {
		outstanding.event = event
		e.mu.Unlock()
		return
	}
	outstanding := &PendingAlert{key: key, event: event}
	e.pending[key] = outstanding
	e.mu.Unlock()

	if event.Type.IsUrgent() {
		e.escalateUrgent(ctx, key)
	} else {
		e.deliverRoutine(ctx, key)
	}
}

// Ack acknowledges the alert for the given order and event type: remaining
// follow-ups are cancelled and the alert destroyed. Any channel interaction
// (notification tap, prompt confirm, banner dismiss) funnels here.
func (e *Engine) Ack(orderID string, eventType wire.EventType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := alertKey{orderID: orderID, eventType: eventType}
	outstanding, ok := e.pending[key]
	if !ok {
		return false
	}

	for _, timer := range outstanding.timers {
		timer.Stop()
	}
	delete(e.pending, key)
	return true
}

// Outstanding reports whether an alert for the given order and event type
// is still awaiting acknowledgement.
func (e *Engine) Outstanding(orderID string, eventType wire.EventType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pending[alertKey{orderID: orderID, eventType: eventType}]
	return ok
}

// escalateUrgent runs the aggressive path: immediate audio plus a repeat,
// a sticky system notification, and on constrained or notifier-less devices
// a blocking prompt (repeated once) backed by a persistent banner.
func (e *Engine) escalateUrgent(ctx context.Context, key alertKey) {
	e.deliver(ctx, e.audio, e.snapshot(key, false))
	e.schedule(key, audioRepeatDelay(key.eventType), func(followUpCtx context.Context) {
		e.deliver(followUpCtx, e.audio, e.snapshot(key, false))
	})

	notifyErr := errNoChannel
	if e.notifier != nil {
		notifyErr = e.notifier.Deliver(ctx, e.snapshot(key, true))
		if notifyErr != nil {
			e.logger.WarnContext(ctx, "Alert delivery failed",
				"channel", e.notifier.Name(), "error", notifyErr)
		}
	}

	if notifyErr != nil || e.constrained {
		e.deliver(ctx, e.prompt, e.snapshot(key, false))
		e.schedule(key, promptRepeatDelay, func(followUpCtx context.Context) {
			e.deliver(followUpCtx, e.prompt, e.snapshot(key, false))
		})

		banner := e.snapshot(key, false)
		banner.TTL = bannerTTL
		e.deliver(ctx, e.banner, banner)
	}

	// Unacknowledged urgent alerts expire with the banner.
	e.schedule(key, bannerTTL, func(context.Context) {
		e.expire(key)
	})
}

// deliverRoutine runs the low-urgency path: one audible cue plus one
// notification, falling back to a single prompt when the notifier cannot
// deliver. No repeats, and the alert only lingers for deduplication until
// acknowledged or replaced.
func (e *Engine) deliverRoutine(ctx context.Context, key alertKey) {
	e.deliver(ctx, e.audio, e.snapshot(key, false))

	notifyErr := errNoChannel
	if e.notifier != nil {
		notifyErr = e.notifier.Deliver(ctx, e.snapshot(key, false))
		if notifyErr != nil {
			e.logger.WarnContext(ctx, "Alert delivery failed",
				"channel", e.notifier.Name(), "error", notifyErr)
		}
	}
	if notifyErr != nil {
		e.deliver(ctx, e.prompt, e.snapshot(key, false))
	}

	e.expire(key)
}

// deliver pushes an alert through one channel, absorbing failures.
func (e *Engine) deliver(ctx context.Context, channel Channel, alert Alert) {
	if channel == nil {
		return
	}
	if err := channel.Deliver(ctx, alert); err != nil {
		e.logger.WarnContext(ctx, "Alert delivery failed",
			"channel", channel.Name(), "error", err)
	}
}

// schedule plants a follow-up that only runs while the alert is still
// outstanding. The liveness check happens under the engine lock so an Ack
// racing the timer wins cleanly.
func (e *Engine) schedule(key alertKey, delay time.Duration, followUp func(context.Context)) {
	e.mu.Lock()
	outstanding, ok := e.pending[key]
	if !ok {
		e.mu.Unlock()
		return
	}

	timer := e.scheduler.AfterFunc(delay, func() {
		e.mu.Lock()
		_, alive := e.pending[key]
		e.mu.Unlock()
		if !alive {
			return
		}
		followUp(context.Background())
	})
	outstanding.timers = append(outstanding.timers, timer)
	e.mu.Unlock()
}

// snapshot builds the Alert for the latest pending payload of the key.
func (e *Engine) snapshot(key alertKey, requireInteraction bool) Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	event := wire.Event{Type: key.eventType, OrderID: key.orderID}
	if outstanding, ok := e.pending[key]; ok {
		event = outstanding.event
	}

	return Alert{
		Event:              event,
		Title:              titleFor(event.Type),
		Body:               bodyFor(event),
		RequireInteraction: requireInteraction,
	}
}

func (e *Engine) expire(key alertKey) {
	e.mu.Lock()
	defer e.mu.Unlock()

	outstanding, ok := e.pending[key]
	if !ok {
		return
	}
	for _, timer := range outstanding.timers {
		timer.Stop()
	}
	delete(e.pending, key)
}

func audioRepeatDelay(eventType wire.EventType) time.Duration {
	if eventType == wire.EventRevisionApproved {
		return revisionRepeatDelay
	}
	return newOrderRepeatDelay
}
