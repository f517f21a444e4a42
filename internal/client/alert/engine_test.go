package alert

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.stopped = true
	return true
}

// manualScheduler collects timers and fires them on demand so tests control
// escalation time.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &manualTimer{delay: d, fn: f}
	s.timers = append(s.timers, timer)
	return timer
}

// fire runs every live timer scheduled at exactly the given delay.
func (s *manualScheduler) fire(d time.Duration) {
	s.mu.Lock()
	var due []*manualTimer
	for _, timer := range s.timers {
		if timer.delay == d && !timer.stopped {
			timer.stopped = true
			due = append(due, timer)
		}
	}
	s.mu.Unlock()

	for _, timer := range due {
		timer.fn()
	}
}

type recordingChannel struct {
	mu        sync.Mutex
	name      string
	err       error
	delivered []Alert
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Deliver(_ context.Context, alert Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.delivered = append(c.delivered, alert)
	return nil
}

func (c *recordingChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.delivered)
}

func (c *recordingChannel) last() Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delivered[len(c.delivered)-1]
}

type engineFixture struct {
	engine    *Engine
	scheduler *manualScheduler
	notifier  *recordingChannel
	audio     *recordingChannel
	banner    *recordingChannel
	prompt    *recordingChannel
}

func newEngineFixture(constrained bool) *engineFixture {
	fixture := &engineFixture{
		scheduler: &manualScheduler{},
		notifier:  &recordingChannel{name: "notifier"},
		audio:     &recordingChannel{name: "audio"},
		banner:    &recordingChannel{name: "banner"},
		prompt:    &recordingChannel{name: "prompt"},
	}
	fixture.engine = NewEngine(
		fixture.notifier, fixture.audio, fixture.banner, fixture.prompt,
		fixture.scheduler, constrained, slog.New(slog.DiscardHandler))
	return fixture
}

func urgentEvent(t *testing.T, orderNumber string) wire.Event {
	t.Helper()
	event, err := wire.NewEvent(wire.EventNewOrder, "order-1", time.Now(), map[string]any{
		"orderNumber": orderNumber,
	})
	require.NoError(t, err)
	return event
}

func TestUrgentEventRepeatsAudio(t *testing.T) {
	fixture := newEngineFixture(false)

	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000123"))

	assert.Equal(t, 1, fixture.audio.count())
	require.Equal(t, 1, fixture.notifier.count())
	assert.True(t, fixture.notifier.last().RequireInteraction)
	assert.Equal(t, 0, fixture.prompt.count())
	assert.Equal(t, 0, fixture.banner.count())

	fixture.scheduler.fire(2 * time.Second)
	assert.Equal(t, 2, fixture.audio.count())
}

func TestRevisionApprovedRepeatsAudioSooner(t *testing.T) {
	fixture := newEngineFixture(false)
	event, err := wire.NewEvent(wire.EventRevisionApproved, "order-1", time.Now(), nil)
	require.NoError(t, err)

	fixture.engine.Raise(context.Background(), event)
	fixture.scheduler.fire(1500 * time.Millisecond)

	assert.Equal(t, 2, fixture.audio.count())
}

func TestUrgentFallsBackToPromptAndBanner(t *testing.T) {
	fixture := newEngineFixture(false)
	fixture.notifier.err = errors.New("notifications denied")

	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000123"))

	assert.Equal(t, 1, fixture.prompt.count())
	require.Equal(t, 1, fixture.banner.count())
	assert.Equal(t, 15*time.Second, fixture.banner.last().TTL)

	fixture.scheduler.fire(2 * time.Second)
	assert.Equal(t, 2, fixture.prompt.count())
}

func TestConstrainedDevicePromptsEvenWhenNotifierWorks(t *testing.T) {
	fixture := newEngineFixture(true)

	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000123"))

	assert.Equal(t, 1, fixture.notifier.count())
	assert.Equal(t, 1, fixture.prompt.count())
	assert.Equal(t, 1, fixture.banner.count())
}

func TestAckCancelsFollowUps(t *testing.T) {
	fixture := newEngineFixture(false)

	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000123"))
	assert.True(t, fixture.engine.Ack("order-1", wire.EventNewOrder))

	fixture.scheduler.fire(2 * time.Second)
	assert.Equal(t, 1, fixture.audio.count())
	assert.False(t, fixture.engine.Outstanding("order-1", wire.EventNewOrder))
}

func TestAckUnknownAlertReturnsFalse(t *testing.T) {
	fixture := newEngineFixture(false)

	assert.False(t, fixture.engine.Ack("order-1", wire.EventNewOrder))
}

func TestSecondEventReplacesPendingPayload(t *testing.T) {
	fixture := newEngineFixture(false)

	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000123"))
	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000456"))

	// No duplicate escalation for the replacement.
	assert.Equal(t, 1, fixture.audio.count())
	assert.Equal(t, 1, fixture.notifier.count())

	// The follow-up carries the replaced payload.
	fixture.scheduler.fire(2 * time.Second)
	require.Equal(t, 2, fixture.audio.count())
	assert.Contains(t, fixture.audio.last().Body, "DW-2024-000456")
}

func TestDifferentEventTypesEscalateIndependently(t *testing.T) {
	fixture := newEngineFixture(false)

	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000123"))

	cancelled, err := wire.NewEvent(wire.EventOrderCancelled, "order-1", time.Now(), nil)
	require.NoError(t, err)
	fixture.engine.Raise(context.Background(), cancelled)

	assert.Equal(t, 2, fixture.audio.count())
	assert.True(t, fixture.engine.Outstanding("order-1", wire.EventNewOrder))
}

func TestRoutineEventDeliversOnce(t *testing.T) {
	fixture := newEngineFixture(false)
	event, err := wire.NewEvent(wire.EventStatusUpdate, "order-1", time.Now(), nil)
	require.NoError(t, err)

	fixture.engine.Raise(context.Background(), event)

	assert.Equal(t, 1, fixture.audio.count())
	require.Equal(t, 1, fixture.notifier.count())
	assert.False(t, fixture.notifier.last().RequireInteraction)
	assert.Equal(t, 0, fixture.prompt.count())
	assert.False(t, fixture.engine.Outstanding("order-1", wire.EventStatusUpdate))
}

func TestRoutineEventFallsBackToSinglePrompt(t *testing.T) {
	fixture := newEngineFixture(false)
	fixture.notifier.err = errors.New("notifications denied")
	event, err := wire.NewEvent(wire.EventOrderUpdate, "order-1", time.Now(), nil)
	require.NoError(t, err)

	fixture.engine.Raise(context.Background(), event)

	assert.Equal(t, 1, fixture.prompt.count())
	fixture.scheduler.fire(2 * time.Second)
	assert.Equal(t, 1, fixture.prompt.count())
}

func TestUnacknowledgedUrgentAlertExpires(t *testing.T) {
	fixture := newEngineFixture(false)

	fixture.engine.Raise(context.Background(), urgentEvent(t, "DW-2024-000123"))
	require.True(t, fixture.engine.Outstanding("order-1", wire.EventNewOrder))

	fixture.scheduler.fire(15 * time.Second)
	assert.False(t, fixture.engine.Outstanding("order-1", wire.EventNewOrder))
}
