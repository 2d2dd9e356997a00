package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/beaconhq/beacon/pkg/async"
	"github.com/beaconhq/beacon/pkg/telemetry"
)

// minScreenTime is the threshold below which a focus/blur pair emits no
// screen_time event.
const minScreenTime = time.Second

// defaultSettleDelay approximates the transition-animation settle period
// before a screen_view is emitted.
const defaultSettleDelay = 500 * time.Millisecond

// Emitter receives the derived screen events. Satisfied by
// *telemetry.Facade.
type Emitter interface {
	LogScreenView(ctx context.Context, v telemetry.ScreenView)
	LogScreenTime(ctx context.Context, s telemetry.ScreenTime)
	LogNavigation(ctx context.Context, n telemetry.Navigation)
}

// ViewSignal emits screen_view after the settle delay on focus. It keeps
// no state across screens.
type ViewSignal struct {
	emitter Emitter
	settle  time.Duration

	// after schedules delayed work; swapped for a synchronous fake in tests
	after func(d time.Duration, fn func())
}

// NewViewSignal creates a view signal with the default settle delay.
func NewViewSignal(emitter Emitter) *ViewSignal {
	return &ViewSignal{
		emitter: emitter,
		settle:  defaultSettleDelay,
		after:   func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// Focus schedules a screen_view for the newly-focused screen.
func (s *ViewSignal) Focus(ctx context.Context, screenName, screenClass string) {
	s.after(s.settle, func() {
		_ = async.Protect("screen_view emit", func() error {
			s.emitter.LogScreenView(ctx, telemetry.ScreenView{
				ScreenName:  screenName,
				ScreenClass: screenClass,
			})
			return nil
		})
	})
}

// TimeSignal measures focused duration and emits screen_time on blur when
// at least one second elapsed.
type TimeSignal struct {
	emitter Emitter
	now     func() time.Time

	mu          sync.Mutex
	active      bool
	screenName  string
	screenClass string
	startedAt   time.Time
}

// NewTimeSignal creates a time signal.
func NewTimeSignal(emitter Emitter) *TimeSignal {
	return &TimeSignal{emitter: emitter, now: time.Now}
}

// Focus records when the screen became visible.
func (s *TimeSignal) Focus(screenName, screenClass string) {
	s.mu.Lock()
	s.active = true
	s.screenName = screenName
	s.screenClass = screenClass
	s.startedAt = s.now()
	s.mu.Unlock()
}

// Blur computes the elapsed time and emits screen_time if it crossed the
// threshold. Blur without a prior focus is a no-op.
func (s *TimeSignal) Blur(ctx context.Context) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	elapsed := s.now().Sub(s.startedAt)
	name, class := s.screenName, s.screenClass
	s.active = false
	s.mu.Unlock()

	if elapsed < minScreenTime {
		return
	}

	_ = async.Protect("screen_time emit", func() error {
		s.emitter.LogScreenTime(ctx, telemetry.ScreenTime{
			ScreenName:       name,
			ScreenClass:      class,
			TimeSpentSeconds: int64(elapsed.Seconds()),
		})
		return nil
	})
}

// NavSignal emits navigation when focus moves to a different screen. The
// very first focus of the process emits nothing.
type NavSignal struct {
	emitter Emitter

	mu         sync.Mutex
	hasPrev    bool
	prevScreen string
}

// NewNavSignal creates a navigation signal.
func NewNavSignal(emitter Emitter) *NavSignal {
	return &NavSignal{emitter: emitter}
}

// Focus compares the newly-focused screen to the previously recorded one
// and emits navigation when they differ.
func (s *NavSignal) Focus(ctx context.Context, screenName, screenClass string) {
	s.mu.Lock()
	prev, had := s.prevScreen, s.hasPrev
	s.prevScreen = screenName
	s.hasPrev = true
	s.mu.Unlock()

	if !had || prev == screenName {
		return
	}

	_ = async.Protect("navigation emit", func() error {
		s.emitter.LogNavigation(ctx, telemetry.Navigation{
			FromScreen:  prev,
			ToScreen:    screenName,
			ScreenClass: screenClass,
		})
		return nil
	})
}

// ScreenTracker composes the three independent signals around one
// focus/blur source. The signals share no mutable state with each other;
// each keeps its own private cell, and each independently ignores emitter
// failures so telemetry can never affect UI behavior.
type ScreenTracker struct {
	view *ViewSignal
	time *TimeSignal
	nav  *NavSignal
}

// NewScreenTracker wires the three signals to one emitter.
func NewScreenTracker(emitter Emitter) *ScreenTracker {
	return &ScreenTracker{
		view: NewViewSignal(emitter),
		time: NewTimeSignal(emitter),
		nav:  NewNavSignal(emitter),
	}
}

// OnFocus is the hook to call when a screen gains focus.
func (t *ScreenTracker) OnFocus(ctx context.Context, screenName, screenClass string) {
	t.view.Focus(ctx, screenName, screenClass)
	t.time.Focus(screenName, screenClass)
	t.nav.Focus(ctx, screenName, screenClass)
}

// OnBlur is the hook to call when the focused screen loses focus.
func (t *ScreenTracker) OnBlur(ctx context.Context) {
	t.time.Blur(ctx)
}
