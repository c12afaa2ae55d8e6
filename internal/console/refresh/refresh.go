// Package refresh is the toggleable periodic poller bound to the live vehicle
// view. Start and stop are idempotent via a two-state machine, and disabling
// guarantees no further ticks fire, even one already queued.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/robfig/cron/v3"

	"github.com/DVA506/SmartMove/internal/console/notify"
	"github.com/DVA506/SmartMove/internal/console/view"
	"github.com/DVA506/SmartMove/pkg/log"
	"github.com/DVA506/SmartMove/pkg/options"
)

const (
	StateOff = "off"
	StateOn  = "on"

	eventEnable  = "enable"
	eventDisable = "disable"
)

// fixedDelay activates at an exact interval. The stock @every descriptor
// truncates delays to whole seconds and so cannot express the 1.5s period.
type fixedDelay struct {
	period time.Duration
}

func (d fixedDelay) Next(t time.Time) time.Time { return t.Add(d.period) }

// Scheduler drives the view's fetch path on a fixed period while enabled.
type Scheduler struct {
	view   *view.View
	sink   *notify.Sink
	period time.Duration
	log    log.Logger

	mu      sync.Mutex
	machine *fsm.FSM
	runner  *cron.Cron
	cancel  context.CancelFunc
}

// New creates a Scheduler in the OFF state.
func New(v *view.View, sink *notify.Sink, opts *options.RefreshOptions) *Scheduler {
	return &Scheduler{
		view:   v,
		sink:   sink,
		period: opts.Period,
		log:    log.WithName("refresh"),
		machine: fsm.NewFSM(
			StateOff,
			fsm.Events{
				{Name: eventEnable, Src: []string{StateOff}, Dst: StateOn},
				{Name: eventDisable, Src: []string{StateOn}, Dst: StateOff},
			},
			fsm.Callbacks{},
		),
	}
}

// Toggle flips the scheduler between OFF and ON and reports the new state.
// Enabling starts the periodic runner; disabling cancels it immediately and
// totally. Both directions emit a neutral notification.
func (s *Scheduler) Toggle(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Is(StateOn) {
		s.stopLocked()
		if err := s.machine.Event(ctx, eventDisable); err != nil {
			s.log.Warn("state machine rejected disable", "err", err)
		}
		s.sink.Notify(notify.SeverityNeutral, "Auto-refresh", "Disabled.")
		return false
	}

	tickCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	runner := cron.New(cron.WithLogger(s.log.Logr()))
	runner.Schedule(fixedDelay{period: s.period}, cron.FuncJob(func() { s.tick(tickCtx) }))
	runner.Start()
	s.runner = runner

	if err := s.machine.Event(ctx, eventEnable); err != nil {
		s.log.Warn("state machine rejected enable", "err", err)
	}
	s.sink.Notify(notify.SeverityNeutral, "Auto-refresh", fmt.Sprintf("Enabled (%s).", s.period))
	return true
}

// Stop turns the scheduler off if it is running. Safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.machine.Is(StateOn) {
		return
	}
	s.stopLocked()
	if err := s.machine.Event(context.Background(), eventDisable); err != nil {
		s.log.Warn("state machine rejected disable", "err", err)
	}
}

func (s *Scheduler) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.runner != nil {
		s.runner.Stop()
		s.runner = nil
	}
}

// Active reports whether auto-refresh is currently ON.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Is(StateOn)
}

// Hint is the displayed auto-refresh label.
func (s *Scheduler) Hint() string {
	if s.Active() {
		return fmt.Sprintf("Auto-refresh: ON (%s)", s.period)
	}
	return "Auto-refresh: OFF"
}

// tick re-invokes the view's fetch path for the tracked vehicle. A tick with
// no selected vehicle is a silent no-op inside RefreshCurrent. The result is
// consumed here: failures were already surfaced as a notification by the
// view and must never escape the timer callback.
func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.view.RefreshCurrent(ctx); err != nil {
		s.log.Debug("auto-refresh fetch failed", "err", err)
	}
}
