// Package notify is a transient, self-expiring queue of user-facing messages,
// decoupled from any specific UI action. Notifications fade after a fixed
// delay and are removed shortly after; nothing is ever persisted.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DVA506/SmartMove/internal/pkg/metrics"
)

// Severity classifies a notification for the operator.
type Severity string

const (
	SeverityNeutral  Severity = "neutral"
	SeverityPositive Severity = "positive"
	SeverityNegative Severity = "negative"
)

// Notification is one user-facing message. Faded is a purely visual
// transition with no behavioral consequence.
type Notification struct {
	ID       string
	Severity Severity
	Title    string
	Message  string
	Faded    bool
}

// Listener receives queue transitions. The console binary plugs in a terminal
// printer; tests plug in a recorder. Callbacks run on timer goroutines and
// must not block.
type Listener interface {
	Published(n Notification)
	FadedOut(id string)
	Removed(id string)
}

const (
	defaultFadeAfter   = 3200 * time.Millisecond
	defaultRemoveAfter = 3600 * time.Millisecond
)

// Sink owns the visible queue. Notify is fire-and-forget and always succeeds;
// rapid repeated failures stack one notification each, in insertion order.
type Sink struct {
	mu       sync.Mutex
	queue    []*Notification
	listener Listener

	fadeAfter   time.Duration
	removeAfter time.Duration
}

// Option tweaks Sink construction.
type Option func(*Sink)

// WithListener attaches a queue-transition listener.
func WithListener(l Listener) Option {
	return func(s *Sink) { s.listener = l }
}

// WithDelays overrides the fade/remove delays. Tests use short intervals.
func WithDelays(fade, remove time.Duration) Option {
	return func(s *Sink) {
		s.fadeAfter = fade
		s.removeAfter = remove
	}
}

// NewSink creates a Sink with the standard fade (3.2s) and removal (3.6s)
// delays.
func NewSink(opts ...Option) *Sink {
	s := &Sink{
		fadeAfter:   defaultFadeAfter,
		removeAfter: defaultRemoveAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify appends one notification to the visible queue and schedules its fade
// and removal. There is no deduplication and no cap on concurrent count.
func (s *Sink) Notify(severity Severity, title, message string) {
	n := &Notification{
		ID:       uuid.NewString(),
		Severity: severity,
		Title:    title,
		Message:  message,
	}

	metrics.NotificationsTotal.WithLabelValues(string(severity)).Inc()

	s.mu.Lock()
	s.queue = append(s.queue, n)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.Published(*n)
	}

	time.AfterFunc(s.fadeAfter, func() { s.fade(n.ID) })
	time.AfterFunc(s.removeAfter, func() { s.remove(n.ID) })
}

// Active returns a copy of the visible queue in insertion order.
func (s *Sink) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, 0, len(s.queue))
	for _, n := range s.queue {
		out = append(out, *n)
	}
	return out
}

func (s *Sink) fade(id string) {
	s.mu.Lock()
	var listener Listener
	for _, n := range s.queue {
		if n.ID == id {
			n.Faded = true
			listener = s.listener
			break
		}
	}
	s.mu.Unlock()

	if listener != nil {
		listener.FadedOut(id)
	}
}

func (s *Sink) remove(id string) {
	s.mu.Lock()
	var listener Listener
	for i, n := range s.queue {
		if n.ID == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			listener = s.listener
			break
		}
	}
	s.mu.Unlock()

	if listener != nil {
		listener.Removed(id)
	}
}
