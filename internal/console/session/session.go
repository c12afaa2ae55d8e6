// Package session holds the process-wide console session: the vehicle the
// live view currently tracks and the pending id the next action will target.
// It is created at startup, mutated on select/toggle, and lives for the
// process; there is no explicit teardown.
package session

import "sync"

// Session is the single mutable state shared by the live view, the refresh
// scheduler and the action handlers. User commands and scheduler ticks may
// interleave, so access is serialized here.
type Session struct {
	mu sync.Mutex

	currentVehicleID string
	pendingVehicleID string
	apiReachable     bool
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// CurrentVehicleID returns the id the live view currently tracks, or "".
func (s *Session) CurrentVehicleID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentVehicleID
}

// SetCurrentVehicleID points the live view (and any in-flight poll) at id.
func (s *Session) SetCurrentVehicleID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentVehicleID = id
}

// PendingVehicleID returns the id the next direct action will target, or "".
func (s *Session) PendingVehicleID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingVehicleID
}

// SetPendingVehicleID fills the pending-action field without any network call.
func (s *Session) SetPendingVehicleID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingVehicleID = id
}

// APIReachable reports the last known health-check outcome.
func (s *Session) APIReachable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiReachable
}

// SetAPIReachable records a health-check outcome for the connectivity
// indicator.
func (s *Session) SetAPIReachable(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiReachable = ok
}
