package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DVA506/SmartMove/internal/console/session"
)

func TestSessionStartsEmpty(t *testing.T) {
	s := session.New()

	assert.Empty(t, s.CurrentVehicleID())
	assert.Empty(t, s.PendingVehicleID())
	assert.False(t, s.APIReachable())
}

func TestCurrentAndPendingAreIndependent(t *testing.T) {
	s := session.New()

	s.SetPendingVehicleID("v1")
	assert.Empty(t, s.CurrentVehicleID(), "selecting must not trigger tracking")

	s.SetCurrentVehicleID("v2")
	assert.Equal(t, "v1", s.PendingVehicleID())
	assert.Equal(t, "v2", s.CurrentVehicleID())
}

func TestConcurrentMutation(t *testing.T) {
	s := session.New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetCurrentVehicleID("v1")
			_ = s.CurrentVehicleID()
		}()
		go func() {
			defer wg.Done()
			s.SetAPIReachable(true)
			_ = s.APIReachable()
		}()
	}
	wg.Wait()

	assert.Equal(t, "v1", s.CurrentVehicleID())
	assert.True(t, s.APIReachable())
}
