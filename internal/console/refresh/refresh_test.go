package refresh_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DVA506/SmartMove/internal/console/client"
	"github.com/DVA506/SmartMove/internal/console/model"
	"github.com/DVA506/SmartMove/internal/console/notify"
	"github.com/DVA506/SmartMove/internal/console/recent"
	"github.com/DVA506/SmartMove/internal/console/refresh"
	"github.com/DVA506/SmartMove/internal/console/session"
	"github.com/DVA506/SmartMove/internal/console/view"
	"github.com/DVA506/SmartMove/internal/fleettest"
	"github.com/DVA506/SmartMove/pkg/options"
)

type fixture struct {
	server    *fleettest.Server
	session   *session.Session
	sink      *notify.Sink
	scheduler *refresh.Scheduler
}

func newFixture(t *testing.T, period time.Duration) *fixture {
	t.Helper()

	srv := fleettest.New()
	t.Cleanup(srv.Close)

	store, err := recent.NewStore(&options.CacheOptions{Dir: t.TempDir(), Capacity: 10})
	require.NoError(t, err)

	sess := session.New()
	sink := notify.NewSink(notify.WithDelays(time.Hour, 2*time.Hour))
	v := view.New(sess, client.New(&options.ApiOptions{BaseURL: srv.URL}), store, sink)

	scheduler := refresh.New(v, sink, &options.RefreshOptions{Period: period})
	t.Cleanup(scheduler.Stop)

	return &fixture{server: srv, session: sess, sink: sink, scheduler: scheduler}
}

func TestToggleOnThenOffBeforeTickFiresNothing(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond)
	f.session.SetCurrentVehicleID("v1")

	ctx := context.Background()
	assert.True(t, f.scheduler.Toggle(ctx))
	assert.False(t, f.scheduler.Toggle(ctx))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, f.server.Requests("/vehicle"), "cancellation must be total, queued ticks included")
}

func TestToggleEmitsNeutralNotifications(t *testing.T) {
	f := newFixture(t, time.Hour)

	ctx := context.Background()
	f.scheduler.Toggle(ctx)
	f.scheduler.Toggle(ctx)

	active := f.sink.Active()
	require.Len(t, active, 2)
	assert.Equal(t, notify.SeverityNeutral, active[0].Severity)
	assert.Contains(t, active[0].Message, "Enabled")
	assert.Contains(t, active[0].Message, "1h")
	assert.Equal(t, notify.SeverityNeutral, active[1].Severity)
	assert.Contains(t, active[1].Message, "Disabled")
}

func TestHintTracksState(t *testing.T) {
	f := newFixture(t, 1500*time.Millisecond)

	assert.Equal(t, "Auto-refresh: OFF", f.scheduler.Hint())
	assert.False(t, f.scheduler.Active())

	f.scheduler.Toggle(context.Background())
	assert.Equal(t, "Auto-refresh: ON (1.5s)", f.scheduler.Hint())
	assert.True(t, f.scheduler.Active())

	f.scheduler.Toggle(context.Background())
	assert.Equal(t, "Auto-refresh: OFF", f.scheduler.Hint())
}

func TestTickWithoutSelectionIsSilentNoOp(t *testing.T) {
	f := newFixture(t, 15*time.Millisecond)

	f.scheduler.Toggle(context.Background())
	time.Sleep(120 * time.Millisecond)

	assert.Zero(t, f.server.Requests("/vehicle"))
	// Only the enable notification, nothing per tick.
	assert.Len(t, f.sink.Active(), 1)
}

func TestTicksRefreshSelectedVehicle(t *testing.T) {
	f := newFixture(t, 15*time.Millisecond)
	f.server.AddVehicle(model.VehicleSnapshot{ID: "v1", State: model.StateAvailable})
	f.session.SetCurrentVehicleID("v1")

	f.scheduler.Toggle(context.Background())

	require.Eventually(t, func() bool {
		return f.server.Requests("/vehicle") >= 2
	}, 2*time.Second, 5*time.Millisecond)

	f.scheduler.Toggle(context.Background())
	settled := f.server.Requests("/vehicle")
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, settled, f.server.Requests("/vehicle"), "no ticks after disable")
}

func TestTickFailuresNeverEscape(t *testing.T) {
	f := newFixture(t, 15*time.Millisecond)
	f.session.SetCurrentVehicleID("ghost")

	f.scheduler.Toggle(context.Background())

	// Every tick 404s; the scheduler must keep ticking and stay toggleable.
	require.Eventually(t, func() bool {
		return f.server.Requests("/vehicle") >= 3
	}, 2*time.Second, 5*time.Millisecond)

	assert.True(t, f.scheduler.Active())
	f.scheduler.Toggle(context.Background())
	assert.False(t, f.scheduler.Active())
}

func TestStopIsIdempotent(t *testing.T) {
	f := newFixture(t, time.Hour)

	f.scheduler.Stop()
	f.scheduler.Toggle(context.Background())
	f.scheduler.Stop()
	f.scheduler.Stop()

	assert.False(t, f.scheduler.Active())
}
