// Package view owns the currently selected vehicle and its rendered snapshot.
// A fetch replaces the snapshot wholesale; a failed fetch replaces it with an
// explicit absent value, never leaving stale state on display silently.
package view

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/gosuri/uitable"

	"github.com/DVA506/SmartMove/internal/console/client"
	"github.com/DVA506/SmartMove/internal/console/model"
	"github.com/DVA506/SmartMove/internal/console/notify"
	"github.com/DVA506/SmartMove/internal/console/recent"
	"github.com/DVA506/SmartMove/internal/console/session"
	"github.com/DVA506/SmartMove/pkg/log"
)

// ErrMissingVehicleID is returned by SelectAndFetch before any network call
// when no id was given. The session is left untouched.
var ErrMissingVehicleID = errors.New("missing vehicle id")

// Placeholder is rendered for every absent field.
const Placeholder = "—"

// Classify maps a vehicle state to its visual severity. It is total: every
// input maps to exactly one severity, and unknown states are treated as
// attention-worthy rather than neutral.
func Classify(state model.VehicleState) model.Severity {
	switch state {
	case "":
		return model.SeverityNone
	case model.StateAvailable:
		return model.SeverityGood
	case model.StateInUse, model.StateReserved:
		return model.SeverityWarn
	case model.StateEmergencyLock:
		return model.SeverityBad
	default:
		return model.SeverityWarn
	}
}

// FormatTelemetry folds a reading into the single human-readable summary line
// shown next to the snapshot. Coordinates are rounded to 4 decimal places;
// battery and temperature are shown raw.
func FormatTelemetry(t *model.TelemetryReading) string {
	if t == nil {
		return Placeholder
	}
	return fmt.Sprintf("lat=%.4f, lon=%.4f, batt=%d%%, temp=%s°C",
		t.Latitude,
		t.Longitude,
		t.BatteryPercent,
		strconv.FormatFloat(t.TemperatureC, 'f', -1, 64),
	)
}

// View is the live vehicle view: it fetches the canonical state of the
// selected vehicle and projects it for display.
type View struct {
	session *session.Session
	client  *client.Client
	recent  *recent.Store
	sink    *notify.Sink
	log     log.Logger

	mu       sync.Mutex
	snapshot *model.VehicleSnapshot
}

// New wires a View to its collaborators.
func New(sess *session.Session, c *client.Client, store *recent.Store, sink *notify.Sink) *View {
	return &View{
		session: sess,
		client:  c,
		recent:  store,
		sink:    sink,
		log:     log.WithName("view"),
	}
}

// SelectAndFetch makes id the tracked vehicle and loads its canonical state.
//
// An empty id fails fast with ErrMissingVehicleID: no network call, session
// unchanged. Otherwise the session is pointed at id before the round-trip, so
// a concurrent poll targets the right vehicle even while this fetch is in
// flight. On success the snapshot is replaced, the id is recorded in the
// recent cache and a positive notification carries the resulting state. On
// failure the snapshot becomes absent, a negative notification carries the
// failure message, and the error is returned once so chained action handlers
// can suppress a duplicate notification.
func (v *View) SelectAndFetch(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingVehicleID
	}

	v.session.SetCurrentVehicleID(id)

	var snap model.VehicleSnapshot
	err := v.client.FetchJSON(ctx, "/vehicle?id="+url.QueryEscape(id), &snap)
	if err != nil {
		v.setSnapshot(nil)
		v.sink.Notify(notify.SeverityNegative, "Fetch Failed", err.Error())
		return err
	}

	v.setSnapshot(&snap)
	v.recent.Add(id)
	v.sink.Notify(notify.SeverityPositive, "Vehicle Loaded", fmt.Sprintf("State: %s", snap.State))
	return nil
}

// RefreshCurrent re-fetches whichever vehicle the session currently tracks.
// With no selection it is a silent no-op. Used by the refresh scheduler.
func (v *View) RefreshCurrent(ctx context.Context) error {
	id := v.session.CurrentVehicleID()
	if id == "" {
		return nil
	}
	return v.SelectAndFetch(ctx, id)
}

// Snapshot returns the rendered snapshot, or nil when absent.
func (v *View) Snapshot() *model.VehicleSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

func (v *View) setSnapshot(s *model.VehicleSnapshot) {
	v.mu.Lock()
	v.snapshot = s
	v.mu.Unlock()
}

// Render projects the snapshot into a console table. An absent snapshot
// renders every field as the placeholder with no badge severity. The
// projection reads the view's current snapshot at call time; when fetches
// resolve out of order, whichever completed last in wall-clock time is what
// gets shown. That last-write-wins race is accepted behavior.
func (v *View) Render() string {
	snap := v.Snapshot()

	table := uitable.New()
	table.MaxColWidth = 80

	if snap == nil {
		table.AddRow("ID:", Placeholder)
		table.AddRow("Type:", Placeholder)
		table.AddRow("City:", Placeholder)
		table.AddRow("State:", Placeholder)
		table.AddRow("Telemetry:", Placeholder)
		return table.String()
	}

	table.AddRow("ID:", orPlaceholder(snap.ID))
	table.AddRow("Type:", orPlaceholder(snap.Type))
	table.AddRow("City:", orPlaceholder(snap.City))
	table.AddRow("State:", formatState(snap.State))
	table.AddRow("Telemetry:", FormatTelemetry(snap.Telemetry))
	return table.String()
}

func formatState(state model.VehicleState) string {
	if state == "" {
		return Placeholder
	}
	if sev := Classify(state); sev != model.SeverityNone {
		return fmt.Sprintf("%s [%s]", state, sev)
	}
	return string(state)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
