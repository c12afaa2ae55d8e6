package console

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/DVA506/SmartMove/internal/console/model"
	"github.com/DVA506/SmartMove/internal/console/notify"
	"github.com/DVA506/SmartMove/pkg/log"
)

// telemetrySettleDelay gives the backend telemetry worker a moment before the
// chained refresh; processing is asynchronous server-side.
const telemetrySettleDelay = 250 * time.Millisecond

type registerRequest struct {
	Type string `json:"type"`
	City string `json:"city"`
}

type registerResponse struct {
	ID string `json:"id"`
}

type actionRequest struct {
	VehicleID string `json:"vehicleId"`
	City      string `json:"city,omitempty"`
}

type telemetryRequest struct {
	VehicleID        string  `json:"vehicleId"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	BatteryPercent   int     `json:"batteryPercent"`
	TemperatureC     float64 `json:"temperatureC"`
	HelmetPresent    bool    `json:"helmetPresent"`
	MovementDetected bool    `json:"movementDetected"`
	Fault            bool    `json:"fault"`
}

func (c *Console) handleUse(args []string) {
	if len(args) != 1 || args[0] == "" {
		c.sink.Notify(notify.SeverityNegative, "Missing ID", "Usage: use <vehicleId>")
		return
	}
	c.session.SetPendingVehicleID(args[0])
	c.sink.Notify(notify.SeverityPositive, "Selected", "Vehicle ID filled into pending actions.")
}

func (c *Console) handleView(ctx context.Context, args []string) {
	id := c.session.PendingVehicleID()
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		c.sink.Notify(notify.SeverityNegative, "Missing ID", "Paste a vehicleId first.")
		return
	}

	c.session.SetPendingVehicleID(id)
	// The view already notified on failure; nothing more to surface here.
	_ = c.view.SelectAndFetch(ctx, id)
	fmt.Fprintln(c.out, c.view.Render())
}

func (c *Console) handleRegister(ctx context.Context, args []string) {
	if len(args) != 2 {
		c.sink.Notify(notify.SeverityNegative, "Register Failed", "Usage: register <type> <city>")
		return
	}
	vehicleType, city := args[0], args[1]

	ok := c.client.HealthCheck(ctx)
	c.session.SetAPIReachable(ok)
	if !ok {
		c.sink.Notify(notify.SeverityNegative, "Register Failed", "API not reachable. Start the fleet API.")
		return
	}

	var res registerResponse
	if err := c.client.SubmitJSON(ctx, "/vehicles", registerRequest{Type: vehicleType, City: city}, &res); err != nil {
		c.sink.Notify(notify.SeverityNegative, "Register Failed", err.Error())
		return
	}

	c.session.SetPendingVehicleID(res.ID)
	c.recent.Add(res.ID)
	c.sink.Notify(notify.SeverityPositive, "Registered", "New vehicle id created.")

	// The chained fetch notifies on its own failure; do not notify twice.
	if err := c.view.SelectAndFetch(ctx, res.ID); err != nil {
		log.Debug("post-register fetch failed", "vehicleID", res.ID, "err", err)
	}
	fmt.Fprintln(c.out, c.view.Render())
}

func (c *Console) handleReserve(ctx context.Context, args []string) {
	if len(args) != 1 {
		c.sink.Notify(notify.SeverityNegative, "Reserve Failed", "Usage: reserve <city>")
		return
	}
	c.runVehicleAction(ctx, "/reserve", args[0], "Reserved", "Vehicle reserved.", "Reserve Failed")
}

func (c *Console) handleStart(ctx context.Context, args []string) {
	if len(args) != 1 {
		c.sink.Notify(notify.SeverityNegative, "Start Failed", "Usage: start <city>")
		return
	}
	c.runVehicleAction(ctx, "/start", args[0], "Rental Started", fmt.Sprintf("Vehicle moved to %s.", model.StateInUse), "Start Failed")
}

func (c *Console) handleEnd(ctx context.Context) {
	c.runVehicleAction(ctx, "/end", "", "Rental Ended", "Vehicle ended and state updated.", "End Failed")
}

// runVehicleAction posts one rental-lifecycle action for the pending vehicle,
// then chains a fetch. The action's own failure notifies here and never
// re-raises further; the chained fetch notifies inside the view.
func (c *Console) runVehicleAction(ctx context.Context, path, city, okTitle, okMessage, failTitle string) {
	vehicleID := c.session.PendingVehicleID()
	if vehicleID == "" {
		c.sink.Notify(notify.SeverityNegative, "Missing ID", "Paste a vehicleId first.")
		return
	}

	if err := c.client.SubmitJSON(ctx, path, actionRequest{VehicleID: vehicleID, City: city}, nil); err != nil {
		c.sink.Notify(notify.SeverityNegative, failTitle, err.Error())
		return
	}
	c.sink.Notify(notify.SeverityPositive, okTitle, okMessage)

	if err := c.view.SelectAndFetch(ctx, vehicleID); err != nil {
		log.Debug("post-action fetch failed", "path", path, "vehicleID", vehicleID, "err", err)
	}
	fmt.Fprintln(c.out, c.view.Render())
}

func (c *Console) handleTelemetry(ctx context.Context, args []string) {
	vehicleID := c.session.PendingVehicleID()
	if vehicleID == "" {
		c.sink.Notify(notify.SeverityNegative, "Missing ID", "Paste a vehicleId first.")
		return
	}
	if len(args) < 4 {
		c.sink.Notify(notify.SeverityNegative, "Telemetry Failed", "Usage: telemetry <lat> <lon> <batt> <temp> [helmet] [movement] [fault]")
		return
	}

	req, err := parseTelemetry(vehicleID, args)
	if err != nil {
		c.sink.Notify(notify.SeverityNegative, "Telemetry Failed", err.Error())
		return
	}

	if err := c.client.SubmitJSON(ctx, "/telemetry", req, nil); err != nil {
		c.sink.Notify(notify.SeverityNegative, "Telemetry Failed", err.Error())
		return
	}
	c.sink.Notify(notify.SeverityPositive, "Telemetry Sent", "Queued to backend telemetry worker.")

	time.AfterFunc(telemetrySettleDelay, func() {
		if err := c.view.SelectAndFetch(ctx, vehicleID); err != nil {
			log.Debug("post-telemetry fetch failed", "vehicleID", vehicleID, "err", err)
		}
	})
}

// parseTelemetry converts the operator's numeric fields defensively: any bad
// number is a local validation error and never reaches the network.
func parseTelemetry(vehicleID string, args []string) (telemetryRequest, error) {
	req := telemetryRequest{VehicleID: vehicleID}

	var err error
	if req.Latitude, err = strconv.ParseFloat(args[0], 64); err != nil {
		return req, fmt.Errorf("latitude %q is not a number", args[0])
	}
	if req.Longitude, err = strconv.ParseFloat(args[1], 64); err != nil {
		return req, fmt.Errorf("longitude %q is not a number", args[1])
	}
	if req.BatteryPercent, err = strconv.Atoi(args[2]); err != nil {
		return req, fmt.Errorf("battery %q is not an integer", args[2])
	}
	if req.TemperatureC, err = strconv.ParseFloat(args[3], 64); err != nil {
		return req, fmt.Errorf("temperature %q is not a number", args[3])
	}

	for _, flag := range args[4:] {
		switch flag {
		case "helmet":
			req.HelmetPresent = true
		case "movement":
			req.MovementDetected = true
		case "fault":
			req.Fault = true
		default:
			return req, fmt.Errorf("unknown telemetry flag %q", flag)
		}
	}
	return req, nil
}
