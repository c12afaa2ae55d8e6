// Package console ties the session-layer components to an interactive
// terminal loop. The loop itself is plain command dispatch; all state
// transitions and validation live behind the fleet API.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/DVA506/SmartMove/internal/console/client"
	"github.com/DVA506/SmartMove/internal/console/notify"
	"github.com/DVA506/SmartMove/internal/console/recent"
	"github.com/DVA506/SmartMove/internal/console/refresh"
	"github.com/DVA506/SmartMove/internal/console/session"
	"github.com/DVA506/SmartMove/internal/console/view"
	"github.com/DVA506/SmartMove/pkg/log"
)

// Console is the operator console: an interactive loop over the live-state
// session layer.
type Console struct {
	client    *client.Client
	recent    *recent.Store
	sink      *notify.Sink
	session   *session.Session
	view      *view.View
	scheduler *refresh.Scheduler

	in  io.Reader
	out io.Writer
}

// Run starts the console: startup rendering and health probe, then the
// command loop until the context is cancelled or input ends. No operation
// failure may leave the loop broken; every handler consumes its own errors.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintf(c.out, "SmartMove operator console — fleet API: %s\n", c.client.BaseURL())
	fmt.Fprintln(c.out, `Type "help" for commands.`)
	c.renderRecent()

	ok := c.client.HealthCheck(ctx)
	c.session.SetAPIReachable(ok)
	if ok {
		c.sink.Notify(notify.SeverityPositive, "API Status", "Connected.")
	} else {
		c.sink.Notify(notify.SeverityNegative, "API Status", "Not reachable. Start the fleet API.")
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Warn("input read failed", "err", err)
		}
	}()

	defer c.scheduler.Stop()

	for {
		fmt.Fprint(c.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case line, open := <-lines:
			if !open {
				return nil
			}
			if quit := c.dispatch(ctx, line); quit {
				return nil
			}
		}
	}
}

// dispatch runs a single command line; it reports whether the loop should end.
func (c *Console) dispatch(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help":
		c.printHelp()
	case "status":
		c.handleStatus()
	case "health":
		c.handleHealth(ctx)
	case "use":
		c.handleUse(rest)
	case "view":
		c.handleView(ctx, rest)
	case "register":
		c.handleRegister(ctx, rest)
	case "reserve":
		c.handleReserve(ctx, rest)
	case "start":
		c.handleStart(ctx, rest)
	case "end":
		c.handleEnd(ctx)
	case "telemetry":
		c.handleTelemetry(ctx, rest)
	case "recent":
		c.renderRecent()
	case "clear":
		c.handleClear()
	case "auto":
		c.handleAuto(ctx)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(c.out, "unknown command %q — type \"help\"\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	table := uitable.New()
	table.AddRow("view [id]", "Fetch and display a vehicle (defaults to the pending id).")
	table.AddRow("use <id>", "Fill the pending-action id without a network call.")
	table.AddRow("register <type> <city>", "Register a new vehicle and load it.")
	table.AddRow("reserve <city>", "Reserve the pending vehicle.")
	table.AddRow("start <city>", "Start a rental for the pending vehicle.")
	table.AddRow("end", "End the rental for the pending vehicle.")
	table.AddRow("telemetry <lat> <lon> <batt> <temp> [helmet] [movement] [fault]", "Inject simulated telemetry.")
	table.AddRow("recent", "Show the recent-vehicle list.")
	table.AddRow("clear", "Clear the recent-vehicle list.")
	table.AddRow("auto", "Toggle auto-refresh of the displayed vehicle.")
	table.AddRow("health", "Probe fleet API connectivity.")
	table.AddRow("status", "Show console status.")
	table.AddRow("quit", "Leave the console.")
	fmt.Fprintln(c.out, table.String())
}

func (c *Console) handleStatus() {
	indicator := "DOWN"
	if c.session.APIReachable() {
		indicator = "UP"
	}

	table := uitable.New()
	table.AddRow("API:", c.client.BaseURL())
	table.AddRow("Connectivity:", indicator)
	table.AddRow("Pending id:", orDash(c.session.PendingVehicleID()))
	table.AddRow("Tracked id:", orDash(c.session.CurrentVehicleID()))
	table.AddRow("Refresh:", c.scheduler.Hint())
	fmt.Fprintln(c.out, table.String())
	fmt.Fprintln(c.out, c.view.Render())
}

func (c *Console) handleHealth(ctx context.Context) {
	ok := c.client.HealthCheck(ctx)
	c.session.SetAPIReachable(ok)
	if ok {
		c.sink.Notify(notify.SeverityPositive, "API Status", "Connected.")
	} else {
		c.sink.Notify(notify.SeverityNegative, "API Status", "Not reachable.")
	}
}

func (c *Console) handleAuto(ctx context.Context) {
	c.scheduler.Toggle(ctx)
	fmt.Fprintln(c.out, c.scheduler.Hint())
}

func (c *Console) renderRecent() {
	ids := c.recent.Load()
	if len(ids) == 0 {
		fmt.Fprintln(c.out, "No recent vehicles yet. Register one to begin.")
		return
	}

	table := uitable.New()
	table.AddRow("#", "VEHICLE ID")
	for i, id := range ids {
		table.AddRow(fmt.Sprintf("%d", i+1), id)
	}
	fmt.Fprintln(c.out, table.String())
	fmt.Fprintln(c.out, `Use "use <id>" to select, "view <id>" to select and fetch.`)
}

func (c *Console) handleClear() {
	c.recent.Clear()
	c.renderRecent()
	c.sink.Notify(notify.SeverityNeutral, "Cleared", "Recent list cleared.")
}

func orDash(s string) string {
	if s == "" {
		return view.Placeholder
	}
	return s
}
