package model

// VehicleState is the server-reported lifecycle state of a vehicle. The set
// below is what the fleet service emits today; any other value still renders.
type VehicleState string

const (
	StateAvailable     VehicleState = "AVAILABLE"
	StateReserved      VehicleState = "RESERVED"
	StateInUse         VehicleState = "IN_USE"
	StateEmergencyLock VehicleState = "EMERGENCY_LOCK"
)

// TelemetryReading is the latest sensor payload attached to a snapshot. It is
// only ever held as a sub-field of a VehicleSnapshot, never cached on its own.
type TelemetryReading struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	BatteryPercent   int     `json:"batteryPercent"`
	TemperatureC     float64 `json:"temperatureC"`
	HelmetPresent    bool    `json:"helmetPresent"`
	MovementDetected bool    `json:"movementDetected"`
	Fault            bool    `json:"fault"`
}

// VehicleSnapshot is the canonical, server-sourced view of one vehicle at a
// point in time. A snapshot is immutable once received; a new fetch replaces
// it wholesale, never patches it.
type VehicleSnapshot struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	City      string            `json:"city"`
	State     VehicleState      `json:"state"`
	Telemetry *TelemetryReading `json:"telemetry,omitempty"`
}

// Severity is the visual classification of a vehicle state.
type Severity string

const (
	SeverityNone Severity = ""
	SeverityGood Severity = "good"
	SeverityWarn Severity = "warn"
	SeverityBad  Severity = "bad"
)
