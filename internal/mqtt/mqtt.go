// Package mqtt provides telemetry publishing with abstraction for testing.
// Publishing is outbound only: the broker never commands the lift.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/lift-controller/internal/lift"
)

// Topic is the MQTT topic for lift controller events.
const Topic = "workshop/lift/controller/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "workshop/lift/controller/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a controller event stamped with the given time.
	// Returns error if publishing fails (should not crash the process).
	Publish(event lift.Event, at time.Time) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the MQTT message envelope for controller events.
type Payload struct {
	Lift LiftPayload `json:"lift"`
}

// LiftPayload contains the controller event details.
type LiftPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Mode      string `json:"mode"`
	Position  string `json:"position,omitempty"`
	Direction string `json:"direction,omitempty"`
	Clicks    int32  `json:"clicks"`
	Threshold int32  `json:"threshold,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FormatPayload creates the JSON payload for a controller event.
func FormatPayload(event lift.Event, at time.Time) ([]byte, error) {
	p := Payload{
		Lift: LiftPayload{
			Timestamp: at.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Mode:      event.Mode.String(),
			Clicks:    event.Clicks,
			Threshold: event.Threshold,
			Error:     event.Err,
		},
	}
	switch event.Type {
	case lift.EventPositionReached, lift.EventThresholdSaved,
		lift.EventThresholdSaveFailed, lift.EventModeChanged:
		p.Lift.Position = event.Position.String()
	}
	if event.Direction != lift.DirectionNone {
		p.Lift.Direction = event.Direction.String()
	}
	return json.Marshal(p)
}

// SystemPayload is the MQTT message envelope for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status
// snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
