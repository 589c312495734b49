package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Mode          string     `json:"mode"`
	Position      string     `json:"position"`
	Destination   string     `json:"destination"`
	Clicks        int32      `json:"clicks"`
	Thresholds    Thresholds `json:"thresholds"`
	Direction     string     `json:"direction"`
	Lockout       bool       `json:"lockout"`
	Pending       string     `json:"pending_action"`
	UpEnergized   bool       `json:"up_energized"`
	DownEnergized bool       `json:"down_energized"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// Thresholds is the JSON representation of the calibrated stop points.
type Thresholds struct {
	Bottom int32 `json:"bottom"`
	Middle int32 `json:"middle"`
	Top    int32 `json:"top"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	ModeChanges      int `json:"mode_changes"`
	PositionsReached int `json:"positions_reached"`
	Movements        int `json:"movements"`
	Lockouts         int `json:"lockouts"`
	Calibrations     int `json:"calibrations"`
	SaveFailures     int `json:"save_failures"`
}

// ConfigJSON is the JSON representation of daemon configuration.
type ConfigJSON struct {
	PollMs    int64  `json:"poll_ms"`
	LockoutMs int64  `json:"lockout_ms"`
	SettleMs  int64  `json:"settle_ms"`
	HTTPPort  string `json:"http_port"`
	StorePath string `json:"store_path"`
}

// ToJSON converts a snapshot into the JSON structure.
func ToJSON(s Snapshot) StatusJSON {
	return StatusJSON{Status: toInner(s, "", "")}
}

func toInner(s Snapshot, event, reason string) StatusInner {
	return StatusInner{
		Event:       event,
		Reason:      reason,
		Mode:        s.Lift.Mode.String(),
		Position:    s.Lift.Current.String(),
		Destination: s.Lift.Next.String(),
		Clicks:      s.Lift.Clicks,
		Thresholds: Thresholds{
			Bottom: s.Lift.Thresholds.Bottom(),
			Middle: s.Lift.Thresholds.Middle,
			Top:    s.Lift.Thresholds.Top,
		},
		Direction:     s.Lift.Direction.String(),
		Lockout:       s.Lift.Lockout,
		Pending:       s.Lift.Pending.String(),
		UpEnergized:   s.Lift.UpEnergized,
		DownEnergized: s.Lift.DownEnergized,
		UptimeSeconds: int64(s.Uptime().Seconds()),
		StartTime:     s.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     s.Now.UTC().Format(time.RFC3339),
		MQTT: MQTTStatus{
			Connected: s.MQTTConnected,
			Broker:    s.Config.Broker,
		},
		Counts: CountsJSON{
			ModeChanges:      s.Counts.ModeChanges,
			PositionsReached: s.Counts.PositionsReached,
			Movements:        s.Counts.Movements,
			Lockouts:         s.Counts.Lockouts,
			Calibrations:     s.Counts.Calibrations,
			SaveFailures:     s.Counts.SaveFailures,
		},
		Config: ConfigJSON{
			PollMs:    s.Config.PollMs,
			LockoutMs: s.Config.LockoutMs,
			SettleMs:  s.Config.SettleMs,
			HTTPPort:  s.Config.HTTPPort,
			StorePath: s.Config.StorePath,
		},
	}
}

// FormatJSON renders a snapshot as JSON bytes.
func FormatJSON(s Snapshot) []byte {
	b, err := json.Marshal(ToJSON(s))
	if err != nil {
		// Snapshot contains only marshalable values; this cannot happen.
		return []byte(`{"status":{}}`)
	}
	return b
}

// FormatStatusEvent renders a snapshot as a system-event payload with the
// given event name and reason, for STARTUP/SHUTDOWN/HEARTBEAT messages.
func FormatStatusEvent(s Snapshot, event, reason string) []byte {
	b, err := json.Marshal(StatusJSON{Status: toInner(s, event, reason)})
	if err != nil {
		return []byte(`{"status":{}}`)
	}
	return b
}
