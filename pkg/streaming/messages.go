package streaming

import (
	"encoding/json"

	"github.com/agroscout/fieldsim/pkg/core"
)

// Message type constants matching the streaming protocol.
const (
	TypeStartMission   = "start_mission"
	TypeTelemetryFrame = "telemetry_frame"
	TypeEndMission     = "end_mission"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// StartMissionPayload carries the mission request and the planned path.
type StartMissionPayload struct {
	Spec *core.MissionSpec `json:"spec"`
	Path core.Path         `json:"path"`
}

// EndMissionPayload carries the terminal status and summary counts.
type EndMissionPayload struct {
	Status     string `json:"status"`
	FrameCount int    `json:"frameCount"`
}
