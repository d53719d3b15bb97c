package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/agroscout/fieldsim/pkg/core"
	"github.com/agroscout/fieldsim/pkg/streaming"
)

// Config holds WebSocket backend configuration.
type Config struct {
	URL    string
	Secret string
}

// Backend streams mission telemetry over WebSocket to a live viewer.
// It implements storage.Backend but not storage.Exportable.
type Backend struct {
	conn *connection
	cfg  Config
}

// New creates a new WebSocket storage backend.
func New(cfg Config, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		conn: newConnection(logger),
		cfg:  cfg,
	}
}

// Init connects to the WebSocket server.
func (b *Backend) Init() error {
	return b.conn.dial(b.cfg.URL, b.cfg.Secret)
}

// Close disconnects from the WebSocket server.
func (b *Backend) Close() error {
	return b.conn.close()
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	env := streaming.Envelope{Type: msgType, Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// StartMission announces the run and waits for the server ack so frames are
// never streamed into the void. The message is cached for reconnect replay.
func (b *Backend) StartMission(spec *core.MissionSpec, path core.Path) error {
	data, err := marshalEnvelope(streaming.TypeStartMission, streaming.StartMissionPayload{
		Spec: spec,
		Path: path,
	})
	if err != nil {
		return err
	}
	b.conn.cacheStart(data)
	return b.conn.sendAndWait(data, streaming.TypeStartMission, ackWait)
}

// RecordFrame streams one telemetry frame (fire-and-forget).
func (b *Backend) RecordFrame(frame *core.TelemetryFrame) error {
	data, err := marshalEnvelope(streaming.TypeTelemetryFrame, frame)
	if err != nil {
		return err
	}
	b.conn.send(data)
	return nil
}

// EndMission sends the terminal status and waits for the ack.
func (b *Backend) EndMission(result *core.MissionResult) error {
	data, err := marshalEnvelope(streaming.TypeEndMission, streaming.EndMissionPayload{
		Status:     result.Status,
		FrameCount: len(result.Telemetry),
	})
	if err != nil {
		return err
	}
	return b.conn.sendAndWait(data, streaming.TypeEndMission, ackWait)
}
