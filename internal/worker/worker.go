// Package worker decouples the simulation loop from storage I/O. Frames are
// pushed onto a queue and drained by a background goroutine, so the loop
// stays CPU-bound regardless of how slow a backend writes.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/agroscout/fieldsim/internal/queue"
	"github.com/agroscout/fieldsim/internal/storage"
	"github.com/agroscout/fieldsim/pkg/core"
)

// drainInterval is how often the background goroutine empties the queue.
const drainInterval = 100 * time.Millisecond

// Manager buffers telemetry frames and writes them to a backend
// asynchronously. It satisfies the mission controller's Recorder interface.
type Manager struct {
	backend storage.Backend
	frames  *queue.Queue[core.TelemetryFrame]
	log     *slog.Logger

	stop chan struct{}
	done chan struct{}
}

// NewManager creates a worker manager for the given backend.
func NewManager(backend storage.Backend, log *slog.Logger) *Manager {
	return &Manager{
		backend: backend,
		frames:  queue.New[core.TelemetryFrame](),
		log:     log,
	}
}

// StartMission forwards the mission start synchronously, then launches the
// drain goroutine.
func (m *Manager) StartMission(spec *core.MissionSpec, path core.Path) error {
	if m.stop != nil {
		return fmt.Errorf("mission already running")
	}
	if err := m.backend.StartMission(spec, path); err != nil {
		return err
	}
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.drainLoop()
	return nil
}

// RecordFrame enqueues a frame. Never blocks, never fails.
func (m *Manager) RecordFrame(frame *core.TelemetryFrame) error {
	m.frames.Push(*frame)
	return nil
}

// EndMission stops the drain goroutine, writes any remaining frames, and
// forwards the final result.
func (m *Manager) EndMission(result *core.MissionResult) error {
	if m.stop == nil {
		return fmt.Errorf("no mission running")
	}
	close(m.stop)
	<-m.done
	m.stop = nil

	m.flush()
	return m.backend.EndMission(result)
}

func (m *Manager) drainLoop() {
	defer close(m.done)
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.flush()
		}
	}
}

func (m *Manager) flush() {
	for _, frame := range m.frames.Drain() {
		if err := m.backend.RecordFrame(&frame); err != nil {
			m.log.Warn("dropping telemetry frame", "error", err)
		}
	}
}
