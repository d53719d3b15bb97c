package mission

import (
	"sync"

	"github.com/agroscout/fieldsim/pkg/core"
)

// Context exposes the state of a running mission to embedding hosts
// (live dashboards, health endpoints). The simulation loop updates it once
// per tick; readers never block the loop for long.
type Context struct {
	mu    sync.RWMutex
	spec  *core.MissionSpec
	path  core.Path
	frame *core.TelemetryFrame
}

// NewContext creates an empty mission context.
func NewContext() *Context {
	return &Context{}
}

// SetMission records the active mission and its planned path.
func (mc *Context) SetMission(spec *core.MissionSpec, path core.Path) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.spec = spec
	mc.path = path
	mc.frame = nil
}

// GetMission returns the active mission spec and planned path.
func (mc *Context) GetMission() (*core.MissionSpec, core.Path) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.spec, mc.path
}

// SetFrame records the most recent telemetry frame.
func (mc *Context) SetFrame(frame *core.TelemetryFrame) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.frame = frame
}

// LatestFrame returns the most recent telemetry frame, or nil before the
// first tick.
func (mc *Context) LatestFrame() *core.TelemetryFrame {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.frame
}
