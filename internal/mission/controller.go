// Package mission orchestrates projection, planning, kinematics, and sensor
// emulation into a fixed-timestep simulation loop producing the telemetry log.
package mission

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/agroscout/fieldsim/internal/geo"
	"github.com/agroscout/fieldsim/internal/kinematics"
	"github.com/agroscout/fieldsim/internal/planner"
	"github.com/agroscout/fieldsim/internal/sensors"
	"github.com/agroscout/fieldsim/internal/world"
	"github.com/agroscout/fieldsim/pkg/core"
)

// Defaults applied when the mission spec leaves a knob unset.
const (
	defaultDt       = 0.1
	defaultDuration = 600.0
	defaultWidth    = 2.0
	defaultSpeed    = 1.0
)

// Recorder receives the mission stream as it is produced. storage.Backend
// and worker.Manager both satisfy it. Recorder failures are logged, never
// fatal to the simulation.
type Recorder interface {
	StartMission(spec *core.MissionSpec, path core.Path) error
	RecordFrame(frame *core.TelemetryFrame) error
	EndMission(result *core.MissionResult) error
}

// Config holds the controller and sensor tuning for a run.
type Config struct {
	Lookahead   float64 // pure-pursuit target advance distance, meters
	TurnGain    float64 // P gain on heading error (differential)
	MaxSteering float64 // steering clamp magnitude, radians (ackermann)

	Lidar  sensors.LidarConfig
	Camera sensors.CameraConfig
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Lookahead:   2.0,
		TurnGain:    2.0,
		MaxSteering: 0.5,
		Lidar:       sensors.DefaultLidar,
		Camera:      sensors.DefaultCamera,
	}
}

// Controller runs missions. Controllers are safe to reuse sequentially but
// not concurrently; run one Controller per concurrent mission.
type Controller struct {
	cfg      Config
	log      *slog.Logger
	rng      *rand.Rand
	recorder Recorder
	status   *Context

	ticks       metric.Int64Counter
	lidarPoints metric.Int64Counter
	wallSeconds metric.Float64Histogram
}

// New creates a mission controller. recorder and statusCtx may be nil; rng
// may be nil for a time-seeded source. Uses the global OTel meter for
// metrics (no-op if not configured).
func New(cfg Config, log *slog.Logger, rng *rand.Rand, recorder Recorder, statusCtx *Context) (*Controller, error) {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c := &Controller{
		cfg:      cfg,
		log:      log,
		rng:      rng,
		recorder: recorder,
		status:   statusCtx,
	}

	m := meter()
	var err error

	c.ticks, err = m.Int64Counter(
		"mission.ticks",
		metric.WithDescription("Total simulation ticks executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	c.lidarPoints, err = m.Int64Counter(
		"mission.lidar.points",
		metric.WithDescription("Total LiDAR hit points produced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lidar counter: %w", err)
	}

	c.wallSeconds, err = m.Float64Histogram(
		"mission.wall.seconds",
		metric.WithDescription("Wall-clock duration of mission runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wall histogram: %w", err)
	}

	return c, nil
}

// Simulate runs one mission to completion and returns the result.
//
// Fatal conditions: an invalid vehicle model, an invalid field boundary, or
// an empty planned path. Obstacles that fail to parse are dropped with a
// warning and the mission proceeds. ctx is checked once per tick; a
// cancelled context aborts the run without a finalized result.
func (c *Controller) Simulate(ctx context.Context, spec *core.MissionSpec) (*core.MissionResult, error) {
	started := time.Now()

	// Vehicle model is validated before any simulation work.
	model, err := kinematics.New(spec.VehicleConfig)
	if err != nil {
		return nil, err
	}

	// Local reference frame and geometry.
	ref := spec.Origin
	boundary, err := planner.ParseBoundary(spec.FieldBoundary, ref)
	if err != nil {
		return nil, fmt.Errorf("field boundary: %w", err)
	}

	var obstaclePolys []core.Polygon
	for i, raw := range spec.Obstacles {
		obs, err := planner.ParseBoundary(raw, ref)
		if err != nil {
			c.log.Warn("dropping unparseable obstacle", "index", i, "error", err)
			continue
		}
		obstaclePolys = append(obstaclePolys, obs)
	}
	obstacles := world.NewObstacleSet(obstaclePolys)

	// Plan the path.
	path, err := c.plan(spec, boundary, obstacles)
	if err != nil {
		return nil, err
	}

	// Sensor suite for this run.
	suite := sensors.New(spec.VehicleConfig.GnssNoiseStdDev, c.cfg.Lidar, c.cfg.Camera, obstacles, c.rng)

	if c.status != nil {
		c.status.SetMission(spec, path)
	}
	if c.recorder != nil {
		if err := c.recorder.StartMission(spec, path); err != nil {
			c.log.Error("recorder rejected mission start", "error", err)
		}
	}

	result := c.run(ctx, spec, model, suite, path)
	if result == nil {
		return nil, ctx.Err()
	}

	if c.recorder != nil {
		if err := c.recorder.EndMission(result); err != nil {
			c.log.Error("recorder failed to finalize mission", "error", err)
		}
	}

	wall := time.Since(started).Seconds()
	c.wallSeconds.Record(ctx, wall, metric.WithAttributes(attribute.String("status", result.Status)))
	c.log.Info("mission finished",
		"status", result.Status,
		"frames", len(result.Telemetry),
		"wallSeconds", wall)

	return result, nil
}

// plan produces the path for the requested strategy.
func (c *Controller) plan(spec *core.MissionSpec, boundary core.Polygon, obstacles *world.ObstacleSet) (core.Path, error) {
	pc := spec.PathConfig
	width := pc.Width
	if width == 0 {
		width = defaultWidth
	}

	switch pc.Type {
	case core.PathTypeCoverage:
		path, err := planner.Boustrophedon(boundary, width, pc.AngleDeg)
		if err != nil {
			return nil, err
		}
		if len(path) == 0 {
			return nil, &core.NoPathError{Reason: "degenerate boundary"}
		}
		return path, nil

	case core.PathTypeAStar:
		if pc.Start == nil || pc.Goal == nil {
			return nil, &core.NoPathError{Reason: "astar requires start and goal"}
		}
		path := planner.AStar(*pc.Start, *pc.Goal, boundary, obstacles.All(), planner.DefaultResolution)
		if len(path) == 0 {
			return nil, &core.NoPathError{Reason: "start outside boundary or goal unreachable"}
		}
		return path, nil

	default:
		// Literal waypoint list.
		if len(pc.Waypoints) == 0 {
			return nil, &core.NoPathError{Reason: "no waypoints provided"}
		}
		return core.Path(pc.Waypoints), nil
	}
}

// run executes the fixed-timestep loop. Returns nil when ctx is cancelled.
func (c *Controller) run(ctx context.Context, spec *core.MissionSpec, model kinematics.Model, suite *sensors.Simulator, path core.Path) *core.MissionResult {
	dt := spec.Simulation.Dt
	if dt <= 0 {
		dt = defaultDt
	}
	maxDuration := spec.Simulation.Duration
	if maxDuration <= 0 {
		maxDuration = defaultDuration
	}
	speed := spec.VehicleConfig.TargetSpeed
	if speed <= 0 {
		speed = defaultSpeed
	}
	ackermann := spec.VehicleConfig.Model == core.VehicleAckermann

	// Initial pose: at the first path point, heading toward the second.
	state := core.RobotState{
		X:            path[0].X,
		Y:            path[0].Y,
		BatteryLevel: 100,
	}
	if len(path) > 1 {
		state.Theta = math.Atan2(path[1].Y-path[0].Y, path[1].X-path[0].X)
	}

	result := &core.MissionResult{
		Path:      path,
		Telemetry: make([]core.TelemetryFrame, 0, int(maxDuration/dt)),
	}

	currentIdx := 0
	currentTime := 0.0

	for currentTime < maxDuration && currentIdx < len(path) {
		if ctx.Err() != nil {
			c.log.Warn("mission cancelled", "simTime", currentTime)
			return nil
		}

		// Pure-pursuit target selection: advance once within lookahead.
		target := path[currentIdx]
		if math.Hypot(target.X-state.X, target.Y-state.Y) < c.cfg.Lookahead {
			currentIdx++
			if currentIdx >= len(path) {
				break
			}
			target = path[currentIdx]
		}

		// Heading-error-proportional command toward the target.
		headingErr := kinematics.NormalizeAngle(
			math.Atan2(target.Y-state.Y, target.X-state.X) - state.Theta)

		control := kinematics.Control{V: speed}
		if ackermann {
			// Physical steering limit.
			control.Phi = clamp(headingErr, -c.cfg.MaxSteering, c.cfg.MaxSteering)
		} else {
			control.Omega = c.cfg.TurnGain * headingErr
		}

		state = model.Step(state, control, dt)

		// Sensors read the updated state; they never mutate it.
		gx, gy := suite.GNSS().Read(state.X, state.Y)
		hits := suite.Lidar(state)
		footprint := suite.CameraFootprint(state)

		frame := core.TelemetryFrame{
			Timestamp:       currentTime,
			Pose:            state.Pose(),
			BatteryLevel:    state.BatteryLevel,
			Gnss:            toGeo(gx, gy, spec.Origin),
			LidarHitCount:   len(hits),
			CameraFootprint: footprint,
		}
		result.Telemetry = append(result.Telemetry, frame)

		if c.status != nil {
			c.status.SetFrame(&frame)
		}
		if c.recorder != nil {
			if err := c.recorder.RecordFrame(&frame); err != nil {
				c.log.Warn("recorder dropped frame", "simTime", currentTime, "error", err)
			}
		}

		c.ticks.Add(ctx, 1)
		c.lidarPoints.Add(ctx, int64(len(hits)))

		currentTime += dt
		if state.BatteryLevel <= 0 {
			break
		}
	}

	switch {
	case currentIdx >= len(path):
		result.Status = core.StatusCompleted
	case state.BatteryLevel <= 0:
		result.Status = core.StatusBatteryEmpty
	default:
		result.Status = core.StatusTimeout
	}
	return result
}

func toGeo(x, y float64, origin core.GeoPoint) core.GeoPoint {
	return geo.ToGeo(x, y, origin.Lat, origin.Lon)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
