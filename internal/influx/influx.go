// Package influx streams per-tick telemetry points to InfluxDB. It
// implements storage.Backend; writes are asynchronous through the client's
// write API and never block the caller.
package influx

import (
	"errors"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agroscout/fieldsim/pkg/core"
)

// TelemetryBucket is the bucket mission telemetry is written to.
const TelemetryBucket = "mission_telemetry"

// Backend handles the InfluxDB connection and telemetry writes.
type Backend struct {
	Client influxdb2.Client
	Writer influxdb2_api.WriteAPI
	Logger zerolog.Logger

	missionName  string
	missionStart time.Time
}

// New creates a new InfluxDB backend.
func New(log zerolog.Logger) *Backend {
	return &Backend{Logger: log}
}

// Init establishes the connection to InfluxDB using the influx.* settings.
func (b *Backend) Init() error {
	if !viper.GetBool("influx.enabled") {
		return errors.New("influx.enabled is false")
	}

	b.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf("%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		viper.GetString("influx.token"),
		influxdb2.DefaultOptions().SetBatchSize(5000),
	)
	b.Writer = b.Client.WriteAPI(viper.GetString("influx.org"), TelemetryBucket)

	errCh := b.Writer.Errors()
	go func() {
		for err := range errCh {
			b.Logger.Error().Err(err).Msg("InfluxDB write error")
		}
	}()

	b.Logger.Info().Msg("Connected to InfluxDB")
	return nil
}

// Close flushes pending writes and closes the client.
func (b *Backend) Close() error {
	if b.Writer != nil {
		b.Writer.Flush()
	}
	if b.Client != nil {
		b.Client.Close()
	}
	return nil
}

// StartMission records the wall-clock anchor used to place simulated
// timestamps on the time axis.
func (b *Backend) StartMission(spec *core.MissionSpec, path core.Path) error {
	b.missionName = spec.Name
	b.missionStart = time.Now()
	return nil
}

// RecordFrame writes one telemetry point. The point time is the mission
// wall-clock start plus the simulated offset.
func (b *Backend) RecordFrame(frame *core.TelemetryFrame) error {
	if b.Writer == nil {
		return errors.New("influx backend not initialized")
	}

	p := influxdb2.NewPoint(
		"telemetry",
		map[string]string{
			"mission": b.missionName,
		},
		map[string]interface{}{
			"x":          frame.Pose.X,
			"y":          frame.Pose.Y,
			"theta":      frame.Pose.Theta,
			"battery":    frame.BatteryLevel,
			"gnss_lat":   frame.Gnss.Lat,
			"gnss_lon":   frame.Gnss.Lon,
			"lidar_hits": frame.LidarHitCount,
		},
		b.missionStart.Add(time.Duration(frame.Timestamp*float64(time.Second))),
	)
	b.Writer.WritePoint(p)
	return nil
}

// EndMission writes the terminal status marker and flushes.
func (b *Backend) EndMission(result *core.MissionResult) error {
	if b.Writer == nil {
		return errors.New("influx backend not initialized")
	}

	p := influxdb2.NewPoint(
		"mission_status",
		map[string]string{
			"mission": b.missionName,
			"status":  result.Status,
		},
		map[string]interface{}{
			"frames": len(result.Telemetry),
		},
		time.Now(),
	)
	b.Writer.WritePoint(p)
	b.Writer.Flush()
	return nil
}
