package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agroscout/fieldsim/internal/config"
	"github.com/agroscout/fieldsim/internal/logging"
	"github.com/agroscout/fieldsim/internal/mission"
	"github.com/agroscout/fieldsim/internal/planner"
	"github.com/agroscout/fieldsim/internal/sensors"
	"github.com/agroscout/fieldsim/internal/storage"
	"github.com/agroscout/fieldsim/internal/worker"
	"github.com/agroscout/fieldsim/pkg/core"
)

var (
	missionFile string
	configDir   string
	backendList string
	seed        int64
)

var rootCmd = &cobra.Command{
	Use:   "fieldsim",
	Short: "Autonomous field-robot mission simulator",
	Long: `fieldsim plans a traversal path over a geographic field boundary and
simulates a ground vehicle executing it, emulating GNSS, LiDAR, and camera
sensors into a time-stamped telemetry log.`,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a mission simulation",
	Long:  `Load a mission specification from JSON, run the simulation, and persist the result to the configured storage backends.`,
	RunE:  runSimulate,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan the mission path without simulating",
	Long:  `Parse the mission boundary, generate the path for the configured strategy, and print it as JSON.`,
	RunE:  runPlan,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&missionFile, "mission", "m", "", "path to mission spec JSON (required)")
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "directory containing fieldsim.cfg.json")
	simulateCmd.Flags().StringVarP(&backendList, "storage", "s", "", "comma-separated storage backends (memory,sqlite,postgres,websocket,influx); overrides config")
	simulateCmd.Flags().Int64Var(&seed, "seed", 0, "GNSS noise RNG seed (0 seeds from time)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSpec() (*core.MissionSpec, error) {
	if missionFile == "" {
		return nil, fmt.Errorf("--mission is required")
	}
	data, err := os.ReadFile(missionFile)
	if err != nil {
		return nil, fmt.Errorf("read mission spec: %w", err)
	}
	var spec core.MissionSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse mission spec: %w", err)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(missionFile), filepath.Ext(missionFile))
	}
	return &spec, nil
}

func setupLogging() (*logging.SlogManager, error) {
	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	logFile, err := os.Create(logging.LogFilePath(logsDir, "fieldsim", time.Now()))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	gelfAddr := ""
	if config.GetBool("graylog.enabled") {
		gelfAddr = config.GetString("graylog.address")
	}

	manager := logging.NewSlogManager()
	manager.Setup(logFile, config.GetString("logLevel"), gelfAddr)
	return manager, nil
}

func controllerConfig() mission.Config {
	return mission.Config{
		Lookahead:   config.GetFloat("controller.lookahead"),
		TurnGain:    config.GetFloat("controller.turnGain"),
		MaxSteering: config.GetFloat("controller.maxSteering"),
		Lidar: sensors.LidarConfig{
			MaxRange: config.GetFloat("sensors.lidar.maxRange"),
			FovDeg:   config.GetFloat("sensors.lidar.fovDeg"),
			NumRays:  config.GetInt("sensors.lidar.numRays"),
		},
		Camera: sensors.CameraConfig{
			HFovDeg:     config.GetFloat("sensors.camera.hFovDeg"),
			AspectRatio: config.GetFloat("sensors.camera.aspectRatio"),
			Height:      config.GetFloat("sensors.camera.height"),
			PitchDeg:    config.GetFloat("sensors.camera.pitchDeg"),
		},
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	spec, err := loadSpec()
	if err != nil {
		return err
	}

	logManager, err := setupLogging()
	if err != nil {
		return err
	}
	defer logManager.Close()
	log := logManager.Logger()

	dbLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Storage backends, fanned out.
	types := backendList
	if types == "" {
		types = config.GetString("storage.type")
	}
	var multi storage.Multi
	for _, t := range strings.Split(types, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		backend, err := storage.NewBackend(t, log, dbLog)
		if err != nil {
			return err
		}
		if err := backend.Init(); err != nil {
			log.Error("storage backend unavailable, continuing without it", "type", t, "error", err)
			continue
		}
		multi = append(multi, backend)
	}
	defer func() {
		if err := multi.Close(); err != nil {
			log.Error("closing storage", "error", err)
		}
	}()

	var recorder mission.Recorder
	if len(multi) > 0 {
		recorder = worker.NewManager(multi, log)
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	statusCtx := mission.NewContext()
	controller, err := mission.New(controllerConfig(), log, rng, recorder, statusCtx)
	if err != nil {
		return err
	}

	// Interactive hosts cancel per tick; dt alone does not bound wall time.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := controller.Simulate(ctx, spec)
	if err != nil {
		return fmt.Errorf("mission %q: %w", spec.Name, err)
	}

	fmt.Printf("mission %s: %s (%d frames)\n", spec.Name, result.Status, len(result.Telemetry))
	for _, b := range multi {
		if exp, ok := b.(storage.Exportable); ok && exp.GetExportedFilePath() != "" {
			fmt.Printf("exported: %s\n", exp.GetExportedFilePath())
		}
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	spec, err := loadSpec()
	if err != nil {
		return err
	}

	boundary, err := planner.ParseBoundary(spec.FieldBoundary, spec.Origin)
	if err != nil {
		return fmt.Errorf("field boundary: %w", err)
	}

	var path core.Path
	switch spec.PathConfig.Type {
	case core.PathTypeCoverage:
		path, err = planner.Boustrophedon(boundary, spec.PathConfig.Width, spec.PathConfig.AngleDeg)
		if err != nil {
			return err
		}
	case core.PathTypeAStar:
		if spec.PathConfig.Start == nil || spec.PathConfig.Goal == nil {
			return fmt.Errorf("astar requires start and goal")
		}
		var obstacles []core.Polygon
		for i, raw := range spec.Obstacles {
			obs, err := planner.ParseBoundary(raw, spec.Origin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "dropping obstacle %d: %v\n", i, err)
				continue
			}
			obstacles = append(obstacles, obs)
		}
		path = planner.AStar(*spec.PathConfig.Start, *spec.PathConfig.Goal, boundary, obstacles, planner.DefaultResolution)
	default:
		path = core.Path(spec.PathConfig.Waypoints)
	}

	if len(path) == 0 {
		return &core.NoPathError{Reason: "planning produced no waypoints"}
	}

	out, err := json.MarshalIndent(path, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
