package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing config
// file is not an error; defaults apply.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./fieldsimlogs")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./missions")
	viper.SetDefault("storage.memory.compressOutput", false)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "fieldsim")
	viper.SetDefault("db.sqlitePath", "./fieldsim.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "fieldsim-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("websocket.url", "ws://localhost:5001/stream")
	viper.SetDefault("websocket.secret", "")

	viper.SetDefault("controller.lookahead", 2.0)
	viper.SetDefault("controller.turnGain", 2.0)
	viper.SetDefault("controller.maxSteering", 0.5)

	viper.SetDefault("sensors.lidar.maxRange", 20.0)
	viper.SetDefault("sensors.lidar.fovDeg", 360.0)
	viper.SetDefault("sensors.lidar.numRays", 360)
	viper.SetDefault("sensors.camera.hFovDeg", 60.0)
	viper.SetDefault("sensors.camera.aspectRatio", 1.33)
	viper.SetDefault("sensors.camera.height", 1.5)
	viper.SetDefault("sensors.camera.pitchDeg", -30.0)

	viper.SetConfigName("fieldsim.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}
