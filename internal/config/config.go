package config

import (
	"fmt"
	"strings"

	"github.com/OCAP2/geoplot/pkg/core"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GEOPLOT_GEOPLOT_CESIUM_TOKEN.
const EnvPrefix = "GEOPLOT"

// OutputConfig holds where and how output files are written
type OutputConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level          string
	Format         string // "text" (slog) or "json" (zerolog)
	LogsDir        string // optional, enables a session log file
	GraylogEnabled bool
	GraylogAddress string
}

// SetDefaults registers default values for every known key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "text")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("simulation_metadata.name", "simulation")
	viper.SetDefault("simulation_metadata.num_episodes", 1)
	viper.SetDefault("simulation_metadata.num_steps_per_episode", 1)

	viper.SetDefault("geoplot.cesium_token", "")
	viper.SetDefault("geoplot.step_time", 3600)
	viper.SetDefault("geoplot.coordinates", "")
	viper.SetDefault("geoplot.feature", "")
	viper.SetDefault("geoplot.visualization_type", "color")
	viper.SetDefault("geoplot.source_srid", core.DefaultSRID)
	viper.SetDefault("geoplot.include_final_episode", false)

	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.compress", false)

	viper.SetDefault("trajectory.key", "")
}

// Load reads configuration from a JSON, YAML or TOML file and sets default values.
// Environment variables prefixed with GEOPLOT_ override file values.
func Load(configFile string) error {
	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(configFile)

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetSimulationMetadata returns the simulation_metadata section.
func GetSimulationMetadata() core.SimulationMetadata {
	return core.SimulationMetadata{
		Name:               viper.GetString("simulation_metadata.name"),
		NumEpisodes:        viper.GetInt("simulation_metadata.num_episodes"),
		NumStepsPerEpisode: viper.GetInt("simulation_metadata.num_steps_per_episode"),
	}
}

// GetRenderOptions returns the geoplot section.
func GetRenderOptions() core.RenderOptions {
	return core.RenderOptions{
		CesiumToken:         viper.GetString("geoplot.cesium_token"),
		StepTime:            viper.GetFloat64("geoplot.step_time"),
		Coordinates:         viper.GetString("geoplot.coordinates"),
		Feature:             viper.GetString("geoplot.feature"),
		VisualizationType:   viper.GetString("geoplot.visualization_type"),
		SourceSRID:          viper.GetInt("geoplot.source_srid"),
		IncludeFinalEpisode: viper.GetBool("geoplot.include_final_episode"),
	}
}

// GetOutputConfig returns the output section.
func GetOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:      viper.GetString("output.dir"),
		Compress: viper.GetBool("output.compress"),
	}
}

// GetLoggingConfig returns the logging settings.
func GetLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:          viper.GetString("logLevel"),
		Format:         viper.GetString("logFormat"),
		LogsDir:        viper.GetString("logsDir"),
		GraylogEnabled: viper.GetBool("graylog.enabled"),
		GraylogAddress: viper.GetString("graylog.address"),
	}
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
