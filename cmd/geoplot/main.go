package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/OCAP2/geoplot/internal/config"
	"github.com/OCAP2/geoplot/internal/geoplot"
	"github.com/OCAP2/geoplot/internal/trajectory"
	"github.com/spf13/cobra"
)

// BuildDate and Version can be set at build time via ldflags
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

var (
	configPath     string
	trajectoryPath string
	outputDir      string
)

// SessionStartTime names the session log file.
var SessionStartTime = time.Now()

var rootCmd = &cobra.Command{
	Use:   "geoplot",
	Short: "Render a simulation trajectory as GeoJSON and a Cesium globe",
	Long: `geoplot reads a recorded simulation trajectory (episodes of state snapshots),
extracts per-entity coordinates and a scalar feature, and writes
{name}.geojson plus a self-contained {name}.html that animates the values
over time on a CesiumJS globe.`,
	Version:       fmt.Sprintf("%s (built %s)", Version, BuildDate),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "geoplot.json", "path to the config file (json, yaml or toml)")
	rootCmd.Flags().StringVarP(&trajectoryPath, "trajectory", "t", "", "path to the trajectory JSON file (.gz accepted)")
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory, overrides output.dir")
	_ = rootCmd.MarkFlagRequired("trajectory")
}

func run(ctx context.Context) error {
	if err := config.Load(configPath); err != nil {
		return err
	}

	meta := config.GetSimulationMetadata()
	logger, closeLogs, err := setupLogging(config.GetLoggingConfig(), meta.Name)
	if err != nil {
		return err
	}
	defer closeLogs()

	logger.Info("Starting geoplot", "version", Version, "buildDate", BuildDate, "config", configPath)

	output := config.GetOutputConfig()
	if outputDir != "" {
		output.Dir = outputDir
	}

	g, err := geoplot.New(geoplot.Config{
		Metadata: meta,
		Options:  config.GetRenderOptions(),
		Output:   output,
	}, geoplot.Dependencies{Logger: logger})
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		return err
	}

	traj, err := trajectory.Load(trajectoryPath, config.GetString("trajectory.key"))
	if err != nil {
		logger.Error("Failed to load trajectory", "path", trajectoryPath, "error", err)
		return err
	}
	logger.Debug("Loaded trajectory", "path", trajectoryPath, "episodes", len(traj))

	res, err := g.Render(ctx, traj)
	if err != nil {
		return err
	}

	fmt.Println(res.GeoJSONPath)
	fmt.Println(res.HTMLPath)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "geoplot:", err)
		os.Exit(1)
	}
}
