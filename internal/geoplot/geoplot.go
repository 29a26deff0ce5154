// Package geoplot turns a simulation trajectory into a time-indexed GeoJSON
// file and a CesiumJS page that animates it.
package geoplot

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/OCAP2/geoplot/internal/config"
	"github.com/OCAP2/geoplot/internal/geo"
	"github.com/OCAP2/geoplot/internal/render"
	"github.com/OCAP2/geoplot/internal/timeline"
	"github.com/OCAP2/geoplot/internal/trajectory"
	"github.com/OCAP2/geoplot/pkg/core"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gonum.org/v1/gonum/floats"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Config is everything a render needs to know up front.
type Config struct {
	Metadata core.SimulationMetadata
	Options  core.RenderOptions
	Output   config.OutputConfig
}

// Dependencies holds the collaborators of a GeoPlot. Zero values are replaced
// with a silent logger and the wall clock.
type Dependencies struct {
	Logger Logger
	Now    func() time.Time
}

// Result describes the files produced by a render.
type Result struct {
	RunID       string
	GeoJSONPath string
	HTMLPath    string
	Collections int
	Features    int
	Start       time.Time
	Stop        time.Time

	// MinValue and MaxValue span every extracted value. Both are zero when
	// nothing was extracted.
	MinValue float64
	MaxValue float64
}

// GeoPlot renders trajectories for one simulation configuration.
type GeoPlot struct {
	cfg       Config
	log       Logger
	now       func() time.Time
	transform geo.Transformer
	metrics   *instruments
}

// New validates the configuration and creates a GeoPlot.
func New(cfg Config, deps Dependencies) (*GeoPlot, error) {
	if err := Validate(cfg.Metadata, cfg.Options); err != nil {
		return nil, err
	}

	transform, err := geo.NewTransformer(cfg.Options.SourceSRID)
	if err != nil {
		return nil, err
	}

	metrics, err := newInstruments()
	if err != nil {
		return nil, err
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}

	g := &GeoPlot{
		cfg:       cfg,
		log:       deps.Logger,
		now:       deps.Now,
		transform: transform,
		metrics:   metrics,
	}
	if g.log == nil {
		g.log = nopLogger{}
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g, nil
}

// Validate checks simulation metadata and render options.
func Validate(meta core.SimulationMetadata, opts core.RenderOptions) error {
	switch {
	case meta.Name == "":
		return fmt.Errorf("%w: simulation name is empty", core.ErrInvalidOptions)
	case meta.NumEpisodes <= 0:
		return fmt.Errorf("%w: num_episodes must be positive, got %d", core.ErrInvalidOptions, meta.NumEpisodes)
	case meta.NumStepsPerEpisode <= 0:
		return fmt.Errorf("%w: num_steps_per_episode must be positive, got %d", core.ErrInvalidOptions, meta.NumStepsPerEpisode)
	case !(opts.StepTime > 0) || math.IsInf(opts.StepTime, 0):
		return fmt.Errorf("%w: step_time must be a positive number of seconds, got %v", core.ErrInvalidOptions, opts.StepTime)
	case opts.Coordinates == "":
		return fmt.Errorf("%w: coordinates path is empty", core.ErrInvalidOptions)
	case opts.Feature == "":
		return fmt.Errorf("%w: feature path is empty", core.ErrInvalidOptions)
	}
	return nil
}

// Render converts the trajectory and writes {name}.geojson and {name}.html to
// the output directory. The GeoJSON file is written first and is left behind
// if writing the page fails.
func (g *GeoPlot) Render(ctx context.Context, traj core.Trajectory) (Result, error) {
	began := time.Now()
	res, err := g.render(traj)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		g.log.Error("Render failed", "run", res.RunID, "simulation", g.cfg.Metadata.Name, "error", err)
	}
	g.metrics.renders.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	g.metrics.duration.Record(ctx, time.Since(began).Seconds())
	if err == nil {
		g.metrics.features.Add(ctx, int64(res.Features))
	}
	return res, err
}

func (g *GeoPlot) render(traj core.Trajectory) (Result, error) {
	meta, opts, out := g.cfg.Metadata, g.cfg.Options, g.cfg.Output

	res := Result{RunID: uuid.NewString()}
	start := g.now().UTC()

	ex, err := trajectory.Extract(traj, opts.Coordinates, opts.Feature, trajectory.Options{
		IncludeFinalEpisode: opts.IncludeFinalEpisode,
	})
	if err != nil {
		return res, fmt.Errorf("extracting trajectory: %w", err)
	}
	g.log.Debug("Extracted trajectory",
		"run", res.RunID,
		"episodes", len(traj),
		"steps", len(ex.Values),
		"entities", ex.EntityCount(),
	)

	timestamps := timeline.Generate(start, meta.TotalSteps(), opts.StepTime)
	if len(ex.Values) != len(timestamps) {
		g.log.Warn("Value steps and timestamps differ, truncating to the shorter",
			"run", res.RunID,
			"steps", len(ex.Values),
			"timestamps", len(timestamps),
		)
	}

	collections, err := geo.BuildCollections(ex, timestamps, g.transform)
	if err != nil {
		return res, fmt.Errorf("building features: %w", err)
	}
	res.Collections = len(collections)
	res.Features = geo.CountFeatures(collections)
	res.Start, res.Stop, _ = timeline.Bounds(timestamps)
	if all := flattenValues(ex.Values); len(all) > 0 {
		res.MinValue, res.MaxValue = floats.Min(all), floats.Max(all)
	}

	res.GeoJSONPath = render.GeoJSONPath(out.Dir, meta.Name, out.Compress)
	if err := render.WriteGeoJSON(res.GeoJSONPath, collections, out.Compress); err != nil {
		return res, fmt.Errorf("writing %s: %w", res.GeoJSONPath, err)
	}

	page, err := render.Render(opts, res.Start, res.Stop, collections)
	if err != nil {
		return res, fmt.Errorf("rendering page: %w", err)
	}
	res.HTMLPath = render.HTMLPath(out.Dir, meta.Name)
	if err := render.WriteHTML(res.HTMLPath, page); err != nil {
		return res, fmt.Errorf("writing %s: %w", res.HTMLPath, err)
	}

	g.log.Info("Render finished",
		"run", res.RunID,
		"simulation", meta.Name,
		"collections", res.Collections,
		"features", res.Features,
		"minValue", res.MinValue,
		"maxValue", res.MaxValue,
		"geojson", res.GeoJSONPath,
		"html", res.HTMLPath,
	)

	return res, nil
}

func flattenValues(rows [][]float64) []float64 {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	all := make([]float64, 0, n)
	for _, row := range rows {
		all = append(all, row...)
	}
	return all
}
