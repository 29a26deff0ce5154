// pkg/core/simulation.go
package core

// State is one snapshot of simulation state: an arbitrarily nested tree of
// map[string]any, []any, numbers, strings, bools and nil.
type State = any

// Episode is the ordered sequence of states recorded during one run of the simulation.
type Episode []State

// Trajectory is the ordered sequence of episodes produced by a simulation.
type Trajectory []Episode

// SimulationMetadata describes the simulation that produced a trajectory
type SimulationMetadata struct {
	Name               string `json:"name" mapstructure:"name"`
	NumEpisodes        int    `json:"num_episodes" mapstructure:"num_episodes"`
	NumStepsPerEpisode int    `json:"num_steps_per_episode" mapstructure:"num_steps_per_episode"`
}

// TotalSteps is the number of timestamps generated for a render.
func (m SimulationMetadata) TotalSteps() int {
	return m.NumEpisodes * m.NumStepsPerEpisode
}

// VisualizationSize makes the point size follow the value. Any other
// visualization type only varies the color.
const VisualizationSize = "size"

// DefaultSRID is WGS84, the CRS GeoJSON coordinates are expressed in.
const DefaultSRID = 4326

// RenderOptions configures a single render
type RenderOptions struct {
	CesiumToken       string  `json:"cesium_token" mapstructure:"cesium_token"`
	StepTime          float64 `json:"step_time" mapstructure:"step_time"` // seconds between timestamps
	Coordinates       string  `json:"coordinates" mapstructure:"coordinates"`
	Feature           string  `json:"feature" mapstructure:"feature"`
	VisualizationType string  `json:"visualization_type" mapstructure:"visualization_type"`

	// SourceSRID is the EPSG code of the extracted positions. Positions are
	// reprojected to WGS84 when it is anything other than 4326.
	SourceSRID int `json:"source_srid" mapstructure:"source_srid"`

	// IncludeFinalEpisode also reads the last episode of the trajectory, which
	// is skipped by default for compatibility with existing outputs.
	IncludeFinalEpisode bool `json:"include_final_episode" mapstructure:"include_final_episode"`
}

// SizeMode reports whether point size is value-driven.
func (o RenderOptions) SizeMode() bool {
	return o.VisualizationType == VisualizationSize
}

// Extraction holds what was read out of a trajectory.
// Coords has one [x, y] pair per entity, Values one row per visited episode
// with one value per entity.
type Extraction struct {
	Coords [][2]float64
	Values [][]float64
}

// EntityCount returns the number of entities in the extraction.
func (e Extraction) EntityCount() int {
	return len(e.Coords)
}
