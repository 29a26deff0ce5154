// Package trajectory reads recorded simulation trajectories and extracts
// per-entity positions and property values from them.
package trajectory

import (
	"fmt"

	"github.com/OCAP2/geoplot/internal/util"
	"github.com/OCAP2/geoplot/pkg/core"
)

// Options controls which episodes Extract visits.
type Options struct {
	// IncludeFinalEpisode also visits the last episode. By default the last
	// episode is skipped, matching the output of earlier releases.
	IncludeFinalEpisode bool
}

// Extract reads the final state of each visited episode. Coordinates are taken
// from the last visited episode only, values accumulate one row per episode.
func Extract(traj core.Trajectory, coordPath, valuePath string, opts Options) (core.Extraction, error) {
	var out core.Extraction

	if len(traj) == 0 {
		return out, fmt.Errorf("%w: no episodes", core.ErrEmptyTrajectory)
	}

	visited := len(traj) - 1
	if opts.IncludeFinalEpisode {
		visited = len(traj)
	}

	for i := 0; i < visited; i++ {
		episode := traj[i]
		if len(episode) == 0 {
			return out, fmt.Errorf("%w: episode %d has no states", core.ErrEmptyTrajectory, i)
		}
		finalState := episode[len(episode)-1]

		rawCoords, err := util.ResolvePath(finalState, coordPath)
		if err != nil {
			return out, fmt.Errorf("episode %d coordinates: %w", i, err)
		}
		coords, err := ToCoordinates(rawCoords)
		if err != nil {
			return out, fmt.Errorf("episode %d coordinates: %w", i, err)
		}
		// later episodes overwrite earlier ones
		out.Coords = coords

		rawValues, err := util.ResolvePath(finalState, valuePath)
		if err != nil {
			return out, fmt.Errorf("episode %d values: %w", i, err)
		}
		values, err := Flatten(rawValues)
		if err != nil {
			return out, fmt.Errorf("episode %d values: %w", i, err)
		}
		out.Values = append(out.Values, values)
	}

	if !hasState(traj) {
		return out, fmt.Errorf("%w: no episode holds a state", core.ErrEmptyTrajectory)
	}

	// every row has to line up with the surviving coordinates
	for i, row := range out.Values {
		if len(row) != len(out.Coords) {
			return out, fmt.Errorf("%w: episode %d has %d values for %d entities",
				core.ErrShapeMismatch, i, len(row), len(out.Coords))
		}
	}

	return out, nil
}

func hasState(traj core.Trajectory) bool {
	for _, episode := range traj {
		if len(episode) > 0 {
			return true
		}
	}
	return false
}

// ToCoordinates converts a resolved position field into [x, y] pairs.
// Each entry must hold at least two numbers; anything after the second is ignored.
func ToCoordinates(v any) ([][2]float64, error) {
	if !util.IsSequence(v) {
		return nil, fmt.Errorf("%w: coordinates must be a sequence, got %T", core.ErrShapeMismatch, v)
	}
	entries := util.Elements(v)
	coords := make([][2]float64, len(entries))
	for i, entry := range entries {
		if !util.IsSequence(entry) {
			return nil, fmt.Errorf("%w: coordinate %d is %T, not a pair", core.ErrShapeMismatch, i, entry)
		}
		pair := util.Elements(entry)
		if len(pair) < 2 {
			return nil, fmt.Errorf("%w: coordinate %d has %d values", core.ErrShapeMismatch, i, len(pair))
		}
		for axis := 0; axis < 2; axis++ {
			f, ok := util.ToFloat64(pair[axis])
			if !ok {
				return nil, fmt.Errorf("%w: coordinate %d axis %d is %T", core.ErrShapeMismatch, i, axis, pair[axis])
			}
			coords[i][axis] = f
		}
	}
	return coords, nil
}

// Flatten turns a scalar or an arbitrarily nested sequence of scalars into a
// flat row, depth first.
func Flatten(v any) ([]float64, error) {
	var out []float64
	if err := flatten(v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(v any, out *[]float64) error {
	if util.IsSequence(v) {
		for _, child := range util.Elements(v) {
			if err := flatten(child, out); err != nil {
				return err
			}
		}
		return nil
	}
	f, ok := util.ToFloat64(v)
	if !ok {
		return fmt.Errorf("%w: non-numeric value %v (%T)", core.ErrShapeMismatch, v, v)
	}
	*out = append(*out, f)
	return nil
}
