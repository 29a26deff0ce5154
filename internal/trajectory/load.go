package trajectory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OCAP2/geoplot/pkg/core"
	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/gjson"
)

// Load reads a trajectory from a JSON file. Files ending in .gz are
// decompressed first. key is an optional gjson path selecting the trajectory
// inside a larger document, e.g. "state_trajectory".
func Load(path, key string) (core.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trajectory: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip trajectory: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read trajectory: %w", err)
	}
	return Parse(data, key)
}

// Parse decodes a trajectory from JSON. The selected value must be an array of
// episodes, each an array of states.
func Parse(data []byte, key string) (core.Trajectory, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("trajectory is not valid JSON")
	}

	raw := data
	if key != "" {
		res := gjson.GetBytes(data, key)
		if !res.Exists() {
			return nil, fmt.Errorf("%w: trajectory key %q", core.ErrPathNotFound, key)
		}
		raw = []byte(res.Raw)
	}

	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: trajectory must be an array of episodes", core.ErrShapeMismatch)
	}
	var shapeErr error
	n := 0
	root.ForEach(func(_, episode gjson.Result) bool {
		if !episode.IsArray() {
			shapeErr = fmt.Errorf("%w: episode %d is not an array of states", core.ErrShapeMismatch, n)
			return false
		}
		n++
		return true
	})
	if shapeErr != nil {
		return nil, shapeErr
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var traj core.Trajectory
	if err := dec.Decode(&traj); err != nil {
		return nil, fmt.Errorf("failed to decode trajectory: %w", err)
	}
	return traj, nil
}
