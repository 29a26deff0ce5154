package trajectory

import (
	"testing"

	"github.com/OCAP2/geoplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func citizenState(coords []any, values []any) core.State {
	return map[string]any{
		"agents": map[string]any{
			"citizens": map[string]any{
				"coordinates": coords,
				"infected":    values,
			},
		},
	}
}

// threeEpisodes returns a trajectory whose final episode must never be read.
func threeEpisodes() core.Trajectory {
	return core.Trajectory{
		{citizenState(
			[]any{[]any{10.0, 20.0}, []any{30.0, 40.0}},
			[]any{1.0, 2.0},
		)},
		{citizenState(
			[]any{[]any{11.0, 21.0}, []any{31.0, 41.0}},
			[]any{3.0, 4.0},
		)},
		{citizenState(
			[]any{[]any{12.0, 22.0}, []any{32.0, 42.0}},
			[]any{5.0, 6.0},
		)},
	}
}

const (
	coordPath = "agents/citizens/coordinates"
	valuePath = "agents/citizens/infected"
)

func TestExtract_SkipsFinalEpisode(t *testing.T) {
	ex, err := Extract(threeEpisodes(), coordPath, valuePath, Options{})
	require.NoError(t, err)

	assert.Equal(t, [][2]float64{{11, 21}, {31, 41}}, ex.Coords)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, ex.Values)
	assert.Equal(t, 2, ex.EntityCount())
}

func TestExtract_IncludeFinalEpisode(t *testing.T) {
	ex, err := Extract(threeEpisodes(), coordPath, valuePath, Options{IncludeFinalEpisode: true})
	require.NoError(t, err)

	assert.Equal(t, [][2]float64{{12, 22}, {32, 42}}, ex.Coords)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, ex.Values)
}

func TestExtract_UsesLastStateOfEpisode(t *testing.T) {
	traj := core.Trajectory{
		{
			citizenState([]any{[]any{0.0, 0.0}}, []any{100.0}),
			citizenState([]any{[]any{1.0, 2.0}}, []any{7.0}),
		},
		{citizenState([]any{[]any{9.0, 9.0}}, []any{9.0})},
	}

	ex, err := Extract(traj, coordPath, valuePath, Options{})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{1, 2}}, ex.Coords)
	assert.Equal(t, [][]float64{{7}}, ex.Values)
}

func TestExtract_SingleEpisodeVisitsNothing(t *testing.T) {
	traj := threeEpisodes()[:1]

	ex, err := Extract(traj, coordPath, valuePath, Options{})
	require.NoError(t, err)
	assert.Empty(t, ex.Coords)
	assert.Empty(t, ex.Values)
}

func TestExtract_GoTypedState(t *testing.T) {
	state := map[string]any{
		"coordinates": [][2]int16{{10, 20}, {30, 40}},
		"counts":      []uint8{7, 9},
	}
	traj := core.Trajectory{{state}, {}}

	ex, err := Extract(traj, "coordinates", "counts", Options{})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{10, 20}, {30, 40}}, ex.Coords)
	assert.Equal(t, [][]float64{{7, 9}}, ex.Values)
}

func TestExtract_FlattensMatrixValues(t *testing.T) {
	traj := core.Trajectory{
		{citizenState(
			[]any{[]any{1.0, 2.0}, []any{3.0, 4.0}},
			[]any{[]any{0.5}, []any{0.25}},
		)},
		{},
	}

	ex, err := Extract(traj, coordPath, valuePath, Options{})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 0.25}}, ex.Values)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		traj    core.Trajectory
		coords  string
		values  string
		wantErr error
	}{
		{
			name:    "no episodes",
			traj:    core.Trajectory{},
			coords:  coordPath,
			values:  valuePath,
			wantErr: core.ErrEmptyTrajectory,
		},
		{
			name:    "only episode has no states",
			traj:    core.Trajectory{{}},
			coords:  coordPath,
			values:  valuePath,
			wantErr: core.ErrEmptyTrajectory,
		},
		{
			name:    "episode without states",
			traj:    core.Trajectory{{}, {}},
			coords:  coordPath,
			values:  valuePath,
			wantErr: core.ErrEmptyTrajectory,
		},
		{
			name:    "missing coordinate path",
			traj:    threeEpisodes(),
			coords:  "agents/soldiers/coordinates",
			values:  valuePath,
			wantErr: core.ErrPathNotFound,
		},
		{
			name:    "missing value path",
			traj:    threeEpisodes(),
			coords:  coordPath,
			values:  "agents/citizens/recovered",
			wantErr: core.ErrPathNotFound,
		},
		{
			name: "value count differs from entity count",
			traj: core.Trajectory{
				{citizenState([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}}, []any{1.0, 2.0, 3.0})},
				{},
			},
			coords:  coordPath,
			values:  valuePath,
			wantErr: core.ErrShapeMismatch,
		},
		{
			name: "earlier row shorter than final coordinates",
			traj: core.Trajectory{
				{citizenState([]any{[]any{1.0, 2.0}}, []any{1.0})},
				{citizenState([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}}, []any{1.0, 2.0})},
				{},
			},
			coords:  coordPath,
			values:  valuePath,
			wantErr: core.ErrShapeMismatch,
		},
		{
			name: "coordinate is not a pair",
			traj: core.Trajectory{
				{citizenState([]any{[]any{1.0}}, []any{1.0})},
				{},
			},
			coords:  coordPath,
			values:  valuePath,
			wantErr: core.ErrShapeMismatch,
		},
		{
			name: "non-numeric value",
			traj: core.Trajectory{
				{citizenState([]any{[]any{1.0, 2.0}}, []any{"high"})},
				{},
			},
			coords:  coordPath,
			values:  valuePath,
			wantErr: core.ErrShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.traj, tt.coords, tt.values, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	traj := threeEpisodes()

	first, err := Extract(traj, coordPath, valuePath, Options{})
	require.NoError(t, err)
	second, err := Extract(traj, coordPath, valuePath, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestToCoordinates(t *testing.T) {
	coords, err := ToCoordinates([][]float64{{1, 2, 3}, {4, 5}})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{1, 2}, {4, 5}}, coords)

	_, err = ToCoordinates(42.0)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)

	_, err = ToCoordinates([]any{[]any{"a", "b"}})
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []float64
	}{
		{"scalar", 3.0, []float64{3}},
		{"flat", []any{1.0, 2.0}, []float64{1, 2}},
		{"matrix", []any{[]any{1.0, 2.0}, []any{3.0}}, []float64{1, 2, 3}},
		{"typed matrix", [][]float64{{1}, {2}}, []float64{1, 2}},
		{"bools", []any{true, false}, []float64{1, 0}},
		{"empty", []any{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flatten(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
