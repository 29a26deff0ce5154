package geo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/OCAP2/geoplot/internal/timeline"
	"github.com/OCAP2/geoplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func TestBuildCollections(t *testing.T) {
	ex := core.Extraction{
		Coords: [][2]float64{{11, 21}, {31, 41}},
		Values: [][]float64{{1, 2}, {3, 4}},
	}
	timestamps := timeline.Generate(testStart, 3, 60)

	collections, err := BuildCollections(ex, timestamps, Identity)
	require.NoError(t, err)

	// one collection per entity
	require.Len(t, collections, 2)

	for i, c := range collections {
		assert.Equal(t, "FeatureCollection", c.Type)
		// truncated to the shorter of values and timestamps
		require.Len(t, c.Features, 2)

		for ti, f := range c.Features {
			assert.Equal(t, "Feature", f.Type)

			coords, ok := f.Geometry.Coordinates()
			require.True(t, ok)
			assert.Equal(t, ex.Coords[i][1], coords.X)
			assert.Equal(t, ex.Coords[i][0], coords.Y)

			assert.Equal(t, ex.Values[ti][i], f.Properties.Value)
			assert.Equal(t, timeline.Format(timestamps[ti]), f.Properties.Time)
		}
	}

	assert.Equal(t, 1.0, collections[0].Features[0].Properties.Value)
	assert.Equal(t, 3.0, collections[0].Features[1].Properties.Value)
	assert.Equal(t, 4, CountFeatures(collections))
}

func TestBuildCollections_FewerTimestampsThanSteps(t *testing.T) {
	ex := core.Extraction{
		Coords: [][2]float64{{1, 2}},
		Values: [][]float64{{1}, {2}, {3}},
	}

	collections, err := BuildCollections(ex, timeline.Generate(testStart, 2, 1), Identity)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Len(t, collections[0].Features, 2)
}

func TestBuildCollections_TimesIncrease(t *testing.T) {
	ex := core.Extraction{
		Coords: [][2]float64{{1, 2}},
		Values: [][]float64{{1}, {2}, {3}, {4}},
	}

	collections, err := BuildCollections(ex, timeline.Generate(testStart, 4, 30), Identity)
	require.NoError(t, err)

	features := collections[0].Features
	for k := 1; k < len(features); k++ {
		prev, err := time.Parse(time.RFC3339, features[k-1].Properties.Time)
		require.NoError(t, err)
		cur, err := time.Parse(time.RFC3339, features[k].Properties.Time)
		require.NoError(t, err)
		assert.True(t, cur.After(prev))
	}
}

func TestBuildCollections_NoEntities(t *testing.T) {
	collections, err := BuildCollections(core.Extraction{}, timeline.Generate(testStart, 3, 60), Identity)
	require.NoError(t, err)
	assert.Empty(t, collections)
}

func TestBuildCollections_ShortRow(t *testing.T) {
	ex := core.Extraction{
		Coords: [][2]float64{{1, 2}, {3, 4}},
		Values: [][]float64{{1}},
	}

	_, err := BuildCollections(ex, timeline.Generate(testStart, 1, 60), Identity)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestFeatureCollection_JSON(t *testing.T) {
	ex := core.Extraction{
		Coords: [][2]float64{{11, 21}},
		Values: [][]float64{{1.5}},
	}

	collections, err := BuildCollections(ex, timeline.Generate(testStart, 1, 60), Identity)
	require.NoError(t, err)

	data, err := json.Marshal(collections)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)

	assert.Equal(t, "FeatureCollection", decoded[0]["type"])
	features := decoded[0]["features"].([]any)
	require.Len(t, features, 1)

	feature := features[0].(map[string]any)
	assert.Equal(t, "Feature", feature["type"])
	assert.Equal(t, map[string]any{
		"type":        "Point",
		"coordinates": []any{21.0, 11.0},
	}, feature["geometry"])
	assert.Equal(t, map[string]any{
		"value": 1.5,
		"time":  "2024-01-15T10:30:00+00:00",
	}, feature["properties"])
}

func TestFeatureCollection_EmptyFeaturesIsArray(t *testing.T) {
	ex := core.Extraction{Coords: [][2]float64{{1, 2}}}

	collections, err := BuildCollections(ex, nil, Identity)
	require.NoError(t, err)

	data, err := json.Marshal(collections[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}
