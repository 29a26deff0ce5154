package geo

import (
	"fmt"
	"time"

	"github.com/OCAP2/geoplot/internal/timeline"
	"github.com/OCAP2/geoplot/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// FeatureCollection holds the time series of a single entity
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one sample of an entity's time series
type Feature struct {
	Type       string     `json:"type"`
	Geometry   geom.Point `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Properties carries the sampled value and when it was sampled
type Properties struct {
	Value float64 `json:"value"`
	Time  string  `json:"time"`
}

// BuildCollections creates one FeatureCollection per entity. Value rows are
// paired with timestamps by position; whichever of the two is longer is
// truncated to the length of the other.
func BuildCollections(ex core.Extraction, timestamps []time.Time, transform Transformer) ([]FeatureCollection, error) {
	steps := min(len(ex.Values), len(timestamps))

	times := make([]string, steps)
	for t := 0; t < steps; t++ {
		times[t] = timeline.Format(timestamps[t])
	}

	collections := make([]FeatureCollection, 0, len(ex.Coords))
	for i, pair := range ex.Coords {
		point, err := PointFromPair(pair, transform)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}

		features := make([]Feature, 0, steps)
		for t := 0; t < steps; t++ {
			row := ex.Values[t]
			if i >= len(row) {
				return nil, fmt.Errorf("%w: step %d has %d values, need entity %d",
					core.ErrShapeMismatch, t, len(row), i)
			}
			features = append(features, Feature{
				Type:     "Feature",
				Geometry: point,
				Properties: Properties{
					Value: row[i],
					Time:  times[t],
				},
			})
		}

		collections = append(collections, FeatureCollection{
			Type:     "FeatureCollection",
			Features: features,
		})
	}

	return collections, nil
}

// CountFeatures returns the total number of features across collections.
func CountFeatures(collections []FeatureCollection) int {
	n := 0
	for _, c := range collections {
		n += len(c.Features)
	}
	return n
}
