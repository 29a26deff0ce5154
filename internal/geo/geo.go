package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/OCAP2/geoplot/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// GEO POINTS
// GeoJSON positions are always WGS84 longitude/latitude (EPSG:4326).
// Simulations that record positions in another CRS are reprojected on the way out.

// ErrInvalidCoordinates is returned when a position cannot be turned into a point
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Transformer maps a position from the source CRS to longitude and latitude.
type Transformer func(x, y float64) (lon, lat float64)

// Identity leaves positions untouched.
func Identity(x, y float64) (float64, float64) {
	return x, y
}

// NewTransformer returns a Transformer from the given EPSG code to EPSG:4326.
func NewTransformer(srid int) (Transformer, error) {
	if srid == 0 || srid == core.DefaultSRID {
		return Identity, nil
	}

	epsg := wgs84.EPSG()
	f := epsg.Transform(srid, core.DefaultSRID)

	// unknown codes do not fail up front, they only produce garbage
	if lon, lat, _ := f(0, 0, 0); math.IsNaN(lon) || math.IsNaN(lat) {
		return nil, fmt.Errorf("%w: unsupported source SRID %d", core.ErrInvalidOptions, srid)
	}

	return func(x, y float64) (float64, float64) {
		lon, lat, _ := f(x, y, 0)
		return lon, lat
	}, nil
}

// NewPoint creates a 2D GeoJSON point from a longitude and latitude
func NewPoint(lon, lat float64) (geom.Point, error) {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return geom.NewEmptyPoint(geom.DimXY), ErrInvalidCoordinates
	}
	pt, err := geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: lon, Y: lat},
			Type: geom.DimXY,
		},
	)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXY), fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return pt, nil
}

// PointFromPair builds the point for an extracted [x, y] pair. The pair is
// stored the other way round from GeoJSON, so the axes are swapped before the
// position is transformed.
func PointFromPair(pair [2]float64, transform Transformer) (geom.Point, error) {
	if transform == nil {
		transform = Identity
	}
	lon, lat := transform(pair[1], pair[0])
	return NewPoint(lon, lat)
}
