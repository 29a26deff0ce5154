package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/OCAP2/geoplot/internal/geo"
	"github.com/OCAP2/geoplot/pkg/core"
	"github.com/klauspost/compress/gzip"
)

// GeoJSONPath returns the GeoJSON output path for a simulation name.
func GeoJSONPath(dir, name string, compress bool) string {
	path := filepath.Join(dir, name+".geojson")
	if compress {
		path += ".gz"
	}
	return path
}

// HTMLPath returns the HTML output path for a simulation name.
func HTMLPath(dir, name string) string {
	return filepath.Join(dir, name+".html")
}

// WriteGeoJSON writes the collections as an indented JSON array.
// With compress set the output is gzipped.
func WriteGeoJSON(path string, collections []geo.FeatureCollection, compress bool) error {
	if collections == nil {
		collections = []geo.FeatureCollection{}
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %v", core.ErrIO, err)
	}
	defer f.Close()

	var w io.Writer = f
	var gzWriter *gzip.Writer
	if compress {
		gzWriter = gzip.NewWriter(f)
		w = gzWriter
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(collections); err != nil {
		return fmt.Errorf("%w: failed to encode geojson: %v", core.ErrIO, err)
	}

	if gzWriter != nil {
		if err := gzWriter.Close(); err != nil {
			return fmt.Errorf("%w: failed to finish gzip stream: %v", core.ErrIO, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close file: %v", core.ErrIO, err)
	}
	return nil
}

// WriteHTML writes the rendered page.
func WriteHTML(path, html string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("%w: failed to write html: %v", core.ErrIO, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %v", core.ErrIO, err)
	}
	return nil
}
