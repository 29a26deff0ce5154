// Package render fills the Cesium page template and writes the output files.
package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/OCAP2/geoplot/internal/geo"
	"github.com/OCAP2/geoplot/internal/timeline"
	"github.com/OCAP2/geoplot/pkg/core"
	"github.com/valyala/fasttemplate"
)

var page = fasttemplate.New(pageTemplate, startTag, endTag)

// Render returns the HTML page for the given collections.
// The access token and visualization type are inserted verbatim; a token
// containing a single quote breaks the page script.
func Render(opts core.RenderOptions, start, stop time.Time, collections []geo.FeatureCollection) (string, error) {
	if collections == nil {
		collections = []geo.FeatureCollection{}
	}
	data, err := json.Marshal(collections)
	if err != nil {
		return "", fmt.Errorf("failed to marshal collections: %w", err)
	}

	return page.ExecuteString(map[string]any{
		tagAccessToken: opts.CesiumToken,
		tagStartTime:   timeline.Format(start),
		tagStopTime:    timeline.Format(stop),
		tagData:        data,
		tagVisualType:  opts.VisualizationType,
	}), nil
}
