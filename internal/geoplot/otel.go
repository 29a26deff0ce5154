package geoplot

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/OCAP2/geoplot/internal/geoplot"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments are the metrics recorded per render. They are no-ops unless a
// global MeterProvider has been installed.
type instruments struct {
	renders  metric.Int64Counter
	features metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments() (*instruments, error) {
	m := meter()
	var (
		in  instruments
		err error
	)

	in.renders, err = m.Int64Counter(
		"geoplot.renders",
		metric.WithDescription("Renders attempted, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating renders counter: %w", err)
	}

	in.features, err = m.Int64Counter(
		"geoplot.features",
		metric.WithDescription("GeoJSON features emitted"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating features counter: %w", err)
	}

	in.duration, err = m.Float64Histogram(
		"geoplot.render.duration",
		metric.WithDescription("Time spent in a render"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &in, nil
}
