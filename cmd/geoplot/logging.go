package main

import (
	"fmt"
	"io"
	"os"

	"github.com/OCAP2/geoplot/internal/config"
	"github.com/OCAP2/geoplot/internal/geoplot"
	"github.com/OCAP2/geoplot/internal/logging"
)

// setupLogging builds the logger selected by logFormat. The returned func
// closes any log file that was opened.
func setupLogging(cfg config.LoggingConfig, name string) (geoplot.Logger, func(), error) {
	closeFn := func() {}

	var file io.Writer
	if cfg.LogsDir != "" {
		f, err := logging.OpenLogFile(cfg.LogsDir, name, SessionStartTime)
		if err != nil {
			return nil, closeFn, err
		}
		file = f
		closeFn = func() { _ = f.Close() }
	}

	switch cfg.Format {
	case "json":
		w := io.Writer(os.Stderr)
		if file != nil {
			w = io.MultiWriter(w, file)
		}
		if cfg.GraylogEnabled {
			gw, err := logging.NewGraylogWriter(cfg.GraylogAddress)
			if err != nil {
				closeFn()
				return nil, func() {}, fmt.Errorf("failed to connect to graylog: %w", err)
			}
			w = io.MultiWriter(w, gw)
		}
		return logging.NewZerologAdapter(logging.NewZerolog(w, cfg.Level)), closeFn, nil

	case "text", "":
		manager := logging.NewSlogManager()
		manager.Setup(os.Stderr, file, cfg.Level)
		return manager.Logger(), closeFn, nil

	default:
		closeFn()
		return nil, func() {}, fmt.Errorf("unknown logFormat %q, want text or json", cfg.Format)
	}
}
