// Package timeline generates the timestamps a trajectory is played back over.
package timeline

import (
	"math"
	"time"
)

// ISO8601 renders UTC times as 2024-01-02T03:04:05.123456+00:00.
const ISO8601 = "2006-01-02T15:04:05.999999-07:00"

// Generate returns count timestamps starting at start and spaced step seconds apart.
func Generate(start time.Time, count int, step float64) []time.Time {
	if count <= 0 {
		return nil
	}
	timestamps := make([]time.Time, count)
	for k := range timestamps {
		offset := time.Duration(math.Round(float64(k) * step * float64(time.Second)))
		timestamps[k] = start.Add(offset)
	}
	return timestamps
}

// Format renders t as an ISO-8601 string in UTC.
func Format(t time.Time) string {
	return t.UTC().Format(ISO8601)
}

// Bounds returns the first and last timestamp of a series.
func Bounds(timestamps []time.Time) (start, stop time.Time, ok bool) {
	if len(timestamps) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return timestamps[0], timestamps[len(timestamps)-1], true
}
