package ports

import "time"

// MetricsRecorder receives dataset lifecycle measurements.
type MetricsRecorder interface {
	ObserveLoad(success bool, rows int, duration time.Duration)
	ObserveExport(format string, rows int)
}

// NopMetrics discards every measurement.
type NopMetrics struct{}

func (NopMetrics) ObserveLoad(bool, int, time.Duration) {}
func (NopMetrics) ObserveExport(string, int)            {}
