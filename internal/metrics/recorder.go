// Package metrics defines observability hooks for generation runs.
package metrics

import "time"

// ResultLabel enumerates per-document result categories for counters.
type ResultLabel string

const (
	ResultGenerated ResultLabel = "generated"
	ResultCached    ResultLabel = "cached"
	ResultFailed    ResultLabel = "failed"
)

// Recorder defines observability hooks for generation metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe on
// the NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveDocumentDuration(d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncDocumentResult(result ResultLabel)
	SetDocumentsDiscovered(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocumentDuration(time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)      {}
func (NoopRecorder) IncDocumentResult(ResultLabel)         {}
func (NoopRecorder) SetDocumentsDiscovered(int)            {}
