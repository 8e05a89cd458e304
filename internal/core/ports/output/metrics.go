package ports

import "time"

// Upload outcomes reported to IngestMetrics.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// IngestMetrics receives observations from the ingest and deletion paths.
type IngestMetrics interface {
	ObserveUpload(outcome string, files int)
	ObserveRender(tier string, d time.Duration)
	ObserveArtifactDelete(outcome string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) ObserveUpload(string, int) {}
func (NopMetrics) ObserveRender(string, time.Duration) {}
func (NopMetrics) ObserveArtifactDelete(string) {}
