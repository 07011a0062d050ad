package models

import "time"

// DetectionRecord represents a detection that has been written to the audit index.
// The audio itself is never stored; the fingerprint identifies it. ID is
// assigned by the server and is the document id; RequestID is whatever the
// request carried and may repeat.
type DetectionRecord struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"request_id,omitempty"`
	Fingerprint      string    `json:"fingerprint"`
	Classification   string    `json:"classification"`
	Confidence       float64   `json:"confidence"`
	Language         string    `json:"language"`
	DurationSeconds  float64   `json:"audio_duration_seconds"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	ModelVersion     string    `json:"model_version"`
	ClientIP         string    `json:"client_ip,omitempty"`
	DetectedAt       time.Time `json:"detected_at"`
}
