package models

import (
	"math"
	"time"

	"github.com/google/uuid"

	"voicedetect/common/detector"
)

// NewDetectionResponse converts a pipeline result into its wire form.
// Durations are rounded to two decimals.
func NewDetectionResponse(r *detector.Result) DetectionResponse {
	exp := r.Explanation
	return DetectionResponse{
		Classification:       string(r.Label),
		Confidence:           r.Confidence,
		Language:             string(r.Language),
		ProcessingTimeMs:     round2(float64(r.ProcessingTime) / float64(time.Millisecond)),
		AudioDurationSeconds: round2(r.DurationSeconds),
		Explanation: Explanation{
			PrimaryIndicators:        append([]string(nil), exp.Indicators...),
			LanguageSpecificAnalysis: exp.Caption,
			ConfidenceFactors: ConfidenceFactors{
				SpectralAnalysis:  exp.Factors.SpectralAnalysis,
				ProsodicFeatures:  exp.Factors.ProsodicFeatures,
				ArtifactDetection: exp.Factors.ArtifactDetection,
			},
		},
		Fingerprint:  r.Fingerprint.Hex(),
		ModelVersion: r.AlgorithmVersion,
	}
}

// NewDetectionRecord builds the audit document for a detection under a
// freshly generated id.
func NewDetectionRecord(requestID, clientIP string, resp DetectionResponse, at time.Time) DetectionRecord {
	return DetectionRecord{
		ID:               uuid.NewString(),
		RequestID:        requestID,
		Fingerprint:      resp.Fingerprint,
		Classification:   resp.Classification,
		Confidence:       resp.Confidence,
		Language:         resp.Language,
		DurationSeconds:  resp.AudioDurationSeconds,
		ProcessingTimeMs: resp.ProcessingTimeMs,
		ModelVersion:     resp.ModelVersion,
		ClientIP:         clientIP,
		DetectedAt:       at.UTC(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
