package models

import "time"

// DetectionRequest represents a request to classify an audio clip
type DetectionRequest struct {
	AudioBase64 string `json:"audio_base64" binding:"required" example:"//uQZAAAAAAAAAAAAAAAAAAAAAAA"`
	Language    string `json:"language" example:"english"`
}

// ConfidenceFactors holds the presentational sub-scores of a detection
type ConfidenceFactors struct {
	SpectralAnalysis  float64 `json:"spectral_analysis"`
	ProsodicFeatures  float64 `json:"prosodic_features"`
	ArtifactDetection float64 `json:"artifact_detection"`
}

// Explanation describes why a clip was classified the way it was
type Explanation struct {
	PrimaryIndicators        []string          `json:"primary_indicators"`
	LanguageSpecificAnalysis string            `json:"language_specific_analysis"`
	ConfidenceFactors        ConfidenceFactors `json:"confidence_factors"`
}

// DetectionResponse represents the result of a detection
type DetectionResponse struct {
	Classification       string      `json:"classification" enums:"AI_GENERATED,HUMAN"`
	Confidence           float64     `json:"confidence"`
	Language             string      `json:"language"`
	ProcessingTimeMs     float64     `json:"processing_time_ms"`
	AudioDurationSeconds float64     `json:"audio_duration_seconds"`
	Explanation          Explanation `json:"explanation"`
	Fingerprint          string      `json:"fingerprint"`
	ModelVersion         string      `json:"model_version"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status             string    `json:"status"`
	Timestamp          time.Time `json:"timestamp"`
	SupportedLanguages []string  `json:"supported_languages"`
}

// ServiceInfo represents the root endpoint payload
type ServiceInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}
