package main

import (
	"fmt"
	"io"
	"strings"

	"voicedetect/common/models"
)

func printResponse(w io.Writer, source string, r *models.DetectionResponse) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "File:             %s\n", source)
	fmt.Fprintf(w, "Classification:   %s\n", r.Classification)
	fmt.Fprintf(w, "Confidence:       %.2f%%\n", r.Confidence*100)
	fmt.Fprintf(w, "Language:         %s\n", r.Language)
	fmt.Fprintf(w, "Processing time:  %.2fms\n", r.ProcessingTimeMs)
	fmt.Fprintf(w, "Audio duration:   %.2fs\n", r.AudioDurationSeconds)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, "Primary indicators:")
	for _, ind := range r.Explanation.PrimaryIndicators {
		fmt.Fprintf(w, "  - %s\n", ind)
	}
	fmt.Fprintf(w, "Analysis: %s\n", r.Explanation.LanguageSpecificAnalysis)

	f := r.Explanation.ConfidenceFactors
	fmt.Fprintln(w, "Confidence factors:")
	fmt.Fprintf(w, "  - spectral_analysis:  %.1f%%\n", f.SpectralAnalysis*100)
	fmt.Fprintf(w, "  - prosodic_features:  %.1f%%\n", f.ProsodicFeatures*100)
	fmt.Fprintf(w, "  - artifact_detection: %.1f%%\n", f.ArtifactDetection*100)
}
