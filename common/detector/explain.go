package detector

// Indicator catalogs, one per label. Order matters: sampling picks by index.
var (
	aiIndicators = []string{
		"Unnatural pitch consistency detected",
		"Spectral anomalies in high-frequency range",
		"Irregular breathing pattern intervals",
		"Phase coherence artifacts present",
		"Prosody smoothness exceeds human baseline",
	}
	humanIndicators = []string{
		"Natural voice tremor patterns detected",
		"Organic breathing sounds present",
		"Micro-variations in pitch consistent with human speech",
		"Formant transitions show natural articulatory movement",
		"Background noise characteristics indicate real recording",
	}
)

// Catalog returns a copy of the indicator catalog for label.
func Catalog(label Label) []string {
	src := humanIndicators
	if label == AIGenerated {
		src = aiIndicators
	}
	return append([]string(nil), src...)
}

const (
	minIndicators = 2
	maxIndicators = 3
)

// factorRange is a closed presentational range [min, min+span].
type factorRange struct {
	min, span float64
}

var (
	spectralRange = factorRange{min: 0.70, span: 0.25}
	prosodicRange = factorRange{min: 0.65, span: 0.27}
	artifactRange = factorRange{min: 0.70, span: 0.28}
)

// ConfidenceFactors are presentational sub-scores. They do not feed back into
// the classification.
type ConfidenceFactors struct {
	SpectralAnalysis  float64
	ProsodicFeatures  float64
	ArtifactDetection float64
}

// Explanation is the human-readable justification of a classification.
type Explanation struct {
	Indicators []string
	Caption    string
	Factors    ConfidenceFactors
}

// Explain consumes the indicator count, the indicator sample and the three
// sub-score draws from src, after [Classify] has taken its two.
func Explain(src Source, label Label, lang Language) Explanation {
	catalog := Catalog(label)
	k := minIndicators + int(float64(src.Float64()*(maxIndicators-minIndicators+1)))
	if k > maxIndicators {
		k = maxIndicators
	}

	// Partial Fisher-Yates: position i takes a uniform pick from the
	// not-yet-chosen tail.
	idx := make([]int, len(catalog))
	for i := range idx {
		idx[i] = i
	}
	picked := make([]string, k)
	for i := 0; i < k; i++ {
		remaining := len(idx) - i
		j := i + min(int(float64(src.Float64()*float64(remaining))), remaining-1)
		idx[i], idx[j] = idx[j], idx[i]
		picked[i] = catalog[idx[i]]
	}

	return Explanation{
		Indicators: picked,
		Caption:    lang.Title() + " phonetic patterns analyzed",
		Factors: ConfidenceFactors{
			SpectralAnalysis:  round(scale(src.Float64(), spectralRange.min, spectralRange.span), 3),
			ProsodicFeatures:  round(scale(src.Float64(), prosodicRange.min, prosodicRange.span), 3),
			ArtifactDetection: round(scale(src.Float64(), artifactRange.min, artifactRange.span), 3),
		},
	}
}
