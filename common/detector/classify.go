package detector

import "math"

// Label is the verdict of the classification engine.
type Label string

const (
	AIGenerated Label = "AI_GENERATED"
	Human       Label = "HUMAN"
)

// aiThreshold is the share of the draw range mapped to AIGenerated. It is a
// tunable placeholder, not a learned parameter.
const aiThreshold = 0.6

// Band is a half-open confidence range [Min, Min+Span). The span is kept as
// its own constant because Max-Min does not round-trip in float64.
type Band struct {
	Min, Span float64
}

// Max returns the exclusive upper bound.
func (b Band) Max() float64 { return b.Min + b.Span }

// Contains reports whether v lies in the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v < b.Max()
}

// Bands holds the confidence range for each label.
var Bands = map[Label]Band{
	AIGenerated: {Min: 0.75, Span: 0.23},
	Human:       {Min: 0.70, Span: 0.25},
}

// Classification is a label with its confidence.
type Classification struct {
	Label      Label
	Confidence float64
}

// Classify consumes two draws from src: the label discriminator and the
// confidence offset. It never fails.
func Classify(src Source) Classification {
	label := Human
	if src.Float64() < aiThreshold {
		label = AIGenerated
	}
	band := Bands[label]
	conf := round(scale(src.Float64(), band.Min, band.Span), 4)
	// Rounding may land on the open upper bound.
	if conf >= band.Max() {
		conf = round(band.Max()-1e-4, 4)
	}
	return Classification{Label: label, Confidence: conf}
}

// scale maps a draw d in [0,1) onto [lo, lo+span). The explicit conversion
// stops the compiler from fusing the multiply and add, which would make
// results differ between architectures.
func scale(d, lo, span float64) float64 {
	return lo + float64(d*span)
}

// round rounds v half away from zero to the given number of decimals.
func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
