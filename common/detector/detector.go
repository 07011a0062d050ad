// Package detector implements the voice classification pipeline: payload
// fingerprinting, a fingerprint-seeded deterministic generator, label and
// confidence derivation, and explanation synthesis.
//
// The pipeline is a deterministic stand-in for model inference. Identical
// payloads always produce identical verdicts, so results can be reproduced
// and regression-tested; they carry no statistical meaning.
package detector

import (
	"encoding/base64"
	"strings"
	"time"
)

// AudioPayload is one decoded detection request.
type AudioPayload struct {
	Audio    []byte
	Language Language
}

// Result is the assembled outcome of a detection.
type Result struct {
	Classification
	Language         Language
	DurationSeconds  float64
	ProcessingTime   time.Duration
	Explanation      Explanation
	Fingerprint      Fingerprint
	AlgorithmVersion string
}

// Detector runs the pipeline. It holds no per-request state and is safe for
// concurrent use.
type Detector struct {
	languages map[Language]bool
	now       func() time.Time
}

// Option customises a [Detector].
type Option func(*Detector)

// WithLanguages restricts the accepted languages to a subset of
// [SupportedLanguages]. Unknown entries are ignored.
func WithLanguages(langs ...Language) Option {
	return func(d *Detector) {
		d.languages = make(map[Language]bool, len(langs))
		for _, l := range langs {
			if l.IsValid() {
				d.languages[l] = true
			}
		}
	}
}

// WithClock replaces the wall clock used to measure processing time.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// New returns a Detector accepting every supported language.
func New(opts ...Option) *Detector {
	d := &Detector{now: time.Now}
	WithLanguages(SupportedLanguages...)(d)
	for _, o := range opts {
		o(d)
	}
	return d
}

// Languages returns the accepted languages in advertised order.
func (d *Detector) Languages() []Language {
	out := make([]Language, 0, len(d.languages))
	for _, l := range SupportedLanguages {
		if d.languages[l] {
			out = append(out, l)
		}
	}
	return out
}

// Detect validates p and runs it through the pipeline. Errors are either
// [*FormatError] or [*UnsupportedLanguageError]; no partial result is
// returned with an error.
func (d *Detector) Detect(p AudioPayload) (*Result, error) {
	start := d.now()
	if !d.languages[p.Language] {
		return nil, &UnsupportedLanguageError{Language: string(p.Language)}
	}
	return d.run(start, p)
}

// DetectEncoded is [Detector.Detect] for base64 audio as it arrives on the
// wire. Decoding counts towards the processing time.
func (d *Detector) DetectEncoded(encoded string, lang Language) (*Result, error) {
	start := d.now()
	if !d.languages[lang] {
		return nil, &UnsupportedLanguageError{Language: string(lang)}
	}
	audio, err := DecodeAudio(encoded)
	if err != nil {
		return nil, err
	}
	return d.run(start, AudioPayload{Audio: audio, Language: lang})
}

func (d *Detector) run(start time.Time, p AudioPayload) (*Result, error) {
	fp, err := Extract(p.Audio)
	if err != nil {
		return nil, err
	}

	gen := NewGenerator(fp.Seed)
	cls := Classify(gen)
	exp := Explain(gen, cls.Label, p.Language)

	return &Result{
		Classification:   cls,
		Language:         p.Language,
		DurationSeconds:  EstimateDuration(len(p.Audio)),
		ProcessingTime:   d.now().Sub(start),
		Explanation:      exp,
		Fingerprint:      fp,
		AlgorithmVersion: AlgorithmVersion,
	}, nil
}

// DecodeAudio decodes standard base64, tolerating surrounding whitespace and
// a "data:...;base64," prefix.
func DecodeAudio(encoded string) ([]byte, error) {
	s := strings.TrimSpace(encoded)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	if s == "" {
		return nil, &FormatError{Reason: "empty payload"}
	}
	audio, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &FormatError{Reason: "base64 decode failed", Err: err}
	}
	return audio, nil
}
