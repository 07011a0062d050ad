package detector

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language is a declared spoken language of an audio payload.
type Language string

const (
	Tamil     Language = "tamil"
	English   Language = "english"
	Hindi     Language = "hindi"
	Malayalam Language = "malayalam"
	Telugu    Language = "telugu"
)

// DefaultLanguage is assumed when a request does not declare one.
const DefaultLanguage = English

// SupportedLanguages is the closed set of languages the detector accepts, in
// the order they are advertised.
var SupportedLanguages = []Language{Tamil, English, Hindi, Malayalam, Telugu}

var bcp47 = map[Language]language.Tag{
	Tamil:     language.Tamil,
	English:   language.English,
	Hindi:     language.Hindi,
	Malayalam: language.Malayalam,
	Telugu:    language.Telugu,
}

// ParseLanguage validates s against the supported set. Matching is exact
// after trimming surrounding whitespace; an empty string yields
// [DefaultLanguage].
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLanguage, nil
	}
	l := Language(s)
	if !l.IsValid() {
		return "", &UnsupportedLanguageError{Language: s}
	}
	return l, nil
}

// IsValid reports whether l is one of [SupportedLanguages].
func (l Language) IsValid() bool {
	_, ok := bcp47[l]
	return ok
}

// Tag returns the BCP 47 tag for l, or [language.Und] for unknown values.
func (l Language) Tag() language.Tag {
	if t, ok := bcp47[l]; ok {
		return t
	}
	return language.Und
}

// Title returns the language name with a leading capital, e.g. "Tamil".
func (l Language) Title() string {
	return cases.Title(language.English).String(string(l))
}
