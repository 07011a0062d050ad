package detector

import "fmt"

// FormatError reports a payload that is not recognisable audio, either because
// its transport encoding could not be decoded or because its leading bytes do
// not carry a known container signature.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid audio data: %s: %v", e.Reason, e.Err)
	}
	return "invalid audio data: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// UnsupportedLanguageError reports a language tag outside the supported set.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q", e.Language)
}
