package bundle

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactNotFound is returned when the artifact cannot be opened
	ErrArtifactNotFound = errors.New("model bundle not found")
	// ErrArtifactMalformed is returned when the artifact cannot be decoded or is invalid
	ErrArtifactMalformed = errors.New("model bundle is malformed")
	// ErrArtifactMismatch is returned when the vectorizer and classifier disagree on dimensions
	ErrArtifactMismatch = errors.New("vectorizer and classifier do not match")
)

// ArtifactError describes a failure to load the model bundle.
// It is fatal at startup; there is no recovery path.
type ArtifactError struct {
	Source string
	Op     string
	Kind   error
	Err    error
}

func (e *ArtifactError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("model bundle %s: %s: %v", e.Source, e.Op, e.Kind)
	}
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("model bundle %s: %s: %v", e.Source, e.Op, e.Err)
	}
	return fmt.Sprintf("model bundle %s: %s: %v: %v", e.Source, e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is
func (e *ArtifactError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrArtifactMalformed}, args...)...)
}

func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrArtifactMismatch}, args...)...)
}
