package core

import (
	"context"
	"io"
)

// Vectorizer maps raw text onto the fixed vocabulary of a bundle
type Vectorizer interface {
	// Transform converts text into a sparse feature vector
	Transform(text string) SparseVector

	// FeatureNames returns the vocabulary, index-aligned with vector dimensions
	FeatureNames() []string
}

// Classifier is a fitted binary classifier
type Classifier interface {
	// Predict returns the predicted label for a vector
	Predict(v SparseVector) Label

	// PredictProba returns [p(legit), p(scam)] for a vector
	PredictProba(v SparseVector) [2]float64
}

// ModelBundle groups a vectorizer and a classifier fitted together
type ModelBundle interface {
	Vectorizer() Vectorizer
	Classifier() Classifier
	Info() BundleInfo
}

// ArtifactSource opens the serialized model bundle
type ArtifactSource interface {
	// Open returns a reader over the raw artifact bytes
	Open(ctx context.Context) (io.ReadCloser, error)

	// Name identifies the artifact in logs and errors
	Name() string
}

// FeedbackRecorder acknowledges feedback on a displayed prediction
type FeedbackRecorder interface {
	Record(ctx context.Context, fb Feedback) error
}
