package bundle

import (
	"context"
	"errors"
	"time"

	"github.com/mikey/naija-scam-detector/internal/core"
	"go.uber.org/zap"
)

// Bundle is a loaded model bundle. It is never mutated after Load and may be
// shared by reference between concurrent analyses.
type Bundle struct {
	vectorizer *TfidfVectorizer
	classifier core.Classifier
	info       core.BundleInfo
}

var _ core.ModelBundle = (*Bundle)(nil)

// New builds a bundle from a decoded artifact
func New(a *Artifact) (*Bundle, error) {
	if a.FormatVersion != SupportedFormatVersion {
		return nil, malformed("unsupported format_version %d", a.FormatVersion)
	}

	vectorizer, err := NewVectorizer(a.Vectorizer)
	if err != nil {
		return nil, err
	}

	classifier, err := NewClassifier(a.Model, len(a.Vectorizer.Vocabulary))
	if err != nil {
		return nil, err
	}

	return &Bundle{
		vectorizer: vectorizer,
		classifier: classifier,
		info: core.BundleInfo{
			Name:           a.Metadata.Name,
			Version:        a.Metadata.Version,
			Description:    a.Metadata.Description,
			VectorizerKind: vectorizer.Kind(),
			ClassifierKind: a.Model.Kind,
			VocabularySize: len(a.Vectorizer.Vocabulary),
		},
	}, nil
}

// Load reads, decodes and validates the artifact behind src.
// Any failure is an *ArtifactError.
func Load(ctx context.Context, src core.ArtifactSource, format Format, logger *zap.Logger) (*Bundle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &ArtifactError{Source: src.Name(), Op: "open", Kind: ErrArtifactNotFound, Err: err}
	}
	defer rc.Close()

	a, err := Decode(rc, src.Name(), format)
	if err != nil {
		return nil, &ArtifactError{Source: src.Name(), Op: "decode", Kind: ErrArtifactMalformed, Err: err}
	}

	b, err := New(a)
	if err != nil {
		kind := ErrArtifactMalformed
		if errors.Is(err, ErrArtifactMismatch) {
			kind = ErrArtifactMismatch
		}
		return nil, &ArtifactError{Source: src.Name(), Op: "validate", Kind: kind, Err: err}
	}

	b.info.Source = src.Name()
	b.info.LoadedAt = time.Now()

	logger.Info("Loaded model bundle",
		zap.String("source", b.info.Source),
		zap.String("name", b.info.Name),
		zap.String("version", b.info.Version),
		zap.String("vectorizer", b.info.VectorizerKind),
		zap.String("classifier", b.info.ClassifierKind),
		zap.Int("vocabulary_size", b.info.VocabularySize))

	return b, nil
}

// Vectorizer returns the fitted vectorizer
func (b *Bundle) Vectorizer() core.Vectorizer {
	return b.vectorizer
}

// Classifier returns the fitted classifier
func (b *Bundle) Classifier() core.Classifier {
	return b.classifier
}

// Info describes the bundle
func (b *Bundle) Info() core.BundleInfo {
	return b.info
}
