package core

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// MaxContributingTerms caps the explanation list
const MaxContributingTerms = 5

// Analyzer is the core service for scam detection.
// It only reads from the bundle and is safe for concurrent use.
type Analyzer struct {
	vectorizer Vectorizer
	classifier Classifier
	names      []string
	logger     *zap.Logger
}

// NewAnalyzer creates a new analyzer over a loaded model bundle
func NewAnalyzer(bundle ModelBundle, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	vectorizer := bundle.Vectorizer()
	return &Analyzer{
		vectorizer: vectorizer,
		classifier: bundle.Classifier(),
		names:      vectorizer.FeatureNames(),
		logger:     logger,
	}
}

// Analyze classifies a message and ranks the terms that contributed to the decision
func (a *Analyzer) Analyze(message string) (*AnalysisResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyInput
	}

	vec := a.vectorizer.Transform(message)
	label := a.classifier.Predict(vec)
	p := clamp01(a.classifier.PredictProba(vec)[LabelScam])

	var confidence float64
	if label.IsScam() {
		confidence = roundTo(p*100, 2)
	} else {
		confidence = roundTo((1-p)*100, 2)
	}

	result := &AnalysisResult{
		Label:             label,
		Confidence:        confidence,
		ScamProbability:   p,
		ContributingTerms: a.topTerms(vec),
	}

	a.logger.Debug("Analyzed message",
		zap.Stringer("label", label),
		zap.Float64("confidence", confidence),
		zap.Int("term_count", len(result.ContributingTerms)),
		zap.Int("message_length", len(message)))

	return result, nil
}

// topTerms returns the highest weighted terms of a vector.
// Ties keep vocabulary order.
func (a *Analyzer) topTerms(vec SparseVector) []ContributingTerm {
	positive := make([]Feature, 0, len(vec))
	for _, f := range vec {
		if f.Weight > 0 && f.Index >= 0 && f.Index < len(a.names) {
			positive = append(positive, f)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool {
		if positive[i].Weight != positive[j].Weight {
			return positive[i].Weight > positive[j].Weight
		}
		return positive[i].Index < positive[j].Index
	})

	if len(positive) > MaxContributingTerms {
		positive = positive[:MaxContributingTerms]
	}

	terms := make([]ContributingTerm, 0, len(positive))
	for _, f := range positive {
		terms = append(terms, ContributingTerm{Term: a.names[f.Index], Weight: f.Weight})
	}
	return terms
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
