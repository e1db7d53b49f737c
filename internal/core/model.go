package core

import (
	"fmt"
	"time"
)

// Label is the class predicted for a message
type Label int

const (
	// LabelLegit is the negative class (ham)
	LabelLegit Label = 0
	// LabelScam is the positive class (spam/scam)
	LabelScam Label = 1
)

// String returns the lower-case name of the label
func (l Label) String() string {
	switch l {
	case LabelLegit:
		return "legit"
	case LabelScam:
		return "scam"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// MarshalText encodes the label by name
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a label name
func (l *Label) UnmarshalText(b []byte) error {
	switch string(b) {
	case "legit", "ham", "0":
		*l = LabelLegit
	case "scam", "spam", "1":
		*l = LabelScam
	default:
		return fmt.Errorf("unknown label %q", string(b))
	}
	return nil
}

// IsScam reports whether the label is the positive class
func (l Label) IsScam() bool {
	return l == LabelScam
}

// Feature is a single non-zero dimension of a feature vector
type Feature struct {
	Index  int
	Weight float64
}

// SparseVector holds the non-zero features of a message, sorted by ascending index
type SparseVector []Feature

// Prediction is the raw classifier output for one message
type Prediction struct {
	Label           Label
	ScamProbability float64
}

// ContributingTerm is a vocabulary term and its weight in the message vector
type ContributingTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// AnalysisResult represents the result of analysing one message
type AnalysisResult struct {
	Label             Label              `json:"label"`
	Confidence        float64            `json:"confidence"`
	ScamProbability   float64            `json:"scam_probability"`
	ContributingTerms []ContributingTerm `json:"contributing_terms"`
}

// Terms returns the contributing terms without their weights
func (r *AnalysisResult) Terms() []string {
	terms := make([]string, 0, len(r.ContributingTerms))
	for _, t := range r.ContributingTerms {
		terms = append(terms, t.Term)
	}
	return terms
}

// HasExplanation reports whether any term contributed to the prediction
func (r *AnalysisResult) HasExplanation() bool {
	return len(r.ContributingTerms) > 0
}

// BundleInfo describes a loaded model bundle
type BundleInfo struct {
	Name           string
	Version        string
	Description    string
	VectorizerKind string
	ClassifierKind string
	VocabularySize int
	Source         string
	LoadedAt       time.Time
}

// FeedbackVerdict is the user's answer to "was this prediction correct?"
type FeedbackVerdict string

const (
	FeedbackYes FeedbackVerdict = "yes"
	FeedbackNo  FeedbackVerdict = "no"
)

// ParseFeedbackVerdict normalises a form value into a verdict
func ParseFeedbackVerdict(s string) (FeedbackVerdict, error) {
	switch FeedbackVerdict(s) {
	case FeedbackYes, "Yes", "YES", "y":
		return FeedbackYes, nil
	case FeedbackNo, "No", "NO", "n":
		return FeedbackNo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFeedback, s)
	}
}

// Feedback is a single acknowledgment tied to one displayed prediction
type Feedback struct {
	RequestID string
	Label     Label
	Verdict   FeedbackVerdict
}
