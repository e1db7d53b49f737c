package core

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubVectorizer struct {
	names   []string
	vectors map[string]SparseVector
	calls   atomic.Int32
}

func (v *stubVectorizer) Transform(text string) SparseVector {
	v.calls.Add(1)
	return v.vectors[text]
}

func (v *stubVectorizer) FeatureNames() []string { return v.names }

type stubClassifier struct {
	label Label
	p     float64
	calls atomic.Int32
}

func (c *stubClassifier) Predict(SparseVector) Label {
	c.calls.Add(1)
	return c.label
}

func (c *stubClassifier) PredictProba(SparseVector) [2]float64 {
	return [2]float64{1 - c.p, c.p}
}

type stubBundle struct {
	v *stubVectorizer
	c *stubClassifier
}

func (b stubBundle) Vectorizer() Vectorizer { return b.v }
func (b stubBundle) Classifier() Classifier { return b.c }
func (b stubBundle) Info() BundleInfo       { return BundleInfo{Name: "stub"} }

func newStub(label Label, p float64, vectors map[string]SparseVector) stubBundle {
	return stubBundle{
		v: &stubVectorizer{
			names:   []string{"account", "dinner", "now", "suspended", "urgent", "verify", "win"},
			vectors: vectors,
		},
		c: &stubClassifier{label: label, p: p},
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t", "  "} {
		b := newStub(LabelScam, 0.9, nil)
		a := NewAnalyzer(b, zaptest.NewLogger(t))

		result, err := a.Analyze(msg)
		require.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, result)
		assert.Zero(t, b.v.calls.Load(), "vectorizer must not run for %q", msg)
		assert.Zero(t, b.c.calls.Load(), "classifier must not run for %q", msg)
	}
}

func TestAnalyzeScamConfidence(t *testing.T) {
	msg := "URGENT: your account will be suspended, verify now"
	b := newStub(LabelScam, 0.87654, map[string]SparseVector{
		msg: {{0, 0.31}, {2, 0.22}, {3, 0.48}, {4, 0.52}, {5, 0.48}},
	})
	a := NewAnalyzer(b, zaptest.NewLogger(t))

	result, err := a.Analyze(msg)
	require.NoError(t, err)

	want := &AnalysisResult{
		Label:           LabelScam,
		Confidence:      87.65,
		ScamProbability: 0.87654,
		ContributingTerms: []ContributingTerm{
			{Term: "urgent", Weight: 0.52},
			{Term: "suspended", Weight: 0.48},
			{Term: "verify", Weight: 0.48},
			{Term: "account", Weight: 0.31},
			{Term: "now", Weight: 0.22},
		},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("Analyze() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeLegitConfidenceIsRelativeToPrediction(t *testing.T) {
	msg := "See you at 6pm for dinner"
	b := newStub(LabelLegit, 0.1234, map[string]SparseVector{
		msg: {{1, 1.0}},
	})
	a := NewAnalyzer(b, nil)

	result, err := a.Analyze(msg)
	require.NoError(t, err)
	assert.Equal(t, LabelLegit, result.Label)
	assert.Equal(t, 87.66, result.Confidence)
	assert.Equal(t, []string{"dinner"}, result.Terms())
}

func TestAnalyzeTopTermsCappedAndPositiveOnly(t *testing.T) {
	msg := "many words"
	b := newStub(LabelScam, 0.7, map[string]SparseVector{
		msg: {{0, 0.1}, {1, 0.0}, {2, 0.2}, {3, 0.3}, {4, 0.4}, {5, 0.5}, {6, 0.6}},
	})
	a := NewAnalyzer(b, nil)

	result, err := a.Analyze(msg)
	require.NoError(t, err)
	require.Len(t, result.ContributingTerms, MaxContributingTerms)
	assert.Equal(t, []string{"win", "verify", "urgent", "suspended", "now"}, result.Terms())
	for i := 1; i < len(result.ContributingTerms); i++ {
		assert.GreaterOrEqual(t, result.ContributingTerms[i-1].Weight, result.ContributingTerms[i].Weight)
	}
	for _, term := range result.ContributingTerms {
		assert.Greater(t, term.Weight, 0.0)
	}
}

func TestAnalyzeTiesKeepVocabularyOrder(t *testing.T) {
	msg := "tied"
	b := newStub(LabelScam, 0.6, map[string]SparseVector{
		msg: {{0, 0.5}, {3, 0.5}, {5, 0.5}, {6, 0.5}},
	})
	a := NewAnalyzer(b, nil)

	result, err := a.Analyze(msg)
	require.NoError(t, err)
	assert.Equal(t, []string{"account", "suspended", "verify", "win"}, result.Terms())
}

func TestAnalyzeOutOfVocabularyOnly(t *testing.T) {
	b := newStub(LabelLegit, 0.35, map[string]SparseVector{})
	a := NewAnalyzer(b, nil)

	result, err := a.Analyze("ẞ¤ § ¶")
	require.NoError(t, err)
	assert.Empty(t, result.ContributingTerms)
	assert.False(t, result.HasExplanation())
	assert.Equal(t, LabelLegit, result.Label)
	assert.Equal(t, 65.0, result.Confidence)
}

func TestAnalyzeClampsProbability(t *testing.T) {
	a := NewAnalyzer(newStub(LabelScam, 1.0000001, nil), nil)
	result, err := a.Analyze("x")
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Confidence)
	assert.Equal(t, 1.0, result.ScamProbability)
}

func TestAnalyzeIsIdempotentAndConcurrencySafe(t *testing.T) {
	msg := "verify now"
	b := newStub(LabelScam, 0.91, map[string]SparseVector{
		msg: {{2, 0.6}, {5, 0.8}},
	})
	a := NewAnalyzer(b, nil)

	first, err := a.Analyze(msg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*AnalysisResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = a.Analyze(msg)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		if diff := cmp.Diff(first, r); diff != "" {
			t.Fatalf("repeated Analyze() differs (-first +got):\n%s", diff)
		}
	}
}

func TestParseFeedbackVerdict(t *testing.T) {
	v, err := ParseFeedbackVerdict("Yes")
	require.NoError(t, err)
	assert.Equal(t, FeedbackYes, v)

	v, err = ParseFeedbackVerdict("no")
	require.NoError(t, err)
	assert.Equal(t, FeedbackNo, v)

	_, err = ParseFeedbackVerdict("maybe")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestLabelText(t *testing.T) {
	b, err := LabelScam.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "scam", string(b))

	var l Label
	require.NoError(t, l.UnmarshalText([]byte("ham")))
	assert.Equal(t, LabelLegit, l)
	assert.Error(t, l.UnmarshalText([]byte("unknown")))
}
