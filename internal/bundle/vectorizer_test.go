package bundle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/naija-scam-detector/internal/core"
)

func boolPtr(b bool) *bool { return &b }

func weights(t *testing.T, v *TfidfVectorizer, text string) map[string]float64 {
	t.Helper()
	out := make(map[string]float64)
	vec := v.Transform(text)
	for i, f := range vec {
		if i > 0 {
			require.Less(t, vec[i-1].Index, f.Index, "vector must be sorted by index")
		}
		out[v.FeatureNames()[f.Index]] = f.Weight
	}
	return out
}

func TestWordTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"drops single characters", "a b cc d1", []string{"cc", "d1"}},
		{"splits on punctuation", "URGENT:verify,now!", []string{"URGENT", "verify", "now"}},
		{"keeps underscores and unicode letters", "é_x naïra", []string{"é_x", "naïra"}},
		{"numbers are word characters", "6pm ₦5000", []string{"6pm", "5000"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordTokens(tt.in, 2))
		})
	}
}

func TestTextAnalyzerPreprocess(t *testing.T) {
	t.Run("unicode accents", func(t *testing.T) {
		ta, err := newTextAnalyzer(VectorizerSpec{StripAccents: "unicode"})
		require.NoError(t, err)
		assert.Equal(t, "cafe naira", ta.preprocess("Café Naïra"))
	})

	t.Run("ascii accents drop non-ascii runes", func(t *testing.T) {
		ta, err := newTextAnalyzer(VectorizerSpec{StripAccents: "ascii"})
		require.NoError(t, err)
		assert.Equal(t, "naira 500", ta.preprocess("Naïra ₦500"))
	})

	t.Run("lowercase can be disabled", func(t *testing.T) {
		ta, err := newTextAnalyzer(VectorizerSpec{Lowercase: boolPtr(false)})
		require.NoError(t, err)
		assert.Equal(t, "URGENT", ta.preprocess("URGENT"))
	})
}

func TestTextAnalyzerNgramsAndStopWords(t *testing.T) {
	ta, err := newTextAnalyzer(VectorizerSpec{NgramRange: []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"verify", "your", "account", "verify your", "your account"},
		ta.analyze("Verify your account"))

	ta, err = newTextAnalyzer(VectorizerSpec{NgramRange: []int{1, 2}, StopWords: []string{"your"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"verify", "account", "verify account"}, ta.analyze("Verify your account"))

	ta, err = newTextAnalyzer(VectorizerSpec{NgramRange: []int{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []string{"click the", "the link", "click the link"}, ta.analyze("click the link"))
	assert.Empty(t, ta.analyze("click"))
}

func TestTextAnalyzerTokenPattern(t *testing.T) {
	ta, err := newTextAnalyzer(VectorizerSpec{TokenPattern: `(?u)\b\w+\b`})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "cc"}, ta.analyze("a b cc"))

	ta, err = newTextAnalyzer(VectorizerSpec{TokenPattern: `#(\w+)`})
	require.NoError(t, err)
	assert.Equal(t, []string{"promo", "win"}, ta.analyze("#promo and #win"))
}

func TestTextAnalyzerTokenPatternUnicode(t *testing.T) {
	const doc = "naïra ẹ̀gbọ́n won ₦5000 é"
	defaultTokens, err := newTextAnalyzer(VectorizerSpec{})
	require.NoError(t, err)
	assert.Equal(t, []string{"naïra", "gbọ", "won", "5000"}, defaultTokens.analyze(doc))

	tests := []struct {
		pattern string
		doc     string
		want    []string
	}{
		{`(?u)\b\w\w+\b`, doc, []string{"naïra", "gbọ", "won", "5000"}},
		{`\b\w\w+\b`, doc, []string{"naïra", "gbọ", "won", "5000"}},
		{`(?u)\b\w+\b`, doc, []string{"naïra", "ẹ", "gbọ", "n", "won", "5000", "é"}},
		{`[\w']{3,}`, doc, []string{"naïra", "gbọ", "won", "5000"}},
		{`\d+`, doc, []string{"5000"}},
		{`#(\w+)`, "#naïra and #", []string{"naïra"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			ta, err := newTextAnalyzer(VectorizerSpec{TokenPattern: tt.pattern})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ta.analyze(tt.doc))
		})
	}
}

func TestUnicodeClasses(t *testing.T) {
	tests := map[string]string{
		`\w+`:           `[\p{L}\p{N}_]+`,
		`\W`:            `[^\p{L}\p{N}_]`,
		`[\w']+`:        `[\p{L}\p{N}_']+`,
		`[^\d]`:         `[^\p{Nd}]`,
		`[[:alpha:]\w]`: `[[:alpha:]\p{L}\p{N}_]`,
		`[]\w]`:         `[]\p{L}\p{N}_]`,
		`\\w`:           `\\w`,
		`\bx\b`:         `\bx\b`,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, unicodeClasses(in))
		})
	}
}

func TestTextAnalyzerInvalidSpecs(t *testing.T) {
	specs := map[string]VectorizerSpec{
		"strip accents": {StripAccents: "latin"},
		"bad pattern":   {TokenPattern: `(`},
		"two groups":    {TokenPattern: `(\w)(\w)`},
		"ngram length":  {NgramRange: []int{1}},
		"ngram order":   {NgramRange: []int{3, 1}},
		"ngram zero":    {NgramRange: []int{0, 1}},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			_, err := newTextAnalyzer(spec)
			assert.ErrorIs(t, err, ErrArtifactMalformed)
		})
	}
}

func TestVectorizerTfidfL2(t *testing.T) {
	v, err := NewVectorizer(VectorizerSpec{
		Vocabulary: []string{"account", "dinner", "now", "verify"},
		IDF:        []float64{2, 1, 1, 3},
	})
	require.NoError(t, err)

	got := weights(t, v, "Verify your account now, VERIFY!")
	// raw: account 1*2, now 1*1, verify 2*3
	norm := math.Sqrt(2*2 + 1*1 + 6*6)
	assert.InDelta(t, 2/norm, got["account"], 1e-12)
	assert.InDelta(t, 1/norm, got["now"], 1e-12)
	assert.InDelta(t, 6/norm, got["verify"], 1e-12)
	assert.NotContains(t, got, "dinner")

	var sq float64
	for _, w := range got {
		sq += w * w
	}
	assert.InDelta(t, 1.0, sq, 1e-12)
}

func TestVectorizerSublinearL1(t *testing.T) {
	v, err := NewVectorizer(VectorizerSpec{
		Vocabulary:  []string{"now", "verify"},
		IDF:         []float64{1, 2},
		SublinearTF: true,
		Norm:        NormL1,
	})
	require.NoError(t, err)

	got := weights(t, v, "verify verify verify now")
	verify := (math.Log(3) + 1) * 2
	total := verify + 1
	assert.InDelta(t, verify/total, got["verify"], 1e-12)
	assert.InDelta(t, 1/total, got["now"], 1e-12)
}

func TestVectorizerCountBinary(t *testing.T) {
	v, err := NewVectorizer(VectorizerSpec{
		Kind:       KindCount,
		Vocabulary: []string{"now", "verify"},
		Binary:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"now": 1, "verify": 1}, weights(t, v, "verify verify now"))

	v, err = NewVectorizer(VectorizerSpec{Kind: KindCount, Vocabulary: []string{"now", "verify"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"now": 1, "verify": 2}, weights(t, v, "verify verify now"))
}

func TestVectorizerOutOfVocabulary(t *testing.T) {
	v, err := NewVectorizer(VectorizerSpec{Vocabulary: []string{"verify"}, IDF: []float64{1}})
	require.NoError(t, err)
	assert.Equal(t, core.SparseVector{}, v.Transform("zzzz qqqq"))
	assert.Equal(t, core.SparseVector{}, v.Transform("¤¤ §§"))
}

func TestVectorizerUseIDFDisabled(t *testing.T) {
	v, err := NewVectorizer(VectorizerSpec{
		Vocabulary: []string{"now", "verify"},
		UseIDF:     boolPtr(false),
		Norm:       NormNone,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"now": 1, "verify": 2}, weights(t, v, "verify now verify"))
}

func TestNewVectorizerErrors(t *testing.T) {
	tests := []struct {
		name string
		spec VectorizerSpec
		want error
	}{
		{"unknown kind", VectorizerSpec{Kind: "hashing", Vocabulary: []string{"a"}}, ErrArtifactMalformed},
		{"empty vocabulary", VectorizerSpec{}, ErrArtifactMalformed},
		{"duplicate term", VectorizerSpec{Vocabulary: []string{"a", "a"}, IDF: []float64{1, 1}}, ErrArtifactMalformed},
		{"unknown norm", VectorizerSpec{Vocabulary: []string{"a"}, IDF: []float64{1}, Norm: "max"}, ErrArtifactMalformed},
		{"idf length", VectorizerSpec{Vocabulary: []string{"a", "b"}, IDF: []float64{1}}, ErrArtifactMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVectorizer(tt.spec)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
