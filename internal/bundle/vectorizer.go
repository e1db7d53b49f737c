package bundle

import (
	"math"
	"sort"

	"github.com/mikey/naija-scam-detector/internal/core"
)

const (
	KindTfidf = "tfidf"
	KindCount = "count"

	NormL2   = "l2"
	NormL1   = "l1"
	NormNone = "none"
)

// TfidfVectorizer maps text onto a fixed vocabulary with count or tf-idf weighting.
// It is immutable after construction.
type TfidfVectorizer struct {
	kind        string
	analyzer    *textAnalyzer
	names       []string
	index       map[string]int
	idf         []float64
	binary      bool
	sublinearTF bool
	norm        string
}

// NewVectorizer builds a vectorizer from its exported parameters
func NewVectorizer(spec VectorizerSpec) (*TfidfVectorizer, error) {
	kind := spec.Kind
	if kind == "" {
		kind = KindTfidf
	}
	if kind != KindTfidf && kind != KindCount {
		return nil, malformed("unknown vectorizer kind %q", spec.Kind)
	}

	if len(spec.Vocabulary) == 0 {
		return nil, malformed("vectorizer vocabulary is empty")
	}

	index := make(map[string]int, len(spec.Vocabulary))
	for i, term := range spec.Vocabulary {
		if _, dup := index[term]; dup {
			return nil, malformed("duplicate vocabulary term %q", term)
		}
		index[term] = i
	}

	analyzer, err := newTextAnalyzer(spec)
	if err != nil {
		return nil, err
	}

	v := &TfidfVectorizer{
		kind:     kind,
		analyzer: analyzer,
		names:    append([]string(nil), spec.Vocabulary...),
		index:    index,
		binary:   spec.Binary,
	}

	if kind == KindCount {
		v.norm = NormNone
		return v, nil
	}

	v.sublinearTF = spec.SublinearTF
	switch spec.Norm {
	case "", NormL2:
		v.norm = NormL2
	case NormL1, NormNone:
		v.norm = spec.Norm
	default:
		return nil, malformed("unknown norm %q", spec.Norm)
	}

	if spec.UseIDF == nil || *spec.UseIDF {
		if len(spec.IDF) != len(spec.Vocabulary) {
			return nil, mismatch("idf has %d entries, vocabulary has %d", len(spec.IDF), len(spec.Vocabulary))
		}
		v.idf = append([]float64(nil), spec.IDF...)
	}

	return v, nil
}

// Transform converts text into a sparse vector sorted by feature index.
// Terms outside the vocabulary are ignored.
func (v *TfidfVectorizer) Transform(text string) core.SparseVector {
	counts := make(map[int]float64)
	for _, term := range v.analyzer.analyze(text) {
		if idx, ok := v.index[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return core.SparseVector{}
	}

	vec := make(core.SparseVector, 0, len(counts))
	for idx, tf := range counts {
		w := tf
		if v.binary {
			w = 1
		}
		if v.sublinearTF {
			w = math.Log(w) + 1
		}
		if v.idf != nil {
			w *= v.idf[idx]
		}
		vec = append(vec, core.Feature{Index: idx, Weight: w})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })

	normalize(vec, v.norm)
	return dropZeros(vec)
}

// FeatureNames returns the vocabulary in feature order
func (v *TfidfVectorizer) FeatureNames() []string {
	return v.names
}

// Kind reports whether the vectorizer weights by tf-idf or raw counts
func (v *TfidfVectorizer) Kind() string {
	return v.kind
}

func normalize(vec core.SparseVector, norm string) {
	var total float64
	switch norm {
	case NormL2:
		for _, f := range vec {
			total += f.Weight * f.Weight
		}
		total = math.Sqrt(total)
	case NormL1:
		for _, f := range vec {
			total += math.Abs(f.Weight)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range vec {
		vec[i].Weight /= total
	}
}

func dropZeros(vec core.SparseVector) core.SparseVector {
	out := vec[:0]
	for _, f := range vec {
		if f.Weight != 0 {
			out = append(out, f)
		}
	}
	return out
}
