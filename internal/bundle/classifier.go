package bundle

import (
	"math"

	"github.com/mikey/naija-scam-detector/internal/core"
)

const (
	KindLogisticRegression = "logistic_regression"
	KindMultinomialNB      = "multinomial_nb"
)

// NewClassifier builds a classifier from its exported parameters.
// nFeatures is the vocabulary size of the vectorizer it was fitted with.
func NewClassifier(spec ClassifierSpec, nFeatures int) (core.Classifier, error) {
	if len(spec.Classes) != 0 && len(spec.Classes) != 2 {
		return nil, mismatch("expected 2 classes, got %d", len(spec.Classes))
	}

	switch spec.Kind {
	case KindLogisticRegression:
		if len(spec.Coef) != nFeatures {
			return nil, mismatch("coef has %d entries, vocabulary has %d", len(spec.Coef), nFeatures)
		}
		return &LogisticRegression{
			coef:      append([]float64(nil), spec.Coef...),
			intercept: spec.Intercept,
		}, nil

	case KindMultinomialNB:
		if len(spec.ClassLogPrior) != 2 {
			return nil, mismatch("class_log_prior has %d entries, expected 2", len(spec.ClassLogPrior))
		}
		if len(spec.FeatureLogProb) != 2 {
			return nil, mismatch("feature_log_prob has %d rows, expected 2", len(spec.FeatureLogProb))
		}
		nb := &MultinomialNB{}
		for k := 0; k < 2; k++ {
			if len(spec.FeatureLogProb[k]) != nFeatures {
				return nil, mismatch("feature_log_prob row %d has %d entries, vocabulary has %d",
					k, len(spec.FeatureLogProb[k]), nFeatures)
			}
			nb.classLogPrior[k] = spec.ClassLogPrior[k]
			nb.featureLogProb[k] = append([]float64(nil), spec.FeatureLogProb[k]...)
		}
		return nb, nil

	default:
		return nil, malformed("unknown classifier kind %q", spec.Kind)
	}
}

// LogisticRegression is a fitted binary logistic regression
type LogisticRegression struct {
	coef      []float64
	intercept float64
}

func (m *LogisticRegression) decision(v core.SparseVector) float64 {
	z := m.intercept
	for _, f := range v {
		z += m.coef[f.Index] * f.Weight
	}
	return z
}

// Predict returns the scam label when the decision function is positive
func (m *LogisticRegression) Predict(v core.SparseVector) core.Label {
	if m.decision(v) > 0 {
		return core.LabelScam
	}
	return core.LabelLegit
}

// PredictProba returns the logistic of the decision function for the scam class
func (m *LogisticRegression) PredictProba(v core.SparseVector) [2]float64 {
	p := sigmoid(m.decision(v))
	return [2]float64{1 - p, p}
}

// MultinomialNB is a fitted two-class multinomial naive Bayes model
type MultinomialNB struct {
	classLogPrior  [2]float64
	featureLogProb [2][]float64
}

func (m *MultinomialNB) jointLogLikelihood(v core.SparseVector) [2]float64 {
	jll := m.classLogPrior
	for k := range jll {
		for _, f := range v {
			jll[k] += f.Weight * m.featureLogProb[k][f.Index]
		}
	}
	return jll
}

// Predict returns the class with the highest joint log likelihood; legit wins ties
func (m *MultinomialNB) Predict(v core.SparseVector) core.Label {
	jll := m.jointLogLikelihood(v)
	if jll[1] > jll[0] {
		return core.LabelScam
	}
	return core.LabelLegit
}

// PredictProba normalises the joint log likelihoods with log-sum-exp
func (m *MultinomialNB) PredictProba(v core.SparseVector) [2]float64 {
	jll := m.jointLogLikelihood(v)
	hi := math.Max(jll[0], jll[1])
	logZ := hi + math.Log(math.Exp(jll[0]-hi)+math.Exp(jll[1]-hi))
	p := math.Exp(jll[1] - logZ)
	return [2]float64{1 - p, p}
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
