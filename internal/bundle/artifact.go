package bundle

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// SupportedFormatVersion is the artifact layout understood by this package
const SupportedFormatVersion = 1

// Format is the encoding of an artifact
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a configured format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported bundle format: %s", s)
	}
}

// Artifact is the serialized form of a model bundle: one fitted vectorizer and
// one fitted classifier exported together.
type Artifact struct {
	FormatVersion int            `json:"format_version" yaml:"format_version"`
	Metadata      Metadata       `json:"metadata" yaml:"metadata"`
	Vectorizer    VectorizerSpec `json:"vectorizer" yaml:"vectorizer"`
	Model         ClassifierSpec `json:"model" yaml:"model"`
}

// Metadata describes where a bundle came from
type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
}

// VectorizerSpec holds the fitted parameters of a count or tf-idf vectorizer
type VectorizerSpec struct {
	Kind         string    `json:"kind" yaml:"kind"`
	Vocabulary   []string  `json:"vocabulary" yaml:"vocabulary"`
	IDF          []float64 `json:"idf" yaml:"idf"`
	UseIDF       *bool     `json:"use_idf" yaml:"use_idf"`
	Lowercase    *bool     `json:"lowercase" yaml:"lowercase"`
	StripAccents string    `json:"strip_accents" yaml:"strip_accents"`
	TokenPattern string    `json:"token_pattern" yaml:"token_pattern"`
	NgramRange   []int     `json:"ngram_range" yaml:"ngram_range"`
	StopWords    []string  `json:"stop_words" yaml:"stop_words"`
	Binary       bool      `json:"binary" yaml:"binary"`
	SublinearTF  bool      `json:"sublinear_tf" yaml:"sublinear_tf"`
	Norm         string    `json:"norm" yaml:"norm"`
}

// ClassifierSpec holds the fitted parameters of a binary linear or naive Bayes classifier
type ClassifierSpec struct {
	Kind           string      `json:"kind" yaml:"kind"`
	Classes        []any       `json:"classes" yaml:"classes"`
	Coef           []float64   `json:"coef" yaml:"coef"`
	Intercept      float64     `json:"intercept" yaml:"intercept"`
	ClassLogPrior  []float64   `json:"class_log_prior" yaml:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob" yaml:"feature_log_prob"`
}

// Decode reads an artifact from r. The name is used to detect gzip compression
// and, when format is FormatAuto, the encoding.
func Decode(r io.Reader, name string, format Format) (*Artifact, error) {
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, malformed("failed to open gzip stream: %v", err)
		}
		defer zr.Close()
		r = zr
		name = name[:len(name)-len(".gz")]
	}

	br := bufio.NewReader(r)
	if format == FormatAuto {
		format = detectFormat(name, br)
	}

	var a Artifact
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(br).Decode(&a); err != nil {
			return nil, malformed("failed to decode JSON: %v", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(br).Decode(&a); err != nil {
			return nil, malformed("failed to decode YAML: %v", err)
		}
	default:
		return nil, malformed("unsupported format %q", format)
	}

	return &a, nil
}

func detectFormat(name string, br *bufio.Reader) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	head, _ := br.Peek(512)
	if trimmed := bytes.TrimLeft(head, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}
