package bundle

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mikey/naija-scam-detector/internal/core"
)

type pathSource string

func (p pathSource) Open(context.Context) (io.ReadCloser, error) { return os.Open(string(p)) }
func (p pathSource) Name() string                                { return string(p) }

type bytesSource struct {
	name string
	data []byte
}

func (b bytesSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}
func (b bytesSource) Name() string { return b.name }

func loadTestdata(t *testing.T, name string) (*Bundle, error) {
	t.Helper()
	return Load(context.Background(), pathSource(filepath.Join("testdata", name)), FormatAuto, zaptest.NewLogger(t))
}

func TestLoadYAML(t *testing.T) {
	b, err := loadTestdata(t, "tiny.yaml")
	require.NoError(t, err)

	info := b.Info()
	assert.Equal(t, "tiny", info.Name)
	assert.Equal(t, KindTfidf, info.VectorizerKind)
	assert.Equal(t, KindLogisticRegression, info.ClassifierKind)
	assert.Equal(t, 6, info.VocabularySize)
	assert.Equal(t, filepath.Join("testdata", "tiny.yaml"), info.Source)
	assert.False(t, info.LoadedAt.IsZero())

	a := core.NewAnalyzer(b, zaptest.NewLogger(t))

	scam, err := a.Analyze("URGENT: your account will be suspended, verify now")
	require.NoError(t, err)
	assert.Equal(t, core.LabelScam, scam.Label)
	assert.Equal(t, 93.28, scam.Confidence)
	// equal weights keep vocabulary order
	assert.Equal(t, []string{"account", "now", "suspended", "urgent", "verify"}, scam.Terms())

	legit, err := a.Analyze("See you at 6pm for dinner")
	require.NoError(t, err)
	assert.Equal(t, core.LabelLegit, legit.Label)
	assert.Equal(t, 92.41, legit.Confidence)
	assert.Equal(t, []string{"dinner"}, legit.Terms())
}

func TestLoadJSONMultinomial(t *testing.T) {
	b, err := loadTestdata(t, "nb.json")
	require.NoError(t, err)
	assert.Equal(t, KindCount, b.Info().VectorizerKind)

	a := core.NewAnalyzer(b, nil)
	result, err := a.Analyze("Win a prize!")
	require.NoError(t, err)
	assert.Equal(t, core.LabelScam, result.Label)
	assert.Equal(t, 77.14, result.Confidence)
	assert.Equal(t, []string{"prize", "win"}, result.Terms())
}

func TestLoadGzip(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "tiny.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	for _, name := range []string{"bundle.yaml.gz", "bundle.yaml.GZ", "bundle.YML.Gz"} {
		t.Run(name, func(t *testing.T) {
			b, err := Load(context.Background(), bytesSource{name: name, data: buf.Bytes()}, FormatAuto, nil)
			require.NoError(t, err)
			assert.Equal(t, "tiny", b.Info().Name)
		})
	}

	t.Run("inner extension selects the format", func(t *testing.T) {
		_, err := Load(context.Background(), bytesSource{name: "bundle.JSON.Gz", data: buf.Bytes()}, FormatAuto, nil)
		assert.ErrorIs(t, err, ErrArtifactMalformed)
	})
}

func TestLoadSniffsFormatWithoutExtension(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "nb.json"))
	require.NoError(t, err)

	b, err := Load(context.Background(), bytesSource{name: "bundle", data: raw}, FormatAuto, nil)
	require.NoError(t, err)
	assert.Equal(t, "nb", b.Info().Name)

	_, err = Load(context.Background(), bytesSource{name: "bundle", data: raw}, FormatJSON, nil)
	require.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		kind error
		op   string
	}{
		{"missing file", "does-not-exist.json", ErrArtifactNotFound, "open"},
		{"truncated json", "broken.json", ErrArtifactMalformed, "decode"},
		{"dimension mismatch", "mismatch.json", ErrArtifactMismatch, "validate"},
		{"unsupported version", "future.yaml", ErrArtifactMalformed, "validate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadTestdata(t, tt.file)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var artifactErr *ArtifactError
			require.True(t, errors.As(err, &artifactErr))
			assert.Equal(t, tt.op, artifactErr.Op)
			assert.Contains(t, err.Error(), tt.file)
		})
	}

	_, err := loadTestdata(t, "does-not-exist.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "JSON": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pickle")
	assert.Error(t, err)
}

// The shipped demo bundle must classify the reference messages.
func TestShippedBundle(t *testing.T) {
	b, err := Load(context.Background(),
		pathSource(filepath.Join("..", "..", "models", "naija_sms_detector_bundle.json")), FormatAuto, nil)
	require.NoError(t, err)
	a := core.NewAnalyzer(b, nil)

	scam, err := a.Analyze("URGENT: your account will be suspended, verify now")
	require.NoError(t, err)
	assert.Equal(t, core.LabelScam, scam.Label)
	assert.Greater(t, scam.Confidence, 50.0)
	assert.Equal(t, []string{"urgent", "verify", "suspended", "account", "be"}, scam.Terms())

	legit, err := a.Analyze("See you at 6pm for dinner")
	require.NoError(t, err)
	assert.Equal(t, core.LabelLegit, legit.Label)

	oov, err := a.Analyze("zzzz qqqq xkcd")
	require.NoError(t, err)
	assert.Empty(t, oov.ContributingTerms)
	assert.GreaterOrEqual(t, oov.Confidence, 0.0)
	assert.LessOrEqual(t, oov.Confidence, 100.0)
}
