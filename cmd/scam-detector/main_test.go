package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/naija-scam-detector/internal/core"
)

var shippedBundle = filepath.Join("..", "..", "models", "naija_sms_detector_bundle.json")

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "tui", "check", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "model", "variant", "verbose", "json-log"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestServeFlags(t *testing.T) {
	cmd := NewServeCmd()
	flag := cmd.Flags().Lookup("listen")
	require.NotNil(t, flag)
	assert.Equal(t, "l", flag.Shorthand)
}

func TestCheckArgs(t *testing.T) {
	out, err := execute(t, "", "check", "--model", shippedBundle, "URGENT:", "your account will be suspended,", "verify now")
	require.NoError(t, err)
	assert.Contains(t, out, "🚨 Scam Message Detected")
	assert.Contains(t, out, "urgent, verify, suspended, account, be")
}

func TestCheckStdinJSON(t *testing.T) {
	out, err := execute(t, "See you at 6pm for dinner", "check", "--model", shippedBundle, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"label": "legit"`)
}

func TestCheckFileMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.txt")
	require.NoError(t, os.WriteFile(path, []byte("URGENT: your account will be suspended, verify now"), 0o600))

	out, err := execute(t, "", "check", "--model", shippedBundle, "--file", path, "--format", "markdown", "--variant", "whatsapp")
	require.NoError(t, err)
	assert.Contains(t, out, "# 🟢 WhatsApp Scam Checker")
}

func TestCheckEmpty(t *testing.T) {
	out, err := execute(t, "   ", "check", "--model", shippedBundle)
	assert.ErrorIs(t, err, core.ErrEmptyInput)
	assert.Equal(t, "Please enter a message first.\n", out)
}

func TestCheckArgsAndFile(t *testing.T) {
	_, err := execute(t, "", "check", "--model", shippedBundle, "--file", "message.txt", "hello")
	assert.Error(t, err)
}

func TestCheckUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "", "check", "--model", shippedBundle, "--format", "xml", "hello there")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scam-detector version")
}
