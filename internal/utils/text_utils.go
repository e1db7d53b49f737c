package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor provides utilities for cleaning and previewing user text
type TextProcessor struct {
	logger      *zap.Logger
	previewSize int
}

// NewTextProcessor creates a new TextProcessor whose message previews are cut
// to previewSize bytes; zero or less keeps the whole message
func NewTextProcessor(logger *zap.Logger, previewSize int) *TextProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextProcessor{
		logger:      logger,
		previewSize: previewSize,
	}
}

// SanitizeUTF8 drops invalid UTF-8 sequences and normalises line endings
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	cleaned := text
	if !utf8.ValidString(cleaned) {
		cleaned = strings.ToValidUTF8(cleaned, "")
		tp.logger.Debug("Text sanitized",
			zap.Int("original_size", len(text)),
			zap.Int("sanitized_size", len(cleaned)))
	}
	return strings.ReplaceAll(cleaned, "\r\n", "\n")
}

// TruncateText cuts text to at most maxSize bytes on a rune boundary
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}

// MessagePreview is Preview with the configured size
func (tp *TextProcessor) MessagePreview(text string) string {
	return tp.Preview(text, tp.previewSize)
}

// Preview returns a single-line excerpt of text for logs and reports
func (tp *TextProcessor) Preview(text string, maxSize int) string {
	line := strings.Join(strings.Fields(text), " ")
	if maxSize <= 0 || len(line) <= maxSize {
		return line
	}
	return tp.TruncateText(line, maxSize) + "…"
}
