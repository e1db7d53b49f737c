package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/utils"
)

// TextProcessorFactory creates the text processor shared by the shells
type TextProcessorFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewTextProcessorFactory creates a new TextProcessorFactory
func NewTextProcessorFactory(cfg *config.Config, logger *zap.Logger) *TextProcessorFactory {
	return &TextProcessorFactory{
		config: cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a TextProcessor sized by ui.preview_bytes
func (f *TextProcessorFactory) CreateTextProcessor() *utils.TextProcessor {
	return utils.NewTextProcessor(f.logger, f.config.GetInt("ui.preview_bytes"))
}
