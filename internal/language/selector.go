package language

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/config"
)

// English is the only language the classifier was trained on
const English = "English"

// Selection is the outcome of choosing a language in a shell
type Selection struct {
	Language string
	// Supported is false for every language except English. An unsupported
	// selection changes nothing about analysis; shells show a notice instead.
	Supported bool
}

// Selector holds the language options offered by the shells
type Selector struct {
	options []string
	def     string
	detect  bool
	logger  *zap.Logger
}

// NewSelector creates a selector from the language configuration
func NewSelector(cfg config.LanguageConfig, logger *zap.Logger) (*Selector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Options) == 0 {
		return nil, fmt.Errorf("no language options configured")
	}

	s := &Selector{
		options: cfg.Options,
		detect:  cfg.Detect,
		logger:  logger,
	}

	def, ok := s.lookup(cfg.Default)
	if !ok {
		return nil, fmt.Errorf("default language %q is not one of the options", cfg.Default)
	}
	s.def = def

	if _, ok := s.lookup(English); !ok {
		return nil, fmt.Errorf("language options must include %s", English)
	}

	return s, nil
}

// Options returns the languages in display order
func (s *Selector) Options() []string {
	out := make([]string, len(s.options))
	copy(out, s.options)
	return out
}

// Default returns the preselected language
func (s *Selector) Default() string {
	return s.def
}

// Select resolves a submitted choice. Unknown or empty choices fall back
// to the default.
func (s *Selector) Select(choice string) Selection {
	lang, ok := s.lookup(choice)
	if !ok {
		if strings.TrimSpace(choice) != "" {
			s.logger.Debug("Unknown language selection, using default",
				zap.String("language", choice),
				zap.String("default", s.def))
		}
		lang = s.def
	}
	return Selection{
		Language:  lang,
		Supported: lang == English,
	}
}

// Next returns the option after current, wrapping around
func (s *Selector) Next(current string) string {
	for i, opt := range s.options {
		if opt == current {
			return s.options[(i+1)%len(s.options)]
		}
	}
	return s.def
}

// DetectHint reports the language a message appears to be written in when
// detection is enabled, reliable and the result is not English
func (s *Selector) DetectHint(message string) (string, bool) {
	if !s.detect || strings.TrimSpace(message) == "" {
		return "", false
	}

	info := whatlanggo.Detect(message)
	if !info.IsReliable() || info.Lang == whatlanggo.Eng {
		return "", false
	}

	name := info.Lang.String()
	s.logger.Debug("Detected non-English message",
		zap.String("language", name),
		zap.Float64("confidence", info.Confidence))
	return name, true
}

func (s *Selector) lookup(choice string) (string, bool) {
	choice = strings.TrimSpace(choice)
	for _, opt := range s.options {
		if strings.EqualFold(opt, choice) {
			return opt, true
		}
	}
	return "", false
}
