package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/adapters/shell"
	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/language"
	"github.com/mikey/naija-scam-detector/internal/ports"
	"github.com/mikey/naija-scam-detector/internal/utils"
)

// Output formats of the check command
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Options configures one check
type Options struct {
	// Message is analysed as is when set; otherwise it is read from Input
	Message  string
	Input    io.Reader
	Output   io.Writer
	Language string
	Format   string
	Verbose  bool
	// MaxMessageBytes bounds what is read from Input; zero means no limit
	MaxMessageBytes int
}

// CliShell classifies a single message and prints the result
type CliShell struct {
	analyzer      *core.Analyzer
	selector      *language.Selector
	textProcessor *utils.TextProcessor
	ui            config.UIConfig
	info          core.BundleInfo
	logger        *zap.Logger
	opts          Options
}

var _ ports.Shell = (*CliShell)(nil)

// report is the machine-readable form of a check
type report struct {
	Label             string                  `json:"label"`
	Confidence        float64                 `json:"confidence"`
	ScamProbability   float64                 `json:"scam_probability"`
	ContributingTerms []core.ContributingTerm `json:"contributing_terms"`
	Language          string                  `json:"language"`
	LanguageSupported bool                    `json:"language_supported"`
	DetectedLanguage  string                  `json:"detected_language,omitempty"`
	Model             string                  `json:"model,omitempty"`
}

// NewCliShell creates a new command-line shell
func NewCliShell(
	analyzer *core.Analyzer,
	selector *language.Selector,
	textProcessor *utils.TextProcessor,
	ui config.UIConfig,
	info core.BundleInfo,
	logger *zap.Logger,
	opts Options,
) (*CliShell, error) {
	switch opts.Format {
	case "":
		opts.Format = FormatText
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
	}
	if opts.Output == nil {
		return nil, errors.New("no output writer configured")
	}

	return &CliShell{
		analyzer:      analyzer,
		selector:      selector,
		textProcessor: textProcessor,
		ui:            ui,
		info:          info,
		logger:        logger,
		opts:          opts,
	}, nil
}

// Start runs the check and prints the result. An empty message prints the
// warning and returns core.ErrEmptyInput.
func (c *CliShell) Start() error {
	message, err := c.readMessage()
	if err != nil {
		return err
	}
	message = c.textProcessor.SanitizeUTF8(message)
	sel := c.selector.Select(c.opts.Language)

	c.logger.Debug("Checking message",
		zap.Int("message_length", len(message)),
		zap.String("language", sel.Language))

	startTime := time.Now()
	result, err := c.analyzer.Analyze(message)
	if errors.Is(err, core.ErrEmptyInput) {
		fmt.Fprintln(c.opts.Output, c.ui.Copy.EmptyInputWarning)
		return err
	}
	if err != nil {
		c.logger.Error("Failed to analyze message", zap.Error(err))
		return err
	}
	duration := time.Since(startTime)

	detected, _ := c.selector.DetectHint(message)

	switch c.opts.Format {
	case FormatJSON:
		return c.writeJSON(result, sel, detected)
	case FormatMarkdown:
		return c.writeMarkdown(result, sel, detected)
	default:
		return c.writeText(message, result, sel, detected, duration)
	}
}

// Stop is a no-op for the CLI shell
func (c *CliShell) Stop() error {
	return nil
}

func (c *CliShell) readMessage() (string, error) {
	if c.opts.Message != "" {
		return c.opts.Message, nil
	}
	if c.opts.Input == nil {
		return "", nil
	}

	r := c.opts.Input
	if c.opts.MaxMessageBytes > 0 {
		r = io.LimitReader(r, int64(c.opts.MaxMessageBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	if c.opts.MaxMessageBytes > 0 && len(data) > c.opts.MaxMessageBytes {
		return "", fmt.Errorf("message exceeds %d bytes", c.opts.MaxMessageBytes)
	}
	return string(data), nil
}

func (c *CliShell) writeText(message string, result *core.AnalysisResult, sel language.Selection, detected string, duration time.Duration) error {
	copyText := c.ui.Copy
	view := shell.NewResultView(result, c.ui)
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== Message ===\n")
	fmt.Fprintf(&b, "Length: %d bytes\n", len(message))
	fmt.Fprintf(&b, "Language: %s\n", sel.Language)
	if !sel.Supported {
		fmt.Fprintf(&b, "%s\n", copyText.LanguageNotice)
	}
	if detected != "" {
		fmt.Fprintf(&b, "%s\n", copyText.DetectedHintFor(detected))
	}
	if c.opts.Verbose {
		fmt.Fprintf(&b, "\nPreview:\n%s\n", c.textProcessor.MessagePreview(message))
	}

	fmt.Fprintf(&b, "\n=== Results ===\n")
	fmt.Fprintf(&b, "%s %s\n", copyText.PredictionHeading, view.Label)
	fmt.Fprintf(&b, "%s %s\n", copyText.ConfidenceLabel, view.Confidence)
	if view.ShowExplanation {
		if len(view.Terms) > 0 {
			fmt.Fprintf(&b, "%s %s\n", copyText.SuspiciousWordsLabel, view.TermList())
		} else {
			fmt.Fprintf(&b, "%s\n", copyText.NothingFound)
		}
	}
	if c.opts.Verbose {
		fmt.Fprintf(&b, "Scam probability: %.4f\n", result.ScamProbability)
		fmt.Fprintf(&b, "Model used: %s\n", c.modelName())
		fmt.Fprintf(&b, "Processing time: %v\n", duration)
	}

	_, err := io.WriteString(c.opts.Output, b.String())
	return err
}

func (c *CliShell) writeJSON(result *core.AnalysisResult, sel language.Selection, detected string) error {
	terms := result.ContributingTerms
	if terms == nil {
		terms = []core.ContributingTerm{}
	}
	enc := json.NewEncoder(c.opts.Output)
	enc.SetIndent("", "  ")
	return enc.Encode(report{
		Label:             result.Label.String(),
		Confidence:        result.Confidence,
		ScamProbability:   result.ScamProbability,
		ContributingTerms: terms,
		Language:          sel.Language,
		LanguageSupported: sel.Supported,
		DetectedLanguage:  detected,
		Model:             c.modelName(),
	})
}

func (c *CliShell) writeMarkdown(result *core.AnalysisResult, sel language.Selection, detected string) error {
	copyText := c.ui.Copy
	view := shell.NewResultView(result, c.ui)
	md := markdown.NewMarkdown(c.opts.Output)

	md.H1(copyText.Title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Prediction", view.Label},
			{"Confidence", view.Confidence},
			{"Language", sel.Language},
			{"Model", c.modelName()},
		},
	})
	md.PlainText("")

	if result.Label.IsScam() {
		md.Caution(copyText.ScamLabel)
	} else {
		md.Tip(copyText.LegitLabel)
	}
	md.PlainText("")

	if !sel.Supported {
		md.Note(copyText.LanguageNotice)
		md.PlainText("")
	}
	if detected != "" {
		md.Note(copyText.DetectedHintFor(detected))
		md.PlainText("")
	}

	if view.ShowExplanation {
		md.H2(copyText.ExplanationHeading)
		md.PlainText("")
		if len(view.Terms) > 0 {
			md.PlainText(copyText.ExplanationIntro)
			md.PlainText("")
			rows := make([][]string, 0, len(result.ContributingTerms))
			for _, t := range result.ContributingTerms {
				rows = append(rows, []string{"`" + t.Term + "`", fmt.Sprintf("%.4f", t.Weight)})
			}
			md.Table(markdown.TableSet{
				Header: []string{"Term", "Weight"},
				Rows:   rows,
			})
			md.PlainText("")
			md.PlainText(markdown.Italic(copyText.ExplanationHint))
		} else {
			md.PlainText(copyText.NothingFound)
		}
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText(copyText.Disclaimer)

	return md.Build()
}

func (c *CliShell) modelName() string {
	if c.info.Name == "" {
		return c.info.Source
	}
	if c.info.Version == "" {
		return c.info.Name
	}
	return c.info.Name + " " + c.info.Version
}
