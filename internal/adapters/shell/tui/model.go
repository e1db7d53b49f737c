package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/adapters/shell"
	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/language"
	"github.com/mikey/naija-scam-detector/internal/utils"
)

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	scam    lipgloss.Style
	legit   lipgloss.Style
	terms   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).MarginBottom(1),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#2ca02c")),
		scam:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d62728")),
		legit:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2ca02c")),
		terms:   lipgloss.NewStyle().Background(lipgloss.Color("236")).Padding(0, 1),
	}
}

// Model is the bubbletea model of the terminal form
type Model struct {
	analyzer      *core.Analyzer
	recorder      core.FeedbackRecorder
	selector      *language.Selector
	textProcessor *utils.TextProcessor
	ui            config.UIConfig
	logger        *zap.Logger
	styles        styles

	textarea textarea.Model
	language string

	warning       string
	hint          string
	result        *core.AnalysisResult
	view          *shell.ResultView
	requestID     string
	feedbackGiven bool
}

// NewModel creates the terminal form
func NewModel(
	analyzer *core.Analyzer,
	recorder core.FeedbackRecorder,
	selector *language.Selector,
	textProcessor *utils.TextProcessor,
	ui config.UIConfig,
	logger *zap.Logger,
) Model {
	ta := textarea.New()
	ta.Placeholder = strings.TrimSpace(ui.Copy.InputLabel)
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.Focus()

	return Model{
		analyzer:      analyzer,
		recorder:      recorder,
		selector:      selector,
		textProcessor: textProcessor,
		ui:            ui,
		logger:        logger,
		styles:        defaultStyles(),
		textarea:      ta,
		language:      selector.Default(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textarea.SetWidth(min(msg.Width-2, 100))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			m.analyze()
			return m, nil
		case "ctrl+l":
			m.language = m.selector.Next(m.language)
			return m, nil
		}

		if !m.textarea.Focused() {
			switch msg.String() {
			case "y":
				m.recordFeedback(core.FeedbackYes)
				return m, nil
			case "n":
				m.recordFeedback(core.FeedbackNo)
				return m, nil
			case "tab", "e":
				return m, m.textarea.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) analyze() {
	message := m.textProcessor.SanitizeUTF8(m.textarea.Value())

	m.warning, m.hint = "", ""
	m.result, m.view = nil, nil
	m.feedbackGiven = false
	m.requestID = uuid.NewString()

	result, err := m.analyzer.Analyze(message)
	if err != nil {
		if errors.Is(err, core.ErrEmptyInput) {
			m.warning = m.ui.Copy.EmptyInputWarning
			return
		}
		m.logger.Error("Failed to analyze message", zap.Error(err))
		m.warning = err.Error()
		return
	}

	view := shell.NewResultView(result, m.ui)
	m.result, m.view = result, &view
	if lang, ok := m.selector.DetectHint(message); ok {
		m.hint = m.ui.Copy.DetectedHintFor(lang)
	}
	m.textarea.Blur()

	m.logger.Debug("Message analyzed",
		zap.String("request_id", m.requestID),
		zap.Stringer("label", result.Label),
		zap.Float64("confidence", result.Confidence),
		zap.String("language", m.language))
}

func (m *Model) recordFeedback(verdict core.FeedbackVerdict) {
	if m.result == nil || m.feedbackGiven || !m.ui.ShowFeedback {
		return
	}
	err := m.recorder.Record(context.Background(), core.Feedback{
		RequestID: m.requestID,
		Label:     m.result.Label,
		Verdict:   verdict,
	})
	if err != nil {
		m.logger.Error("Failed to record feedback", zap.Error(err))
		return
	}
	m.feedbackGiven = true
}

// View implements tea.Model
func (m Model) View() string {
	c := m.ui.Copy
	var b strings.Builder

	b.WriteString(m.styles.title.Render(c.Title) + "\n")
	b.WriteString(c.Subtitle + "\n\n")
	b.WriteString(m.styles.warning.Render(c.Disclaimer) + "\n\n")

	b.WriteString(fmt.Sprintf("%s: %s %s\n", c.LanguageLabel, m.language, m.styles.muted.Render("(ctrl+l)")))
	if !m.selector.Select(m.language).Supported {
		b.WriteString(m.styles.info.Render(c.LanguageNotice) + "\n")
	}
	b.WriteString("\n" + c.InputLabel + "\n")
	b.WriteString(m.textarea.View() + "\n\n")

	if m.warning != "" {
		b.WriteString(m.styles.warning.Render(m.warning) + "\n\n")
	}

	if v := m.view; v != nil {
		if m.hint != "" {
			b.WriteString(m.styles.info.Render(m.hint) + "\n")
		}
		label := m.styles.legit.Render(v.Label)
		if v.IsScam {
			label = m.styles.scam.Render(v.Label)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", c.PredictionHeading, label))
		b.WriteString(fmt.Sprintf("%s %s\n", c.ConfidenceLabel, v.Confidence))

		if v.ShowExplanation {
			b.WriteString("\n" + c.ExplanationHeading + "\n")
			if len(v.Terms) > 0 {
				b.WriteString(c.ExplanationIntro + "\n")
				b.WriteString(fmt.Sprintf("%s %s\n", c.SuspiciousWordsLabel, m.styles.terms.Render(v.TermList())))
				b.WriteString(m.styles.muted.Render(c.ExplanationHint) + "\n")
			} else {
				b.WriteString(c.NothingFound + "\n")
			}
		}

		if m.ui.ShowFeedback {
			b.WriteString("\n" + c.FeedbackQuestion + "\n")
			if m.feedbackGiven {
				b.WriteString(m.styles.success.Render(c.FeedbackThanks) + "\n")
			} else {
				b.WriteString(fmt.Sprintf("%s [y] %s  [n] %s\n", c.FeedbackPrompt, c.FeedbackYes, c.FeedbackNo))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.muted.Render(m.help()) + "\n")
	b.WriteString(m.styles.muted.Render(c.Footer) + "\n")
	return b.String()
}

func (m Model) help() string {
	if m.textarea.Focused() {
		return "ctrl+s analyze • ctrl+l language • esc quit"
	}
	return "tab edit • ctrl+s analyze • ctrl+l language • esc quit"
}
