package shell

import (
	"strconv"
	"strings"

	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
)

// ResultView is an analysis result resolved against the UI settings, shared by
// the web, terminal and command-line shells
type ResultView struct {
	IsScam     bool
	Label      string
	Confidence string
	// ShowExplanation is true for scam results, and for legit results when
	// ui.explain_legit is set
	ShowExplanation bool
	Terms           []string
}

// NewResultView builds the view of a result
func NewResultView(result *core.AnalysisResult, ui config.UIConfig) ResultView {
	label := ui.Copy.LegitLabel
	if result.Label.IsScam() {
		label = ui.Copy.ScamLabel
	}
	return ResultView{
		IsScam:          result.Label.IsScam(),
		Label:           label,
		Confidence:      FormatConfidence(result.Confidence),
		ShowExplanation: result.Label.IsScam() || ui.ExplainLegit,
		Terms:           result.Terms(),
	}
}

// TermList joins the terms the way they are displayed
func (v ResultView) TermList() string {
	return strings.Join(v.Terms, ", ")
}

// FormatConfidence renders a confidence percentage with at most two decimals
func FormatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64) + "%"
}
