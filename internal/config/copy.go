package config

import (
	"fmt"
	"strings"
)

// Page variants
const (
	VariantNaija    = "naija"
	VariantSMS      = "sms"
	VariantWhatsApp = "whatsapp"
)

// CopyText holds every user-facing string of the interactive shells
type CopyText struct {
	Title                string `mapstructure:"title"`
	Icon                 string `mapstructure:"icon"`
	Subtitle             string `mapstructure:"subtitle"`
	Disclaimer           string `mapstructure:"disclaimer"`
	LanguageLabel        string `mapstructure:"language_label"`
	LanguageNotice       string `mapstructure:"language_notice"`
	DetectedHint         string `mapstructure:"detected_hint"`
	InputLabel           string `mapstructure:"input_label"`
	AnalyzeButton        string `mapstructure:"analyze_button"`
	EmptyInputWarning    string `mapstructure:"empty_input_warning"`
	PredictionHeading    string `mapstructure:"prediction_heading"`
	ScamLabel            string `mapstructure:"scam_label"`
	LegitLabel           string `mapstructure:"legit_label"`
	ConfidenceLabel      string `mapstructure:"confidence_label"`
	ExplanationHeading   string `mapstructure:"explanation_heading"`
	ExplanationIntro     string `mapstructure:"explanation_intro"`
	SuspiciousWordsLabel string `mapstructure:"suspicious_words_label"`
	ExplanationHint      string `mapstructure:"explanation_hint"`
	NothingFound         string `mapstructure:"nothing_found"`
	FeedbackQuestion     string `mapstructure:"feedback_question"`
	FeedbackPrompt       string `mapstructure:"feedback_prompt"`
	FeedbackYes          string `mapstructure:"feedback_yes"`
	FeedbackNo           string `mapstructure:"feedback_no"`
	FeedbackThanks       string `mapstructure:"feedback_thanks"`
	Footer               string `mapstructure:"footer"`
}

// LanguagePlaceholder marks where DetectedHint names the detected language
const LanguagePlaceholder = "{language}"

// DetectedHintFor renders DetectedHint for a detected language
func (c CopyText) DetectedHintFor(language string) string {
	return strings.ReplaceAll(c.DetectedHint, LanguagePlaceholder, language)
}

func naijaCopy() CopyText {
	return CopyText{
		Title:                "🇳🇬 Naija SMS / WhatsApp Scam Detector",
		Icon:                 "📱",
		Subtitle:             "Detect whether a message is scam or legit using a trained machine learning model.",
		Disclaimer:           "⚠️ This is an AI-powered tool and may occasionally make incorrect predictions. Always use your own judgment before taking action based on any message.",
		LanguageLabel:        "🌐 Select Language",
		LanguageNotice:       "🔄 Multilingual support coming soon. Currently, only English is supported.",
		DetectedHint:         "This message looks like it is written in {language}. Predictions are most reliable for English text.",
		InputLabel:           "💬 Paste or type the SMS or WhatsApp message you want to check:",
		AnalyzeButton:        "🚀 Analyze Message",
		EmptyInputWarning:    "Please enter a message first.",
		PredictionHeading:    "Prediction:",
		ScamLabel:            "🚨 Scam Message Detected",
		LegitLabel:           "✅ Legit Message",
		ConfidenceLabel:      "Confidence:",
		ExplanationHeading:   "🧠 Explanation",
		ExplanationIntro:     "These words contributed the most to the prediction:",
		SuspiciousWordsLabel: "🔍 Suspicious Words:",
		ExplanationHint:      "💡 These words are commonly found in scam messages — especially those about money, urgency, or verification.",
		NothingFound:         "No strongly suspicious words were detected.",
		FeedbackQuestion:     "🗣️ Was this prediction correct?",
		FeedbackPrompt:       "Let us know:",
		FeedbackYes:          "Yes",
		FeedbackNo:           "No",
		FeedbackThanks:       "✅ Thanks! Your response has been recorded.",
		Footer:               "Built for 🇳🇬 Naija. Powered by Machine Learning. 🚀",
	}
}

// PresetCopy returns the copy text of a page variant
func PresetCopy(variant string) (CopyText, error) {
	c := naijaCopy()
	switch variant {
	case "", VariantNaija:
		return c, nil
	case VariantSMS:
		c.Title = "📩 SMS Scam Detector"
		c.Subtitle = "Check whether a text message is a scam before you reply, click or pay."
		c.InputLabel = "💬 Paste the SMS you received:"
		c.AnalyzeButton = "🔎 Check SMS"
		c.Footer = "Powered by Machine Learning."
		return c, nil
	case VariantWhatsApp:
		c.Title = "🟢 WhatsApp Scam Checker"
		c.Icon = "💬"
		c.Subtitle = "Forwarded a suspicious WhatsApp message? Paste it below to check it."
		c.InputLabel = "💬 Paste the WhatsApp message you want to check:"
		c.AnalyzeButton = "🚀 Check Message"
		c.Footer = "Built for 🇳🇬 Naija WhatsApp users. Powered by Machine Learning."
		return c, nil
	default:
		return CopyText{}, fmt.Errorf("unknown ui variant: %s", variant)
	}
}
