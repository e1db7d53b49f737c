package web

import (
	"bytes"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/adapters/shell"
	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/language"
)

// pageData is everything the page template renders
type pageData struct {
	Copy               config.CopyText
	Languages          []string
	Language           string
	ShowLanguageNotice bool
	DetectedHint       string
	Message            string
	Warning            string
	Result             *shell.ResultView
	RequestID          string
	ShowFeedback       bool
	FeedbackThanks     bool
}

func (s *Server) newPage(r *http.Request, sel language.Selection, message string) *pageData {
	return &pageData{
		Copy:               s.ui.Copy,
		Languages:          s.selector.Options(),
		Language:           sel.Language,
		ShowLanguageNotice: !sel.Supported,
		Message:            message,
		RequestID:          requestID(r.Context()),
		ShowFeedback:       s.ui.ShowFeedback,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel := s.selector.Select(r.URL.Query().Get("language"))
	s.render(w, r, http.StatusOK, s.newPage(r, sel, ""))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	message := s.textProcessor.SanitizeUTF8(r.PostFormValue("message"))
	page := s.newPage(r, s.selector.Select(r.PostFormValue("language")), message)

	if !s.analyze(w, r, page) {
		return
	}
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	verdict, err := core.ParseFeedbackVerdict(r.PostFormValue("verdict"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	message := s.textProcessor.SanitizeUTF8(r.PostFormValue("message"))
	page := s.newPage(r, s.selector.Select(r.PostFormValue("language")), message)

	// the result is recomputed from the submitted message; nothing is kept between requests
	if !s.analyze(w, r, page) {
		return
	}

	fb := core.Feedback{
		RequestID: r.PostFormValue("request_id"),
		Verdict:   verdict,
	}
	if fb.RequestID == "" {
		fb.RequestID = page.RequestID
	}
	if page.Result.IsScam {
		fb.Label = core.LabelScam
	}
	if err := s.recorder.Record(r.Context(), fb); err != nil {
		if errors.Is(err, core.ErrInvalidFeedback) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.fail(w, r, "Failed to record feedback", err)
		return
	}

	page.FeedbackThanks = true
	s.render(w, r, http.StatusOK, page)
}

// analyze fills the result part of the page. It returns false when the
// response has already been written.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request, page *pageData) bool {
	result, err := s.analyzer.Analyze(page.Message)
	if errors.Is(err, core.ErrEmptyInput) {
		page.Warning = s.ui.Copy.EmptyInputWarning
		s.render(w, r, http.StatusUnprocessableEntity, page)
		return false
	}
	if err != nil {
		s.fail(w, r, "Failed to analyze message", err)
		return false
	}

	view := shell.NewResultView(result, s.ui)
	page.Result = &view

	if lang, ok := s.selector.DetectHint(page.Message); ok {
		page.DetectedHint = s.ui.Copy.DetectedHintFor(lang)
	}

	s.logger.Info("Message analyzed",
		zap.String("request_id", page.RequestID),
		zap.Stringer("label", result.Label),
		zap.Float64("confidence", result.Confidence),
		zap.Int("term_count", len(result.ContributingTerms)),
		zap.String("language", page.Language))
	return true
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if s.cfg.MaxMessageBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxMessageBytes))
	}
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "message too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page *pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, page); err != nil {
		s.fail(w, r, "Failed to render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("Failed to write response",
			zap.String("request_id", requestID(r.Context())),
			zap.Error(err))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg,
		zap.String("request_id", requestID(r.Context())),
		zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
