package feedback

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/core"
)

// LogRecorder acknowledges feedback by logging it. Nothing is stored or sent anywhere.
type LogRecorder struct {
	logger *zap.Logger
}

var _ core.FeedbackRecorder = (*LogRecorder)(nil)

// NewLogRecorder creates a new log-only feedback recorder
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRecorder{
		logger: logger,
	}
}

// Record validates the verdict and logs the acknowledgment
func (r *LogRecorder) Record(ctx context.Context, fb core.Feedback) error {
	if fb.Verdict != core.FeedbackYes && fb.Verdict != core.FeedbackNo {
		return fmt.Errorf("%w: %q", core.ErrInvalidFeedback, string(fb.Verdict))
	}

	r.logger.Debug("Feedback acknowledged",
		zap.String("request_id", fb.RequestID),
		zap.Stringer("label", fb.Label),
		zap.String("verdict", string(fb.Verdict)))

	return nil
}
