package artifact

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// FileSource reads the model bundle from the local filesystem
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a new file source
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Open opens the artifact file
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}

	s.logger.Debug("Opened model file", zap.String("path", s.path))
	return f, nil
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.path
}
