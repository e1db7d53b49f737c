package factory

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/adapters/artifact"
	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
)

// ArtifactFactory creates the source of the model bundle
type ArtifactFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewArtifactFactory creates a new artifact factory
func NewArtifactFactory(cfg *config.Config, logger *zap.Logger) *ArtifactFactory {
	return &ArtifactFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSource creates an artifact source based on the scheme of model.source
func (f *ArtifactFactory) CreateSource(ctx context.Context) (core.ArtifactSource, error) {
	modelCfg, err := f.cfg.GetModel()
	if err != nil {
		return nil, err
	}
	if modelCfg.Source == "" {
		return nil, fmt.Errorf("model source is not configured")
	}

	if !strings.HasPrefix(modelCfg.Source, artifact.S3Scheme+"://") {
		return artifact.NewFileSource(modelCfg.Source, f.logger), nil
	}

	// Initialize AWS client
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(modelCfg.S3Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return artifact.NewS3Source(s3.NewFromConfig(awsCfg), modelCfg.Source, f.logger)
}
