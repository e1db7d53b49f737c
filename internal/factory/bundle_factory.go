package factory

import (
	"context"

	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/bundle"
	"github.com/mikey/naija-scam-detector/internal/config"
)

// BundleFactory loads the model bundle once at startup
type BundleFactory struct {
	cfg       *config.Config
	logger    *zap.Logger
	artifacts *ArtifactFactory
}

// NewBundleFactory creates a new bundle factory
func NewBundleFactory(cfg *config.Config, logger *zap.Logger, artifacts *ArtifactFactory) *BundleFactory {
	return &BundleFactory{
		cfg:       cfg,
		logger:    logger,
		artifacts: artifacts,
	}
}

// CreateBundle reads and validates the configured artifact within model.load_timeout
func (f *BundleFactory) CreateBundle() (*bundle.Bundle, error) {
	modelCfg, err := f.cfg.GetModel()
	if err != nil {
		return nil, err
	}
	format, err := bundle.ParseFormat(modelCfg.Format)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), modelCfg.LoadTimeout)
	defer cancel()

	src, err := f.artifacts.CreateSource(ctx)
	if err != nil {
		return nil, err
	}
	return bundle.Load(ctx, src, format, f.logger)
}
