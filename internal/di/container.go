package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/adapters/feedback"
	"github.com/mikey/naija-scam-detector/internal/bundle"
	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/factory"
	"github.com/mikey/naija-scam-detector/internal/language"
	"github.com/mikey/naija-scam-detector/internal/logging"
	"github.com/mikey/naija-scam-detector/internal/ports"
	"github.com/mikey/naija-scam-detector/internal/utils"
)

// Overrides are command line values that take precedence over the config file
type Overrides struct {
	ConfigFile    string
	ModelSource   string
	Shell         string
	ListenAddress string
	Variant       string
	Verbose       bool
	// Quiet limits logging to errors unless Verbose is also set
	Quiet   bool
	JSONLog bool
}

// Apply writes the non-empty overrides into cfg
func (o Overrides) Apply(cfg *config.Config) {
	v := cfg.GetViper()
	if o.ModelSource != "" {
		v.Set("model.source", o.ModelSource)
	}
	if o.Shell != "" {
		v.Set("server.shell", o.Shell)
	}
	if o.ListenAddress != "" {
		v.Set("server.listen_address", o.ListenAddress)
	}
	if o.Variant != "" {
		v.Set("ui.variant", o.Variant)
	}
	switch {
	case o.Verbose:
		v.Set("logging.level", "debug")
	case o.Quiet:
		v.Set("logging.level", "error")
	}
	if o.JSONLog {
		v.Set("logging.format", "json")
	}
}

// BuildContainer creates and configures a dependency injection container
// for the interactive shells
func BuildContainer(overrides Overrides) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		cfg, err := config.NewFromFile(overrides.ConfigFile)
		if err != nil {
			return nil, err
		}
		overrides.Apply(cfg)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	// Register shell
	if err := container.Provide(factory.NewShellFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.ShellFactory) (ports.Shell, error) {
		return f.CreateShell()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideCommon registers everything between the logger and the shells
func provideCommon(container *dig.Container) error {
	// Register factories
	if err := container.Provide(factory.NewArtifactFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewBundleFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}

	// Register model bundle
	if err := container.Provide(func(f *factory.BundleFactory) (*bundle.Bundle, error) {
		return f.CreateBundle()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(b *bundle.Bundle) core.ModelBundle {
		return b
	}); err != nil {
		return err
	}

	// Register analyzer
	if err := container.Provide(core.NewAnalyzer); err != nil {
		return err
	}

	// Register feedback recorder
	if err := container.Provide(func(logger *zap.Logger) core.FeedbackRecorder {
		return feedback.NewLogRecorder(logger)
	}); err != nil {
		return err
	}

	// Register language selector
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*language.Selector, error) {
		return language.NewSelector(cfg.GetLanguage(), logger)
	}); err != nil {
		return err
	}

	return nil
}
