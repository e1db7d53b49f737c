package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/adapters/shell/cli"
	"github.com/mikey/naija-scam-detector/internal/bundle"
	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/language"
	"github.com/mikey/naija-scam-detector/internal/logging"
	"github.com/mikey/naija-scam-detector/internal/ports"
	"github.com/mikey/naija-scam-detector/internal/utils"
)

// CLIFlags contains the command line flags of the check command
type CLIFlags struct {
	Overrides

	// Output flags
	Format       string
	Language     string
	ExplainLegit bool
}

// BuildCLIContainer creates and configures a dependency injection container for the check command
func BuildCLIContainer(flags *CLIFlags, opts cli.Options) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg, err := createConfig(flags)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Debug("Loaded configuration from file", zap.String("file", used))
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	// Register check shell
	if err := container.Provide(func(
		flags *CLIFlags,
		cfg *config.Config,
		logger *zap.Logger,
		analyzer *core.Analyzer,
		selector *language.Selector,
		textProcessor *utils.TextProcessor,
		b *bundle.Bundle,
	) (ports.Shell, error) {
		ui, err := cfg.GetUI()
		if err != nil {
			return nil, err
		}
		serverCfg, err := cfg.GetServer()
		if err != nil {
			return nil, err
		}

		opts.Format = flags.Format
		opts.Language = flags.Language
		opts.Verbose = flags.Verbose
		if opts.MaxMessageBytes == 0 {
			opts.MaxMessageBytes = serverCfg.MaxMessageBytes
		}
		return cli.NewCliShell(analyzer, selector, textProcessor, ui, b.Info(), logger, opts)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfig reads the config file when one is given and applies the flags on top
func createConfig(flags *CLIFlags) (*config.Config, error) {
	var cfg *config.Config
	if flags.ConfigFile != "" {
		var err error
		cfg, err = config.NewFromFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.NewFromViper(config.NewEmptyViper())
	}

	flags.Overrides.Apply(cfg)
	if flags.ExplainLegit {
		cfg.GetViper().Set("ui.explain_legit", true)
	}
	return cfg, nil
}
