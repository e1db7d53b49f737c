package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/adapters/shell/tui"
	"github.com/mikey/naija-scam-detector/internal/adapters/shell/web"
	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/language"
	"github.com/mikey/naija-scam-detector/internal/ports"
	"github.com/mikey/naija-scam-detector/internal/utils"
)

// Interactive shell types
const (
	ShellWeb = "web"
	ShellTUI = "tui"
)

// ShellFactory creates interactive shells based on configuration
type ShellFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	analyzer      *core.Analyzer
	recorder      core.FeedbackRecorder
	selector      *language.Selector
	textProcessor *utils.TextProcessor
}

// NewShellFactory creates a new shell factory
func NewShellFactory(
	cfg *config.Config,
	logger *zap.Logger,
	analyzer *core.Analyzer,
	recorder core.FeedbackRecorder,
	selector *language.Selector,
	textProcessor *utils.TextProcessor,
) *ShellFactory {
	return &ShellFactory{
		cfg:           cfg,
		logger:        logger,
		analyzer:      analyzer,
		recorder:      recorder,
		selector:      selector,
		textProcessor: textProcessor,
	}
}

// CreateShell creates the shell named by server.shell
func (f *ShellFactory) CreateShell() (ports.Shell, error) {
	ui, err := f.cfg.GetUI()
	if err != nil {
		return nil, err
	}
	serverCfg, err := f.cfg.GetServer()
	if err != nil {
		return nil, err
	}

	switch serverCfg.Shell {
	case ShellWeb:
		return web.NewServer(
			f.analyzer,
			f.recorder,
			f.selector,
			f.textProcessor,
			ui,
			serverCfg,
			f.logger,
		)
	case ShellTUI:
		model := tui.NewModel(
			f.analyzer,
			f.recorder,
			f.selector,
			f.textProcessor,
			ui,
			f.logger,
		)
		return tui.NewProgram(model, nil, nil, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported shell type: %s", serverCfg.Shell)
	}
}
