package config

import (
	"fmt"
	"time"
)

// ModelConfig represents where and how the model bundle is loaded
type ModelConfig struct {
	Source      string
	Format      string
	S3Region    string
	LoadTimeout time.Duration
}

// ServerConfig represents the configuration of the interactive shells
type ServerConfig struct {
	Shell           string
	ListenAddress   string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxMessageBytes bounds a submitted message; zero or less means no limit
	MaxMessageBytes int
}

// UIConfig represents the presentation settings
type UIConfig struct {
	Variant      string
	ExplainLegit bool
	ShowFeedback bool
	PreviewBytes int
	Copy         CopyText
}

// LanguageConfig represents the language selector
type LanguageConfig struct {
	Options []string
	Default string
	Detect  bool
}

// LoggingConfig represents the logger settings
type LoggingConfig struct {
	Level  string
	Format string
}

// GetModel returns the model bundle configuration
func (c *Config) GetModel() (ModelConfig, error) {
	timeout, err := c.GetDuration("model.load_timeout")
	if err != nil {
		return ModelConfig{}, fmt.Errorf("invalid model load timeout: %w", err)
	}
	return ModelConfig{
		Source:      c.GetString("model.source"),
		Format:      c.GetString("model.format"),
		S3Region:    c.GetString("model.s3_region"),
		LoadTimeout: timeout,
	}, nil
}

// GetServer returns the shell configuration
func (c *Config) GetServer() (ServerConfig, error) {
	read, err := c.GetDuration("server.read_timeout")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server read timeout: %w", err)
	}
	write, err := c.GetDuration("server.write_timeout")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server write timeout: %w", err)
	}
	shutdown, err := c.GetDuration("server.shutdown_timeout")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server shutdown timeout: %w", err)
	}
	return ServerConfig{
		Shell:           c.GetString("server.shell"),
		ListenAddress:   c.GetString("server.listen_address"),
		ReadTimeout:     read,
		WriteTimeout:    write,
		ShutdownTimeout: shutdown,
		MaxMessageBytes: c.GetInt("server.max_message_bytes"),
	}, nil
}

// GetUI returns the presentation configuration with copy text resolved
// from the selected variant and any ui.copy overrides
func (c *Config) GetUI() (UIConfig, error) {
	variant := c.GetString("ui.variant")
	copyText, err := PresetCopy(variant)
	if err != nil {
		return UIConfig{}, err
	}
	if c.v.IsSet("ui.copy") {
		if err := c.v.UnmarshalKey("ui.copy", &copyText); err != nil {
			return UIConfig{}, fmt.Errorf("invalid ui copy overrides: %w", err)
		}
	}
	return UIConfig{
		Variant:      variant,
		ExplainLegit: c.GetBool("ui.explain_legit"),
		ShowFeedback: c.GetBool("ui.show_feedback"),
		PreviewBytes: c.GetInt("ui.preview_bytes"),
		Copy:         copyText,
	}, nil
}

// GetLanguage returns the language selector configuration
func (c *Config) GetLanguage() LanguageConfig {
	return LanguageConfig{
		Options: c.GetStringSlice("language.options"),
		Default: c.GetString("language.default"),
		Detect:  c.GetBool("language.detect"),
	}
}

// GetLogging returns the logger configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}
