package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/di"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scam-detector",
		Short: "Classify SMS and WhatsApp messages as scam or legit",
		Long: `scam-detector classifies a short text message as scam or legit with a
pre-trained text classifier and shows the words that most influenced the decision.

The model bundle is loaded once at startup from model.source, a local path or an
s3://bucket/key URI.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file")
	cmd.PersistentFlags().StringP("model", "m", "", "Model bundle path or s3:// URI (overrides model.source)")
	cmd.PersistentFlags().StringP("variant", "V", "", "Copy text variant: naija, sms or whatsapp")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json-log", false, "Output logs in JSON format")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewTUICmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		// the empty-input warning has already been printed by check
		if !errors.Is(err, core.ErrEmptyInput) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// overridesFromFlags reads the persistent flags
func overridesFromFlags(cmd *cobra.Command) di.Overrides {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	model, _ := flags.GetString("model")
	variant, _ := flags.GetString("variant")
	verbose, _ := flags.GetBool("verbose")
	jsonLog, _ := flags.GetBool("json-log")

	return di.Overrides{
		ConfigFile:  configFile,
		ModelSource: model,
		Variant:     variant,
		Verbose:     verbose,
		JSONLog:     jsonLog,
	}
}
