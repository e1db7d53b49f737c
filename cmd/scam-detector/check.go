package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"github.com/mikey/naija-scam-detector/internal/adapters/shell/cli"
	"github.com/mikey/naija-scam-detector/internal/di"
	"github.com/mikey/naija-scam-detector/internal/ports"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [message]",
		Short: "Classify one message and print the result",
		Long: `Check classifies a single message. The message is taken from the arguments,
from --file, or from stdin.

Examples:
  scam-detector check "URGENT: your account will be suspended, verify now"
  scam-detector check --file message.txt --format markdown
  echo "See you at 6pm for dinner" | scam-detector check --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("file", "f", "", "Read the message from a file")
	cmd.Flags().StringP("format", "o", cli.FormatText, "Output format: text, json or markdown")
	cmd.Flags().StringP("language", "L", "", "Selected language (only English is supported)")
	cmd.Flags().Bool("explain-legit", false, "Show contributing words for legit predictions too")

	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	flags := &di.CLIFlags{Overrides: overridesFromFlags(cmd)}
	flags.Format, _ = cmd.Flags().GetString("format")
	flags.Language, _ = cmd.Flags().GetString("language")
	flags.ExplainLegit, _ = cmd.Flags().GetBool("explain-legit")
	inputFile, _ := cmd.Flags().GetString("file")

	opts := cli.Options{
		Message: strings.Join(args, " "),
		Input:   cmd.InOrStdin(),
		Output:  cmd.OutOrStdout(),
	}
	if opts.Message != "" && inputFile != "" {
		return errors.New("pass the message as arguments or with --file, not both")
	}
	if inputFile != "" {
		file, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		opts.Input = file
	}

	container, err := di.BuildCLIContainer(flags, opts)
	if err != nil {
		return err
	}

	err = container.Invoke(func(shell ports.Shell) error {
		return shell.Start()
	})
	if err != nil {
		return dig.RootCause(err)
	}
	return nil
}
