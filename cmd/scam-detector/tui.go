package main

import (
	"github.com/spf13/cobra"

	"github.com/mikey/naija-scam-detector/internal/di"
	"github.com/mikey/naija-scam-detector/internal/factory"
)

// NewTUICmd creates the tui command
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal form",
		Long: `Tui runs the form in the terminal.

Keys: ctrl+s analyze, ctrl+l change language, y/n answer the feedback question,
tab edit the message again, esc or ctrl+c quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := overridesFromFlags(cmd)
			overrides.Shell = factory.ShellTUI
			// log lines would draw over the terminal form
			overrides.Quiet = true

			container, err := di.BuildContainer(overrides)
			if err != nil {
				return err
			}
			return runShell(container)
		},
	}
}
