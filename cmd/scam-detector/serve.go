package main

import (
	"github.com/spf13/cobra"

	"github.com/mikey/naija-scam-detector/internal/di"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser form",
		Long: `Serve starts the local web form (default http://127.0.0.1:8501).

Examples:
  # Serve with the bundled model
  scam-detector serve

  # Serve a model stored in S3 on all interfaces
  scam-detector serve --model s3://models/naija_sms_detector_bundle.json.gz --listen 0.0.0.0:8501`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := overridesFromFlags(cmd)
			overrides.ListenAddress, _ = cmd.Flags().GetString("listen")

			container, err := di.BuildContainer(overrides)
			if err != nil {
				return err
			}
			return runShell(container)
		},
	}

	cmd.Flags().StringP("listen", "l", "", "Listen address (overrides server.listen_address)")

	return cmd
}
