package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"video-dispatcher/config"
	"video-dispatcher/server"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "video-dispatcher",
		Short:         "submit MediaConvert jobs for uploaded videos",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The Lambda runtime starts the binary without arguments.
			if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
				return server.RunLambda(config)
			}
			return cmd.Help()
		},
	}
	rootCmd.AddCommand(
		lambdaCmd(config),
		serverCmd(config),
		consume(config),
		listen(config),
		publish(config),
		history(config),
	)
	return rootCmd
}
