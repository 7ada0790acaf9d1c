package cmd

import (
	"github.com/spf13/cobra"
	"video-dispatcher/config"
	server2 "video-dispatcher/server"
)

func serverCmd(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "start http server accepting bucket notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server2.RunHttp(config)
		},
	}
}

func lambdaCmd(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "serve S3 trigger invocations in the Lambda runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server2.RunLambda(config)
		},
	}
}

func consume(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "consume bucket notifications from RabbitMQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server2.RunConsumer(config)
		},
	}
}

func listen(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "listen for bucket notifications on MinIO",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server2.RunListener(config)
		},
	}
}

func publish(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <bucket> <key>...",
		Short: "publish an ObjectCreated notification for existing objects",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return server2.Publish(config, args[0], args[1:])
		},
	}
}

func history(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "history <bucket> <key>",
		Short: "show recorded submissions for an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return server2.History(config, args[0], args[1])
		},
	}
}
