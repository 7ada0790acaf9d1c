package server

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"
	"video-dispatcher/config"
	"video-dispatcher/handler"
)

// RunLambda resolves the MediaConvert endpoint once during cold start and
// then serves S3 trigger invocations until the runtime shuts the process down.
func RunLambda(cfg *config.Config) error {
	ctx := setupLogger(cfg)

	deps, err := bootstrap(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("bootstrap")
		return err
	}

	base := zerolog.Ctx(ctx)
	h := handler.LambdaHandler(deps)
	lambda.Start(func(invocation context.Context, ev events.S3Event) error {
		logger := base.With().Logger()
		if lc, ok := lambdacontext.FromContext(invocation); ok {
			logger = logger.With().Str("aws_request_id", lc.AwsRequestID).Logger()
		}
		return h(logger.WithContext(invocation), ev)
	})
	return nil
}
