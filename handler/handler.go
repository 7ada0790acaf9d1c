package handler

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"video-dispatcher/dto"
	"video-dispatcher/service"
)

type ServiceDependencies struct {
	DispatchService service.Service
}

// BucketEventHandler handles one AMQP delivery carrying a bucket notification.
func BucketEventHandler(ctx context.Context, msg amqp.Delivery, deps ServiceDependencies) error {
	var notification dto.BucketNotification
	if err := json.Unmarshal(msg.Body, &notification); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal bucket notification")
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Str("event", notification.EventName).
		Int("records", len(notification.Records)).
		Msg("received bucket notification")

	return deps.DispatchService.HandleBatch(ctx, dto.FromNotificationEvents(notification.Records))
}

// LambdaHandler adapts the dispatcher to the Lambda S3 trigger signature.
func LambdaHandler(deps ServiceDependencies) func(ctx context.Context, ev events.S3Event) error {
	return func(ctx context.Context, ev events.S3Event) error {
		return deps.DispatchService.HandleBatch(ctx, dto.FromS3Event(ev))
	}
}

// RecordsHandler dispatches records that arrive already decoded, as they do
// from a MinIO notification stream.
func RecordsHandler(ctx context.Context, records []dto.NotificationRecord, deps ServiceDependencies) error {
	return deps.DispatchService.HandleBatch(ctx, records)
}
