package minionotify

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/rs/zerolog"
	"video-dispatcher/dto"
)

var createdEvents = []string{string(notification.ObjectCreatedAll)}

type Listener[T any] interface {
	Listen(ctx context.Context, dependencies T) error
}

type listener[T any] struct {
	client  *minio.Client
	bucket  string
	prefix  string
	suffix  string
	handler func(ctx context.Context, records []dto.NotificationRecord, dependencies T) error
}

// Listen streams ObjectCreated notifications for the bucket and hands each
// notification to the handler as one batch. It returns when ctx is done or the
// stream reports an error.
func (l listener[T]) Listen(ctx context.Context, dependencies T) error {
	zerolog.Ctx(ctx).Info().
		Str("bucket", l.bucket).
		Str("prefix", l.prefix).
		Str("suffix", l.suffix).
		Msg("listening for bucket notifications")

	for info := range l.client.ListenBucketNotification(ctx, l.bucket, l.prefix, l.suffix, createdEvents) {
		if info.Err != nil {
			zerolog.Ctx(ctx).Error().Err(info.Err).Str("bucket", l.bucket).Msg("bucket notification stream failed")
			return info.Err
		}
		if len(info.Records) == 0 {
			continue
		}

		if err := l.handler(ctx, dto.FromNotificationEvents(info.Records), dependencies); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to handle bucket notification")
		}
	}

	return ctx.Err()
}

func NewListener[T any](
	client *minio.Client,
	bucket, prefix, suffix string,
	handler func(ctx context.Context, records []dto.NotificationRecord, dependencies T) error,
) Listener[T] {
	return &listener[T]{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		suffix:  suffix,
		handler: handler,
	}
}
