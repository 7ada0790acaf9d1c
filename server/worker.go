package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"video-dispatcher/config"
	"video-dispatcher/dto"
	"video-dispatcher/handler"
	"video-dispatcher/pkg/minionotify"
	"video-dispatcher/pkg/rabbitmq"
)

// RunConsumer dispatches bucket notifications delivered through RabbitMQ.
func RunConsumer(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	deps, err := bootstrap(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("bootstrap")
		return err
	}

	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn")
		return err
	}

	consumer := rabbitmq.NewConsumer(conn, cfg.Queue, cfg.Server.Workers, handler.BucketEventHandler)
	if err := consumer.Consume(ctx, deps); err != nil && !errors.Is(err, context.Canceled) {
		zerolog.Ctx(ctx).Error().Err(err).Msg("bucket event consumer error")
		return err
	}

	zerolog.Ctx(ctx).Info().Msg("consumer stopped")
	return nil
}

// RunListener dispatches notifications streamed straight from MinIO.
func RunListener(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Storage == nil {
		return &config.ConfigurationError{Key: "minio.url"}
	}
	if cfg.MinIO.Bucket == "" {
		return &config.ConfigurationError{Key: "minio.bucket"}
	}

	deps, err := bootstrap(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("bootstrap")
		return err
	}

	listener := minionotify.NewListener(cfg.Storage, cfg.MinIO.Bucket, cfg.MinIO.Prefix, cfg.MinIO.Suffix, handler.RecordsHandler)
	if err := listener.Listen(ctx, deps); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	zerolog.Ctx(ctx).Info().Msg("listener stopped")
	return nil
}

// Publish re-drives objects by publishing an ObjectCreated notification.
func Publish(cfg *config.Config, bucket string, keys []string) error {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		return err
	}

	n := rabbitmq.NewObjectCreatedNotification(recordsFor(bucket, keys))
	if err := rabbitmq.Publish(ctx, conn, cfg.Queue, n); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to publish notification")
		return err
	}

	zerolog.Ctx(ctx).Info().Str("bucket", bucket).Int("objects", len(keys)).Msg("notification published")
	return nil
}

func recordsFor(bucket string, keys []string) []dto.NotificationRecord {
	records := make([]dto.NotificationRecord, 0, len(keys))
	for _, key := range keys {
		records = append(records, dto.NotificationRecord{Bucket: bucket, Key: key})
	}
	return records
}
