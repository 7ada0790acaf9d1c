package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/minio/minio-go/v7/pkg/notification"
	amqp "github.com/rabbitmq/amqp091-go"
	"video-dispatcher/config"
	"video-dispatcher/constant"
	"video-dispatcher/dto"
)

// NewObjectCreatedNotification builds the notification document MinIO would
// publish for the given objects.
func NewObjectCreatedNotification(records []dto.NotificationRecord) dto.BucketNotification {
	n := dto.BucketNotification{EventName: constant.ObjectCreatedEvent}
	for _, r := range records {
		var ev notification.Event
		ev.EventSource = "minio:s3"
		ev.EventName = constant.ObjectCreatedEvent
		ev.S3.Bucket.Name = r.Bucket
		ev.S3.Object.Key = r.Key
		n.Records = append(n.Records, ev)
	}
	if len(records) == 1 {
		n.Key = records[0].Bucket + "/" + records[0].Key
	}
	return n
}

// Publish sends one notification to the dispatch exchange.
func Publish(ctx context.Context, conn *amqp.Connection, cfg *config.RabbitMQ, n dto.BucketNotification) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := Declare(ch, cfg); err != nil {
		return err
	}

	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		cfg.ExchangeName,
		cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
