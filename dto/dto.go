package dto

import (
	"github.com/aws/aws-lambda-go/events"
	"github.com/minio/minio-go/v7/pkg/notification"
)

// NotificationRecord identifies one newly created object.
type NotificationRecord struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// BucketNotification is the document MinIO delivers to webhook and AMQP
// targets. S3 event notifications share the Records layout.
type BucketNotification struct {
	EventName string               `json:"EventName,omitempty"`
	Key       string               `json:"Key,omitempty"`
	Records   []notification.Event `json:"Records"`
}

// FromNotificationEvents extracts bucket and key from each event. Object keys
// are passed through exactly as delivered.
func FromNotificationEvents(evs []notification.Event) []NotificationRecord {
	records := make([]NotificationRecord, 0, len(evs))
	for _, ev := range evs {
		records = append(records, NotificationRecord{
			Bucket: ev.S3.Bucket.Name,
			Key:    ev.S3.Object.Key,
		})
	}
	return records
}

func FromS3Event(ev events.S3Event) []NotificationRecord {
	records := make([]NotificationRecord, 0, len(ev.Records))
	for _, r := range ev.Records {
		records = append(records, NotificationRecord{
			Bucket: r.S3.Bucket.Name,
			Key:    r.S3.Object.Key,
		})
	}
	return records
}
