package entities

import (
	"time"

	"github.com/google/uuid"
)

// Submission records one job accepted by MediaConvert.
type Submission struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Bucket    string    `json:"bucket"`
	ObjectKey string    `json:"object_key"`
	SourceURI string    `json:"source_uri"`
	JobID     string    `json:"job_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (Submission) TableName() string {
	return "mediaconvert_submissions"
}
