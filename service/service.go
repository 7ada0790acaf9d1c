package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"video-dispatcher/dto"
	"video-dispatcher/entities"
	"video-dispatcher/repository"
)

type Service interface {
	HandleBatch(ctx context.Context, records []dto.NotificationRecord) error
}

type service struct {
	client JobCreator
	role   string
	repo   repository.SubmissionRepository
}

// NewService returns the dispatcher. repo may be nil, in which case accepted
// jobs are only logged.
func NewService(client JobCreator, role string, repo repository.SubmissionRepository) Service {
	return &service{
		client: client,
		role:   role,
		repo:   repo,
	}
}

// HandleBatch submits one job per record, in order, one call at a time. The
// first failure stops the batch and is returned unchanged.
func (s *service) HandleBatch(ctx context.Context, records []dto.NotificationRecord) error {
	logger := zerolog.Ctx(ctx).With().Str("invocation_id", uuid.NewString()).Int("records", len(records)).Logger()
	ctx = logger.WithContext(ctx)

	for i, record := range records {
		sourceURI := SourceURI(record.Bucket, record.Key)
		result, err := CreateJob(ctx, s.client, s.role, sourceURI, record.Bucket)
		if err != nil {
			logger.Error().Err(err).Int("index", i).Str("key", record.Key).Str("bucket", record.Bucket).Msg("failed to create mediaconvert job")
			return err
		}

		logger.Info().
			Str("status", string(result.Status)).
			Str("job_id", result.ID).
			Str("key", record.Key).
			Str("bucket", record.Bucket).
			Msg("response from mediaconvert")

		s.record(ctx, record, sourceURI, result)
	}

	return nil
}

func (s *service) record(ctx context.Context, record dto.NotificationRecord, sourceURI string, result JobResult) {
	if s.repo == nil {
		return
	}

	submission := &entities.Submission{
		ID:        uuid.New(),
		Bucket:    record.Bucket,
		ObjectKey: record.Key,
		SourceURI: sourceURI,
		JobID:     result.ID,
		Status:    string(result.Status),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveSubmission(ctx, submission); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("job_id", result.ID).Msg("failed to record submission")
	}
}
