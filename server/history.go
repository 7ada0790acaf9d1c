package server

import (
	"github.com/rs/zerolog"
	"video-dispatcher/config"
)

// History logs every recorded submission for one object.
func History(cfg *config.Config, bucket, key string) error {
	ctx := setupLogger(cfg)
	if cfg.DB == nil {
		return &config.ConfigurationError{Key: "postgresql_host"}
	}

	repo, err := openRepo(ctx, cfg)
	if err != nil {
		return err
	}

	submissions, err := repo.FindSubmissionsByKey(ctx, bucket, key)
	if err != nil {
		return err
	}

	for _, s := range submissions {
		zerolog.Ctx(ctx).Info().
			Str("id", s.ID.String()).
			Str("job_id", s.JobID).
			Str("status", s.Status).
			Str("source_uri", s.SourceURI).
			Time("created_at", s.CreatedAt).
			Send()
	}
	zerolog.Ctx(ctx).Info().Int("count", len(submissions)).Str("bucket", bucket).Str("key", key).Msg("submission history")
	return nil
}
