package repository

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"video-dispatcher/entities"
)

type SubmissionRepository interface {
	GetDB() *gorm.DB
	Migrate(ctx context.Context) error
	SaveSubmission(ctx context.Context, submission *entities.Submission) error
	FindSubmissionsByKey(ctx context.Context, bucket, key string) ([]*entities.Submission, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) (SubmissionRepository, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		},
	)
	if err != nil {
		return nil, err
	}
	return &repo{
		db: gormDB,
	}, nil
}

func (r *repo) GetDB() *gorm.DB {
	return r.db
}

func (r *repo) Migrate(ctx context.Context) error {
	return r.GetDB().WithContext(ctx).AutoMigrate(&entities.Submission{})
}

func (r *repo) SaveSubmission(ctx context.Context, submission *entities.Submission) error {
	return r.GetDB().WithContext(ctx).Create(submission).Error
}

func (r *repo) FindSubmissionsByKey(ctx context.Context, bucket, key string) ([]*entities.Submission, error) {
	var submissions []*entities.Submission
	err := r.GetDB().WithContext(ctx).
		Where("bucket = ? AND object_key = ?", bucket, key).
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
