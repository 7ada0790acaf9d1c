package server

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"video-dispatcher/config"
	"video-dispatcher/constant"
	"video-dispatcher/handler"
	"video-dispatcher/repository"
	"video-dispatcher/service"
)

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}

// bootstrap validates the configuration, binds the MediaConvert client and
// opens the optional submission ledger. It runs once per process, before any
// event is accepted.
func bootstrap(ctx context.Context, cfg *config.Config) (handler.ServiceDependencies, error) {
	if err := cfg.Validate(); err != nil {
		return handler.ServiceDependencies{}, err
	}

	awsCfg, err := cfg.LoadAWS(ctx)
	if err != nil {
		return handler.ServiceDependencies{}, err
	}

	client, err := service.NewClient(ctx, awsCfg, cfg.MediaConvert.Endpoint)
	if err != nil {
		return handler.ServiceDependencies{}, err
	}

	var repo repository.SubmissionRepository
	if cfg.DB != nil {
		repo, err = openRepo(ctx, cfg)
		if err != nil {
			return handler.ServiceDependencies{}, err
		}
	}

	return handler.ServiceDependencies{
		DispatchService: service.NewService(client, cfg.MediaConvert.Role, repo),
	}, nil
}

func openRepo(ctx context.Context, cfg *config.Config) (repository.SubmissionRepository, error) {
	repo, err := repository.NewRepo(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Msg("submission ledger enabled")
	return repo, nil
}
