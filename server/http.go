package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"video-dispatcher/config"
	"video-dispatcher/constant"
	"video-dispatcher/handler"
)

func RunHttp(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := bootstrap(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("bootstrap")
		return err
	}

	srv := http.Server{
		Handler:           NewRouter(ctx, deps),
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Str("port", cfg.Server.HttpPort).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
			serveErr <- err
			cancel()
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// NewRouter wires the health probe and the bucket event endpoint. Request
// contexts inherit the logger carried by ctx.
func NewRouter(ctx context.Context, deps handler.ServiceDependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), withLogger(ctx))
	addHealth(r)
	r.POST("/events", handler.BucketEventHTTPHandler(deps))
	return r
}

func withLogger(ctx context.Context) gin.HandlerFunc {
	logger := zerolog.Ctx(ctx)
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
