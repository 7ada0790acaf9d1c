package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"video-dispatcher/dto"
	"video-dispatcher/service"
)

// BucketEventHTTPHandler accepts a bucket notification posted by a MinIO
// webhook target or an S3 event relay.
func BucketEventHTTPHandler(deps ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var notification dto.BucketNotification
		if err := c.ShouldBindJSON(&notification); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to bind bucket notification")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		records := dto.FromNotificationEvents(notification.Records)
		if err := deps.DispatchService.HandleBatch(ctx, records); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"dispatched": len(records),
		})
	}
}

func statusFor(err error) int {
	var submissionErr *service.SubmissionError
	var connectivityErr *service.ConnectivityError
	switch {
	case errors.As(err, &submissionErr), errors.As(err, &connectivityErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
