package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/common/logger"
)

// respondError maps an application error to its HTTP response and logs it
// to the durable event record first. 5xx causes are logged but never
// exposed to the caller.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)

	fields := []zap.Field{
		zap.String("reason", appErr.Reason),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("origin", c.Request.Header.Get("Origin")),
	}
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error(c, appErr.Message, appErr.Err, fields...)
		c.JSON(appErr.Code, gin.H{"reason": appErr.Reason, "message": appErr.Message})
		return
	}

	logger.Warn(c, appErr.Message, fields...)
	c.JSON(appErr.Code, appErr)
}
