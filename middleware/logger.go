package middleware

import (
	"time"

	"budget/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger 使用 logrus 记录每个请求
func RequestLogger() gin.HandlerFunc {
	log := logger.WithComponent(logger.ComponentHTTP)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			logger.FieldMethod:   c.Request.Method,
			logger.FieldPath:     path,
			logger.FieldStatus:   status,
			logger.FieldLatency:  time.Since(start).Milliseconds(),
			logger.FieldClientIP: c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField(logger.FieldError, c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("请求失败")
		case status >= 400:
			entry.Warn("请求异常")
		default:
			entry.Info("请求完成")
		}
	}
}
