package api

import (
	"errors"
	"strconv"
	"time"

	"budget/logger"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// 客户端可见的错误消息
const (
	MsgMonthNotFound       = "Month not found"
	MsgTransactionNotFound = "Transaction not found"
	MsgMonthExists         = "Month already exists"
)

// handleError 将服务层错误映射为 HTTP 响应
func handleError(c *gin.Context, err error, fallback string) {
	var ve *models.ValidationError
	switch {
	case errors.Is(err, service.ErrMonthNotFound):
		NotFound(c, MsgMonthNotFound)
	case errors.Is(err, service.ErrTransactionNotFound):
		NotFound(c, MsgTransactionNotFound)
	case errors.Is(err, service.ErrMonthExists):
		BadRequest(c, MsgMonthExists)
	case errors.As(err, &ve):
		BadRequest(c, ve.Message)
	default:
		logger.WithComponent(logger.ComponentHTTP).
			WithField(logger.FieldPath, c.FullPath()).
			WithField(logger.FieldError, err).
			Error(fallback)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// monthKey 解析路径中的 :year 与 :month
func monthKey(c *gin.Context) (int, string, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		BadRequest(c, "Invalid year: "+c.Param("year"))
		return 0, "", false
	}
	return year, c.Param("month"), true
}

// transactionID 解析路径中的 :id
func transactionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "Invalid transaction id")
		return 0, false
	}
	return uint(id), true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate 支持 RFC3339、2006-01-02 15:04:05、2006-01-02 三种格式
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date, expected RFC3339, 2006-01-02 15:04:05 or 2006-01-02")
}
