package logger

import (
	"io"
	"os"
	"strings"

	"budget/config"

	"github.com/sirupsen/logrus"
)

// 常用日志字段
const (
	FieldComponent = "component"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldTxID      = "transaction_id"
	FieldTxType    = "type"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"
	FieldError     = "error"
)

// 组件名
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentDatabase  = "database"
	ComponentBudget    = "budget"
	ComponentIntegrity = "integrity"
)

// Init 根据配置初始化全局 logrus
func Init(cfg config.LogConfig) {
	setup(logrus.StandardLogger(), cfg, os.Stdout)
}

func setup(l *logrus.Logger, cfg config.LogConfig, out io.Writer) {
	l.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
}

// WithComponent 返回带组件字段的日志入口
func WithComponent(component string) *logrus.Entry {
	return logrus.WithField(FieldComponent, component)
}
