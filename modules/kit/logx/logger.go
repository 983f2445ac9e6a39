package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是注入到传输层与 actor 系统的最小日志接口。
// 只保留结构化字段加 ctx 透传（trace/span），不做日志框架。
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
