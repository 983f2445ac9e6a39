package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type traceKey struct{}
type spanKey struct{}

// WithTraceID 把 trace_id 挂到 context 上，日志适配层按需取用。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(traceKey{}).(string)
	return s, ok && s != ""
}

// WithSpanID 标记当前处理段（api/actor/repo），随日志输出。
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(spanKey{}).(string)
	return s, ok && s != ""
}

// NewTraceID 生成 16 字节随机 trace_id（hex 编码）。
func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
