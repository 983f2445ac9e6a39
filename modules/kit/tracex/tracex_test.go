package tracex

import (
	"context"
	"testing"
)

func TestTraceID_透传与缺省(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("trace_id 透传失败: %q ok=%v", got, ok)
	}
	if _, ok := TraceIDFrom(context.Background()); ok {
		t.Fatalf("空 context 不该有 trace_id")
	}
}

func TestSpanID_透传(t *testing.T) {
	ctx := WithSpanID(context.Background(), "actor")
	if got, ok := SpanIDFrom(ctx); !ok || got != "actor" {
		t.Fatalf("span_id 透传失败: %q ok=%v", got, ok)
	}
}

func TestNewTraceID_长度(t *testing.T) {
	if id := NewTraceID(); len(id) != 32 {
		t.Fatalf("trace_id 应为 32 个 hex 字符, got %q", id)
	}
}
