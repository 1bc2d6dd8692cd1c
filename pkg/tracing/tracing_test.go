package tracing

import (
	"context"
	"testing"
)

// TestExtractTraceID_EmptyContext 测试无Span的Context返回空串
func TestExtractTraceID_EmptyContext(t *testing.T) {
	if id := ExtractTraceID(context.Background()); id != "" {
		t.Errorf("无Span的Context应返回空TraceID，实际%q", id)
	}
	if id := ExtractSpanID(context.Background()); id != "" {
		t.Errorf("无Span的Context应返回空SpanID，实际%q", id)
	}
}

// TestStartSpan_NoProvider 测试未初始化Provider时StartSpan不panic
// 未调用InitTracer时otel返回noop tracer，Span无效但可安全使用
func TestStartSpan_NoProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "inventory", "ApplyTransition")
	defer span.End()

	if ctx == nil {
		t.Fatal("StartSpan不应返回nil context")
	}
}
