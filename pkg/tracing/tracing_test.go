package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder 把全局Provider替换为内存记录器，测试结束后恢复
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	// exporter连接是惰性的，没有collector也能初始化
	shutdown, err := InitTracer("bookcatalog-test", "localhost:4317")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	useRecorder(t)

	t.Run("子Span继承TraceID", func(t *testing.T) {
		ctx, root := StartSpan(context.Background(), "catalog", "BookUpsert.Create")
		defer root.End()

		_, child := StartSpan(ctx, "catalog", "ResolveEditor")
		defer child.End()

		assert.True(t, root.SpanContext().IsValid())
		assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
		assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())
	})
}

func TestEndSpan(t *testing.T) {
	recorder := useRecorder(t)

	_, ok := StartSpan(context.Background(), "catalog", "Ok")
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "catalog", "Failed")
	EndSpan(failed, errors.New("图书不存在"))

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, "Ok", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)

	assert.Equal(t, "Failed", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "图书不存在", ended[1].Status().Description)
	assert.Len(t, ended[1].Events(), 1)
}

func TestExtractIDs(t *testing.T) {
	useRecorder(t)

	t.Run("有效Context", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "catalog", "Extract")
		defer span.End()

		assert.Len(t, ExtractTraceID(ctx), 32)
		assert.Len(t, ExtractSpanID(ctx), 16)
	})

	t.Run("无Span的Context", func(t *testing.T) {
		assert.Empty(t, ExtractTraceID(context.Background()))
		assert.Empty(t, ExtractSpanID(context.Background()))
	})
}
