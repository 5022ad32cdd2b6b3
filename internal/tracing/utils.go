package tracing

import (
	"context"
	"encoding/json"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/flowstack/resendstack/internal/utils"
)

const (
	SpanTagExecutionID = "execution-id"
	SpanTagFlowID      = "flow-id"
	SpanTagNamespace   = "namespace"
	SpanTagTaskID      = "task-id"
	SpanTagComponent   = "component"
)

const (
	SpanTagComponentService = "service"
	SpanTagComponentTask    = "task"
	SpanTagComponentStorage = "storage"
)

func StartTracerSpan(ctx context.Context, operationName string) (opentracing.Span, context.Context) {
	serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
	return serverSpan, opentracing.ContextWithSpan(ctx, serverSpan)
}

func setDefaultSpanTags(ctx context.Context, span opentracing.Span) {
	scope := utils.GetRunScope(ctx)
	if scope.ExecutionID != "" {
		span.SetTag(SpanTagExecutionID, scope.ExecutionID)
	}
	if scope.FlowID != "" {
		span.SetTag(SpanTagFlowID, scope.FlowID)
	}
	if scope.Namespace != "" {
		span.SetTag(SpanTagNamespace, scope.Namespace)
	}
	if scope.TaskID != "" {
		span.SetTag(SpanTagTaskID, scope.TaskID)
	}
}

func SetDefaultServiceSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentService(span)
}

func SetDefaultTaskSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentTask(span)
}

func SetDefaultStorageSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentStorage(span)
}

func TraceErr(span opentracing.Span, err error, fields ...log.Field) {
	if span == nil || err == nil {
		return
	}
	// Log the error with the fields
	ext.LogError(span, err, fields...)
}

func LogObjectAsJson(span opentracing.Span, name string, object any) {
	if object == nil {
		span.LogFields(log.String(name, "nil"))
	}
	jsonObject, err := json.Marshal(object)
	if err == nil {
		span.LogFields(log.String(name, string(jsonObject)))
	} else {
		span.LogFields(log.Object(name, object))
	}
}

func TagComponentService(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentService)
}

func TagComponentTask(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentTask)
}

func TagComponentStorage(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentStorage)
}
