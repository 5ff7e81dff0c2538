// Package otel provides OpenTelemetry tracing and metrics for performed requests.
//
// Span "restmash.go.client.request" wraps the whole Perform call,
// span "restmash.go.client.request.body.parse" tracks the response body materialization.
// Metrics names start with "restmash.go.client." (clientPrefix const), see the meters struct.
//
// Query and body parameters, and headers, are added to the span attributes,
// sensitive values can be masked by WithRedactedQueryParam, WithRedactedQueryParamPattern and WithRedactedHeaders options.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelMetric "go.opentelemetry.io/otel/metric"
	metricNoop "go.opentelemetry.io/otel/metric/noop"
	otelTrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/restmash/go-client/pkg/request/trace"
)

const (
	traceAppName     = "github.com/restmash/go-client"
	attrResourceName = attribute.Key("resource.name")
	clientPrefix     = "restmash.go.client."
	requestSpanName  = clientPrefix + "request"
	parseSpanName    = clientPrefix + "request.body.parse"
	// Extra attributes for DataDog.
	attrSpanKind            = attribute.Key("span.kind")
	attrSpanKindValueClient = "client"
	attrSpanType            = attribute.Key("span.type")
	attrSpanTypeValueHTTP   = "http"
)

func NewTrace(tracerProvider otelTrace.TracerProvider, meterProvider otelMetric.MeterProvider, opts ...Option) trace.Factory {
	cfg := newConfig(opts)
	if tracerProvider == nil {
		tracerProvider = noop.NewTracerProvider()
	}
	if meterProvider == nil {
		meterProvider = metricNoop.NewMeterProvider()
	}
	tracer := tracerProvider.Tracer(traceAppName)
	meters := newMeters(meterProvider.Meter(traceAppName))

	return func(ctx context.Context, req trace.Request) (context.Context, *trace.ClientTrace) {
		tc := &trace.ClientTrace{}
		attrs := newAttributes(cfg, req)

		// Metrics
		startTime := time.Now()
		meters.inFlight.Add(ctx, 1, otelMetric.WithAttributes(attrs.definition...))

		// Tracing
		var span otelTrace.Span
		ctx, span = tracer.Start(
			ctx,
			requestSpanName,
			otelTrace.WithSpanKind(otelTrace.SpanKindClient),
			otelTrace.WithAttributes(
				attrResourceName.String(req.Path),
				attrSpanKind.String(attrSpanKindValueClient),
				attrSpanType.String(attrSpanTypeValueHTTP),
			),
			otelTrace.WithAttributes(attrs.definition...),
			otelTrace.WithAttributes(attrs.definitionExtra...),
		)

		tc.TransportDone = func(body string, err error) {
			if err == nil {
				span.SetAttributes(attribute.Int("response.body.size", len(body)))
				meters.bodySize.Record(ctx, int64(len(body)), otelMetric.WithAttributes(attrs.definition...))
			}
		}

		var parseSpan otelTrace.Span
		var parseStartTime time.Time
		tc.MaterializeStart = func() {
			parseStartTime = time.Now()
			_, parseSpan = tracer.Start(ctx, parseSpanName, otelTrace.WithSpanKind(otelTrace.SpanKindInternal))
		}

		tc.RequestProcessed = func(result any, err error) {
			resultAttrs := []attribute.KeyValue{
				attribute.Bool("result.success", err == nil),
				attribute.String("result.shape", trace.ShapeOf(result)),
			}
			meterAttrs := make([]attribute.KeyValue, 0, len(attrs.definition)+1)
			meterAttrs = append(meterAttrs, attrs.definition...)
			meterAttrs = append(meterAttrs, resultAttrs[0])

			// Parsing
			if parseSpan != nil {
				meters.parseDuration.Record(ctx, msSince(parseStartTime), otelMetric.WithAttributes(meterAttrs...))
				if err != nil {
					parseSpan.RecordError(err)
					parseSpan.SetStatus(codes.Error, err.Error())
				}
				parseSpan.End()
			}

			// Metrics
			meters.inFlight.Add(ctx, -1, otelMetric.WithAttributes(attrs.definition...)) // same attributes/dimensions as above (+1)!
			meters.duration.Record(ctx, msSince(startTime), otelMetric.WithAttributes(meterAttrs...))

			// Tracing
			span.SetAttributes(resultAttrs...)
			if err == nil {
				span.End()
			} else {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.End(otelTrace.WithStackTrace(true))
			}
		}

		return ctx, tc
	}
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
