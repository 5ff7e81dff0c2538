package otel

import otelMetric "go.opentelemetry.io/otel/metric"

type meters struct {
	inFlight      otelMetric.Int64UpDownCounter
	duration      otelMetric.Float64Histogram
	parseDuration otelMetric.Float64Histogram
	bodySize      otelMetric.Int64Histogram
}

func newMeters(meter otelMetric.Meter) *meters {
	return &meters{
		inFlight:      upDownCounter(meter, clientPrefix+"request.in_flight", "API client: in flight requests."),
		duration:      histogram(meter, clientPrefix+"request.duration", "API client: requests duration.", "ms"),
		parseDuration: histogram(meter, clientPrefix+"request.parse.duration", "API client: response body materialization duration.", "ms"),
		bodySize:      intHistogram(meter, clientPrefix+"request.body.size", "API client: response body size.", "By"),
	}
}

func upDownCounter(meter otelMetric.Meter, name, desc string) otelMetric.Int64UpDownCounter {
	return mustInstrument(meter.Int64UpDownCounter(name, otelMetric.WithDescription(desc)))
}

func histogram(meter otelMetric.Meter, name, desc string, unit string) otelMetric.Float64Histogram {
	return mustInstrument(meter.Float64Histogram(name, otelMetric.WithDescription(desc), otelMetric.WithUnit(unit)))
}

func intHistogram(meter otelMetric.Meter, name, desc string, unit string) otelMetric.Int64Histogram {
	return mustInstrument(meter.Int64Histogram(name, otelMetric.WithDescription(desc), otelMetric.WithUnit(unit)))
}

func mustInstrument[T any](instrument T, err error) T {
	if err != nil {
		panic(err)
	}
	return instrument
}
