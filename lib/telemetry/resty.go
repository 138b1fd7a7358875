package telemetry

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentResty wraps every request made through the client in a span
// carrying the url, status and response size.
func InstrumentResty(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), req.Method)
		req.SetContext(ctx)
		return nil
	})
	client.OnAfterResponse(onAfterResponse)
	client.OnError(onError)
}

func onAfterResponse(_ *resty.Client, res *resty.Response) error {
	span := trace.SpanFromContext(res.Request.Context())
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(
		attribute.String("http.url", res.Request.URL),
		attribute.Int("http.status_code", res.StatusCode()),
		attribute.Int("http.response_size", len(res.Body())),
		attribute.Int("http.attempt", res.Request.Attempt),
	)
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
	}
	return nil
}

func onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", req.Method))
	span.SetAttributes(attribute.String("http.url", req.URL))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
