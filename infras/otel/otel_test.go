package otel_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tourbook/infras/otel"
	"tourbook/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, otel.Otel) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	return recorder, otel.NewWithProvider(provider)
}

func TestScope_RecordsAttributesAndErrors(t *testing.T) {
	recorder, o := newRecorder()

	_, scope := o.NewScope(context.Background(), "service", "service.Create")
	scope.SetAttributes(map[string]any{
		"id":     "abc",
		"people": 3,
		"total":  750.0,
		"tags":   []string{"a", "b"},
		"active": true,
	})
	scope.AddEvent("created")
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "service.Create", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "boom", span.Status().Description)
	assert.Len(t, span.Attributes(), 6)

	events := span.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "created", events[0].Name)
	assert.Equal(t, "exception", events[1].Name)
}

func TestScope_TraceIfErrorNil(t *testing.T) {
	recorder, o := newRecorder()

	_, scope := o.NewScope(context.Background(), "repository", "repository.Get")
	scope.TraceIfError(nil)
	scope.TraceError(nil)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}

func TestScope_ClientFailuresAreNotSpanErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int64
		wantStatus codes.Code
		wantEvent  string
	}{
		{name: "not found", err: failure.NotFound("tour not found"), wantCode: http.StatusNotFound, wantStatus: codes.Unset, wantEvent: otel.EventRejected},
		{name: "conflict", err: failure.Conflict("tour is fully booked"), wantCode: http.StatusConflict, wantStatus: codes.Unset, wantEvent: otel.EventRejected},
		{name: "wrapped server error", err: fmt.Errorf("failed to get tour: %w", errors.New("connection reset")), wantCode: http.StatusInternalServerError, wantStatus: codes.Error, wantEvent: "exception"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, o := newRecorder()

			_, scope := o.NewScope(context.Background(), "service", "service.Get")
			scope.TraceError(tt.err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			span := spans[0]
			assert.Equal(t, tt.wantStatus, span.Status().Code)
			require.Len(t, span.Events(), 1)
			assert.Equal(t, tt.wantEvent, span.Events()[0].Name)
			assert.Contains(t, span.Attributes(), attribute.Int64(otel.AttributeFailureCode, tt.wantCode))
		})
	}
}

func TestShutdown(t *testing.T) {
	_, o := newRecorder()

	assert.NoError(t, o.Shutdown(context.Background()))
}
