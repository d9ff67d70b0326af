package tracing_test

import (
	"testing"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/config"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInit(t *testing.T) {
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	t.Run("Without Exporter - Spans Are Sampled", func(t *testing.T) {
		// Arrange
		cfg := config.OTel{ServiceName: "antiques-catalogue-test", SamplerRatio: 1}

		// Act
		shutdown, err := tracing.Init(t.Context(), cfg, "test")

		// Assert
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(t.Context(), "op")
		assert.True(t, span.SpanContext().IsValid())
		assert.True(t, span.SpanContext().IsSampled())
		span.End()

		require.NoError(t, shutdown(t.Context()))
	})

	t.Run("Zero Ratio - Root Spans Dropped", func(t *testing.T) {
		shutdown, err := tracing.Init(t.Context(), config.OTel{ServiceName: "x", SamplerRatio: 0}, "test")
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(t.Context(), "op")
		assert.False(t, span.SpanContext().IsSampled())
		span.End()

		require.NoError(t, shutdown(t.Context()))
	})
}
