package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var exporter = tracetest.NewInMemoryExporter()

func TestMain(m *testing.M) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)

	code := m.Run()
	tp.Shutdown(context.Background())
	os.Exit(code)
}

func resetSpans(t *testing.T) {
	t.Helper()
	exporter.Reset()
}

func TestGinMiddleware(t *testing.T) {
	resetSpans(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/api/questions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/questions/bot_001", "/api/broken", "/metrics"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET /api/questions/:id", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, "GET /api/broken", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}

func TestStartSpanAndFail(t *testing.T) {
	resetSpans(t)

	_, span := StartSpan(context.Background(), "op", attribute.String("question.id", "bot_001"))
	Fail(span, errors.New("store down"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("question.id", "bot_001"))
	assert.Len(t, spans[0].Events, 1)
}

func TestStartSpanFollowsReplacedProvider(t *testing.T) {
	resetSpans(t)

	other := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(other))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		tp.Shutdown(context.Background())
	})

	_, span := StartSpan(context.Background(), "op")
	span.End()

	assert.Len(t, other.GetSpans(), 1)
	assert.Empty(t, exporter.GetSpans())
}
