package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Tracing wraps HTTP handlers with OpenTelemetry tracing
func Tracing(operationName string, next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, operationName)
}
