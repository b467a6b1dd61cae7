package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"booking-status-api/internal/database"
	"booking-status-api/internal/middleware"
	"booking-status-api/pkg/lambda"
)

// StatusPath is where the local server mounts the status endpoint
const StatusPath = "/api/v1/statuses"

// HealthFunc reports database health
type HealthFunc func(ctx context.Context) *database.HealthStatus

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Handler        lambda.HandlerFunc
	Health         HealthFunc
	Logger         *logrus.Logger
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
}

// SetupRoutes configures all routes of the local development server
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	router.Use(middleware.AllowOrigin())
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(config.Logger))
	router.Use(middleware.StructuredLogger(config.Logger))

	router.GET("/health", func(c *gin.Context) {
		status := config.Health(c.Request.Context())
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	router.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimiter(config.RateLimitRPS, config.RateLimitBurst, config.Logger))
	v1.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	{
		v1.Any("/statuses", Adapt(config.Handler))
	}
}

// Adapt serves a lambda.HandlerFunc from gin, translating the HTTP request
// into the same descriptor API Gateway would deliver
func Adapt(h lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			status := http.StatusInternalServerError
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				status = http.StatusRequestEntityTooLarge
			}
			c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
			return
		}

		req := &lambda.Request{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Headers:     flatten(c.Request.Header),
			QueryParams: flatten(c.Request.URL.Query()),
			Body:        body,
			RequestID:   c.GetString(middleware.RequestIDKey),
		}

		resp, err := h(c.Request.Context(), req)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		for key, value := range resp.Headers {
			c.Header(key, value)
		}
		c.Status(resp.StatusCode)
		c.Writer.WriteHeaderNow()
		if len(resp.Body) > 0 {
			_, _ = c.Writer.Write(resp.Body)
		}
	}
}

// flatten keeps the first value of each multi-valued entry, the shape API
// Gateway uses for single-value headers and query parameters
func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out
}
