package middleware

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"booking-status-api/pkg/lambda"
)

// Middleware decorates a framework-agnostic handler
type Middleware func(next lambda.HandlerFunc) lambda.HandlerFunc

// Chain wraps h so that the first middleware runs outermost
func Chain(h lambda.HandlerFunc, mws ...Middleware) lambda.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// LambdaRequestID fills Request.RequestID from the API Gateway event, the
// Lambda invocation context, or a fresh UUID, in that order
func LambdaRequestID() Middleware {
	return func(next lambda.HandlerFunc) lambda.HandlerFunc {
		return func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
			if req.RequestID == "" {
				if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
					req.RequestID = lc.AwsRequestID
				} else {
					req.RequestID = uuid.New().String()
				}
			}
			return next(ctx, req)
		}
	}
}

// LambdaLogger logs one structured line per invocation
func LambdaLogger(logger *logrus.Logger) Middleware {
	return func(next lambda.HandlerFunc) lambda.HandlerFunc {
		return func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			latency := time.Since(start)

			fields := logrus.Fields{
				"request_id": req.RequestID,
				"method":     req.Method,
				"path":       req.Path,
				"latency_ms": float64(latency.Nanoseconds()) / 1000000,
			}
			if resp != nil {
				fields["status_code"] = resp.StatusCode
			}

			switch {
			case err != nil:
				logger.WithFields(fields).WithError(err).Error("Invocation failed")
			case resp != nil && resp.StatusCode >= 500:
				logger.WithFields(fields).Error("Server error")
			case resp != nil && resp.StatusCode >= 400:
				logger.WithFields(fields).Warn("Client error")
			default:
				logger.WithFields(fields).Info("Request completed")
			}

			return resp, err
		}
	}
}
