package main

import (
	"context"
	"encoding/json"
	"net/http"

	"booking-status-api/internal/handlers"
	"booking-status-api/internal/middleware"
	"booking-status-api/pkg/lambda"
	"booking-status-api/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

type gatewayHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

var handler gatewayHandler

func init() {
	container, err := lambda.GetConnectionManager().GetContainer()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	handler = newHandler(container)
}

// newHandler wires the status handler and its middleware behind the API
// Gateway proxy envelope
func newHandler(container *server.Container) gatewayHandler {
	statusHandler := handlers.NewStatusHandler(container.StatusService, container.Logger)
	handle := middleware.Chain(statusHandler.Handle,
		middleware.LambdaRequestID(),
		middleware.LambdaLogger(container.Logger),
	)

	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := lambda.FromAPIGateway(event)
		if err != nil {
			container.Logger.WithError(err).Error("Invalid API Gateway event")
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusInternalServerError,
				Headers: map[string]string{
					"Content-Type":                "application/json",
					"Access-Control-Allow-Origin": "*",
				},
				Body: errorBody(err),
			}, nil
		}

		resp, err := handle(ctx, req)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return lambda.ToAPIGateway(resp), nil
	}
}

func errorBody(err error) string {
	body, _ := json.Marshal(handlers.ErrorResponse{Error: err.Error()})
	return string(body)
}

func main() {
	awslambda.StartWithOptions(handler, awslambda.WithEnableSIGTERM(func() {
		_ = lambda.GetConnectionManager().Cleanup()
	}))
}
