package lambda

import (
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// DefaultMethod is used when the gateway event carries no method
const DefaultMethod = "GET"

// FromAPIGateway converts an API Gateway proxy event into a Request.
// Base64-flagged bodies are decoded.
func FromAPIGateway(event events.APIGatewayProxyRequest) (*Request, error) {
	method := event.HTTPMethod
	if method == "" {
		method = DefaultMethod
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		body = decoded
	}

	return &Request{
		Method:      method,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		RequestID:   event.RequestContext.RequestID,
	}, nil
}

// ToAPIGateway converts a Response into an API Gateway proxy response
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            string(resp.Body),
		IsBase64Encoded: resp.IsBase64Encoded,
	}
}
