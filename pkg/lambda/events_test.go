package lambda

import (
	"encoding/base64"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAPIGateway(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            "POST",
		Path:                  "/statuses",
		Headers:               map[string]string{"Content-Type": "application/json"},
		QueryStringParameters: map[string]string{"ignored": "1"},
		Body:                  `{"booking_key":"room5","status":"confirmed"}`,
		RequestContext:        events.APIGatewayProxyRequestContext{RequestID: "req-123"},
	}

	req, err := FromAPIGateway(event)
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/statuses", req.Path)
	assert.Equal(t, "req-123", req.RequestID)
	assert.Equal(t, "1", req.QueryParams["ignored"])
	assert.JSONEq(t, `{"booking_key":"room5","status":"confirmed"}`, string(req.Body))
}

func TestFromAPIGateway_DefaultMethod(t *testing.T) {
	req, err := FromAPIGateway(events.APIGatewayProxyRequest{})
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Empty(t, req.Body)
}

func TestFromAPIGateway_Base64Body(t *testing.T) {
	payload := `{"booking_key":"room5"}`
	event := events.APIGatewayProxyRequest{
		HTTPMethod:      "DELETE",
		Body:            base64.StdEncoding.EncodeToString([]byte(payload)),
		IsBase64Encoded: true,
	}

	req, err := FromAPIGateway(event)
	require.NoError(t, err)
	assert.Equal(t, payload, string(req.Body))

	event.Body = "%%%not-base64"
	_, err = FromAPIGateway(event)
	assert.Error(t, err)
}

func TestToAPIGateway(t *testing.T) {
	resp := ToAPIGateway(&Response{
		StatusCode: 200,
		Headers:    map[string]string{"Access-Control-Allow-Origin": "*"},
		Body:       []byte(`{"success":true}`),
	})

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, `{"success":true}`, resp.Body)
	assert.False(t, resp.IsBase64Encoded)
}
