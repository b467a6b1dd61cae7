package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"booking-status-api/internal/models"
	"booking-status-api/internal/services"
	"booking-status-api/pkg/lambda"
)

var (
	emptyBody = []byte("{}")
	nullBody  = []byte("null")
)

// StatusHandler serves the booking status endpoint for both the Lambda
// runtime and the local gin server
type StatusHandler struct {
	statusService services.StatusService
	logger        *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusService services.StatusService, logger *logrus.Logger) *StatusHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &StatusHandler{
		statusService: statusService,
		logger:        logger,
	}
}

// Handle dispatches a request by method. Every outcome, failures included,
// is encoded in the returned response; the error is always nil so the
// runtime never replaces the body.
func (h *StatusHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.Method == http.MethodOptions {
		return &lambda.Response{
			StatusCode: http.StatusOK,
			Headers:    preflightHeaders(),
			Body:       []byte{},
		}, nil
	}

	if h.statusService == nil {
		return h.errorResponse(req, services.ErrNotConfigured), nil
	}
	if err := h.statusService.Ready(); err != nil {
		return h.errorResponse(req, err), nil
	}

	switch req.Method {
	case http.MethodGet:
		return h.handleList(ctx, req), nil
	case http.MethodPost:
		return h.handleUpsert(ctx, req), nil
	case http.MethodDelete:
		return h.handleDelete(ctx, req), nil
	default:
		return h.errorResponse(req, ErrMethodNotAllowed), nil
	}
}

func (h *StatusHandler) handleList(ctx context.Context, req *lambda.Request) *lambda.Response {
	statuses, err := h.statusService.ListStatuses(ctx)
	if err != nil {
		return h.errorResponse(req, err)
	}
	return h.jsonResponse(req, http.StatusOK, models.StatusesResponse{Statuses: statuses})
}

func (h *StatusHandler) handleUpsert(ctx context.Context, req *lambda.Request) *lambda.Response {
	var payload models.UpsertStatusRequest
	if err := decodeBody(req.Body, &payload); err != nil {
		return h.errorResponse(req, err)
	}

	if err := h.statusService.SetStatus(ctx, &payload); err != nil {
		return h.errorResponse(req, err)
	}
	return h.jsonResponse(req, http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *StatusHandler) handleDelete(ctx context.Context, req *lambda.Request) *lambda.Response {
	var payload models.DeleteStatusRequest
	if err := decodeBody(req.Body, &payload); err != nil {
		return h.errorResponse(req, err)
	}

	if err := h.statusService.DeleteStatus(ctx, &payload); err != nil {
		return h.errorResponse(req, err)
	}
	return h.jsonResponse(req, http.StatusOK, models.SuccessResponse{Success: true})
}

// decodeBody parses a JSON object body; an absent body reads as {}
func decodeBody(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	switch {
	case len(body) == 0:
		body = emptyBody
	case bytes.Equal(body, nullBody):
		return ErrBodyNotObject
	}
	return json.Unmarshal(body, v)
}

func (h *StatusHandler) errorResponse(req *lambda.Request, err error) *lambda.Response {
	status := statusForError(err)

	entry := h.logger.WithFields(logrus.Fields{
		"request_id":  req.RequestID,
		"method":      req.Method,
		"status_code": status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("Booking status request failed")
	} else {
		entry.Debug("Booking status request rejected")
	}

	return h.jsonResponse(req, status, ErrorResponse{Error: err.Error()})
}

func (h *StatusHandler) jsonResponse(req *lambda.Request, status int, payload any) *lambda.Response {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.WithError(err).WithField("request_id", req.RequestID).Error("Failed to encode response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: err.Error()})
	}

	return &lambda.Response{
		StatusCode: status,
		Headers:    jsonHeaders(),
		Body:       body,
	}
}
