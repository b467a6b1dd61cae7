package models

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusMap(t *testing.T) {
	rows := []*BookingStatus{
		{BookingKey: "room5-2024-01-01", Status: "confirmed"},
		nil,
		{BookingKey: "room6-2024-01-02", Status: "cancelled"},
	}

	statuses := NewStatusMap(rows)

	assert.Len(t, statuses, 2)
	assert.Equal(t, "confirmed", statuses["room5-2024-01-01"])
	assert.Equal(t, "cancelled", statuses["room6-2024-01-02"])
}

func TestNewStatusMap_Empty(t *testing.T) {
	body, err := json.Marshal(StatusesResponse{Statuses: NewStatusMap(nil)})
	require.NoError(t, err)

	// An empty table must still serialize as an object, never null
	assert.JSONEq(t, `{"statuses": {}}`, string(body))
}

func TestUpsertStatusRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		req     UpsertStatusRequest
		wantErr bool
	}{
		{"valid", UpsertStatusRequest{BookingKey: "k", Status: "confirmed"}, false},
		{"missing status", UpsertStatusRequest{BookingKey: "k"}, true},
		{"missing key", UpsertStatusRequest{Status: "confirmed"}, true},
		{"both missing", UpsertStatusRequest{}, true},
		{"whitespace key is present", UpsertStatusRequest{BookingKey: " ", Status: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeleteStatusRequest_Validation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(&DeleteStatusRequest{BookingKey: "k"}))
	assert.Error(t, validate.Struct(&DeleteStatusRequest{}))
}
