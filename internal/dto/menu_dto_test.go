package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUUIDUnmarshal(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *uuid.UUID
		wantErr   bool
	}{
		{name: "absent", body: `{}`, wantSet: false},
		{name: "explicit null", body: `{"newParentId":null}`, wantSet: true},
		{name: "empty string", body: `{"newParentId":""}`, wantSet: true},
		{name: "valid id", body: `{"newParentId":"` + id.String() + `"}`, wantSet: true, wantValue: &id},
		{name: "malformed id", body: `{"newParentId":"not-a-uuid"}`, wantErr: true},
		{name: "wrong type", body: `{"newParentId":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MoveMenuRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, req.NewParentId.Set)
			assert.Equal(t, tt.wantValue, req.NewParentId.Value)
		})
	}
}

func TestUpdateRequestLeavesAbsentFieldsNil(t *testing.T) {
	var req UpdateMenuRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Renamed"}`), &req))

	require.NotNil(t, req.Name)
	assert.Equal(t, "Renamed", *req.Name)
	assert.False(t, req.Url.Set)
	assert.False(t, req.Icon.Set)
	assert.Nil(t, req.Order)
	assert.Nil(t, req.IsActive)
	assert.False(t, req.ParentId.Set)
}

func TestUpdateRequestNullClearsUrlAndIcon(t *testing.T) {
	var req UpdateMenuRequest
	require.NoError(t, json.Unmarshal([]byte(`{"url":null,"icon":"📊"}`), &req))

	assert.True(t, req.Url.Set)
	assert.Nil(t, req.Url.Value)
	assert.Equal(t, "", req.Url.Text())

	assert.True(t, req.Icon.Set)
	require.NotNil(t, req.Icon.Value)
	assert.Equal(t, "📊", *req.Icon.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"url":7}`), &req))
}
