package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_Unmarshal(t *testing.T) {
	var req UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","due_date":null,"completed":true}`), &req))

	assert.True(t, req.Title.Present())
	assert.Equal(t, "t", req.Title.Value)

	assert.True(t, req.DueDate.Set)
	assert.True(t, req.DueDate.Null)
	assert.False(t, req.DueDate.Present())

	assert.False(t, req.Description.Set)

	assert.True(t, req.Completed.Present())
	assert.True(t, req.Completed.Value)
}

func TestOptional_UnmarshalTypeMismatch(t *testing.T) {
	var req UpdateTodoRequest
	assert.Error(t, json.Unmarshal([]byte(`{"completed":"yes"}`), &req))
}

func TestOptional_Marshal(t *testing.T) {
	req := UpdateTodoRequest{
		Title:   Some("new"),
		DueDate: Optional[string]{Set: true, Null: true},
	}
	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new","due_date":null}`, string(b))
}
