package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":          "5f0c4a9e",
		"description": "Groceries",
		"amount":      "100.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestNewEvent_Deleted(t *testing.T) {
	evt := NewEvent(EventTypeDeleted, EntityTypeTransaction, map[string]interface{}{"id": "abc"})
	assert.Equal(t, "transaction.deleted", evt.Type)
}

func TestEvent_ToJSON(t *testing.T) {
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, map[string]interface{}{"id": "abc"})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "transaction.created", decoded["type"])
	assert.Equal(t, "transaction", decoded["entity"])
	assert.NotEmpty(t, decoded["timestamp"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc", payload["id"])
}
