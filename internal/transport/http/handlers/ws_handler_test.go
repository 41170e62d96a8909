package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWSClientMessageWireFormat(t *testing.T) {
	var msg wsClientMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"subscribe_task","task_id":"t-1"}`), &msg))
	assert.Equal(t, "subscribe_task", msg.Type)
	assert.Equal(t, "t-1", msg.TaskID)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"unsubscribe_task","task_id":"t-1"}`), &msg))
	assert.Equal(t, "unsubscribe_task", msg.Type)
}

func TestWSServerMessageWireFormat(t *testing.T) {
	raw, err := json.Marshal(wsServerMessage{Type: "task_update", TaskID: "t-1"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "task_update", decoded["type"])
	assert.Equal(t, "t-1", decoded["task_id"])
	// empty payload and error are omitted from the frame
	assert.NotContains(t, decoded, "payload")
	assert.NotContains(t, decoded, "error")
}
