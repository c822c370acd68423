package models_test

import (
	"encoding/json"
	"testing"

	"duetchat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBeforeCreate_AssignsUUID(t *testing.T) {
	u := &models.User{Email: "a@example.com"}

	require.NoError(t, u.BeforeCreate(nil))

	_, err := uuid.Parse(u.ID)
	assert.NoError(t, err)
}

func TestUserBeforeCreate_KeepsExistingID(t *testing.T) {
	u := &models.User{ID: "fixed-id", Email: "a@example.com"}

	require.NoError(t, u.BeforeCreate(nil))

	assert.Equal(t, "fixed-id", u.ID)
}

func TestCoupleBeforeCreate_AssignsUUID(t *testing.T) {
	c := &models.Couple{}

	require.NoError(t, c.BeforeCreate(nil))

	_, err := uuid.Parse(c.ID)
	assert.NoError(t, err)
}

func TestUserJSON_HidesFcmToken(t *testing.T) {
	u := models.User{ID: "u1", Email: "a@example.com", FcmToken: "secret-token"}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret-token")
	assert.Contains(t, string(raw), "a@example.com")
}

func TestClientEvent_DefersPayloadDecoding(t *testing.T) {
	frame := []byte(`{"event":"sendMessage","data":{"coupleId":"c1","content":"hi","type":"TEXT"}}`)

	var evt models.ClientEvent
	require.NoError(t, json.Unmarshal(frame, &evt))
	assert.Equal(t, models.EventSendMessage, evt.Event)

	var payload models.SendMessagePayload
	require.NoError(t, json.Unmarshal(evt.Data, &payload))
	assert.Equal(t, "c1", payload.CoupleID)
	assert.Equal(t, "hi", payload.Content)
	assert.Equal(t, models.MessageTypeText, payload.Type)
}
