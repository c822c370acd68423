package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

// FCMClient talks to the Firebase Cloud Messaging HTTP API with a server key.
type FCMClient struct {
	ServerKey string
	HTTP      *http.Client
	URL       string
}

func NewFCMClient(serverKey string) *FCMClient {
	return &FCMClient{
		ServerKey: serverKey,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		URL:       fcmSendURL,
	}
}

var _ Notifier = (*FCMClient)(nil)

type fcmNotification struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Sound     string `json:"sound,omitempty"`
	ChannelID string `json:"android_channel_id,omitempty"`
}

type fcmMessage struct {
	To           string            `json:"to"`
	Priority     string            `json:"priority"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

// Send delivers one notification to one device token.
func (c *FCMClient) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(fcmMessage{
		To:       token,
		Priority: "high",
		Notification: fcmNotification{
			Title:     title,
			Body:      body,
			Sound:     "default",
			ChannelID: "chat_messages",
		},
		Data: data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.ServerKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fcm send returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
