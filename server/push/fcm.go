package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/safespeak/safespeak/shared"
)

const fcmSendEndpoint = "https://fcm.googleapis.com/fcm/send"

// Message is a single push notification addressed to a device token.
type Message struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Sender delivers a message to the push provider.
type Sender interface {
	Send(msg Message) error
}

type FCMClient struct {
	serverKey  string
	endpoint   string
	httpClient *http.Client
}

func NewFCMClient(config shared.FcmConfig) *FCMClient {
	return &FCMClient{
		serverKey:  config.ServerKey,
		endpoint:   fcmSendEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (client *FCMClient) Send(msg Message) error {
	payload, err := json.Marshal(map[string]interface{}{
		"to": msg.To,
		"notification": map[string]string{
			"title": msg.Title,
			"body":  msg.Body,
		},
		"data": msg.Data,
	})
	if err != nil {
		return fmt.Errorf("FCMClient.Send: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, client.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("FCMClient.Send: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("key=%v", client.serverKey))

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("FCMClient.Send: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("FCMClient.Send: provider returned status %v", resp.StatusCode)
	}

	return nil
}
