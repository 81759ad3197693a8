// Package smsgateway HTTP-клиент SMS-шлюза
package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendPath = "/v1/sms"

// Client клиент SMS-шлюза
type Client struct {
	baseURL       string
	defaultAPIKey string
	httpClient    *http.Client
	log           Logger
}

// NewClient создает новый экземпляр клиента SMS-шлюза
func NewClient(baseURL, defaultAPIKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		defaultAPIKey: defaultAPIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет SMS одному получателю
func (c *Client) Send(ctx context.Context, msg Message) error {
	apiKey := msg.APIKey
	if apiKey == "" {
		apiKey = c.defaultAPIKey
	}
	if apiKey == "" {
		return ErrNoAPIKey
	}

	body, err := json.Marshal(sendRequest{From: msg.From, To: []string{msg.To}, Text: msg.Text})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("SMS gateway rejected message: status=%d body=%s", resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}
}
