package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openmerit/badgestore/pkg/logger"
)

// Webhook publishes events as JSON POSTs to a configured endpoint.
type Webhook struct {
	url     string
	enabled bool
	client  *http.Client
	log     *logger.Logger
}

// envelope is the wire form of a published event.
type envelope struct {
	Topic string         `json:"topic"`
	Msg   map[string]any `json:"msg"`
}

// NewWebhook creates a webhook sink. A disabled sink accepts and drops
// everything, so callers can leave the wiring in place in environments
// without a receiver.
func NewWebhook(url string, enabled bool, log *logger.Logger) *Webhook {
	if log == nil {
		log = logger.Nop()
	}
	return &Webhook{
		url:     url,
		enabled: enabled,
		client:  &http.Client{},
		log:     log,
	}
}

// Publish implements Sink.
func (w *Webhook) Publish(topic string, msg map[string]any) error {
	if !w.enabled {
		w.log.Debug().Str("topic", topic).Msg("Webhook notifier is disabled, dropping event")
		return nil
	}

	payload, err := json.Marshal(envelope{Topic: topic, Msg: msg})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	w.log.Debug().Str("topic", topic).Msg("Published event")
	return nil
}
