package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ActionInitiateQualification is the action sent to the qualification
// pipeline endpoint.
const ActionInitiateQualification = "initiate_lead_qualification"

// Payload is the body of the outbound trigger POST.
type Payload struct {
	Timestamp     string `json:"timestamp"`
	Action        string `json:"action"`
	TriggeredFrom string `json:"triggered_from"`
}

// Dispatcher fires the qualification-pipeline webhook. The call is
// fire-and-forget: the response status and body are not inspected, so only a
// transport-level failure is reported. There are no retries.
type Dispatcher struct {
	url           string
	triggeredFrom string
	client        *http.Client
	logger        *zap.Logger
}

// NewDispatcher creates a webhook dispatcher for the given endpoint.
func NewDispatcher(url, triggeredFrom string, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		url:           url,
		triggeredFrom: triggeredFrom,
		client:        &http.Client{Timeout: timeout},
		logger:        logger.Named("webhook"),
	}
}

// InitiateQualification posts the trigger payload to the configured endpoint.
func (d *Dispatcher) InitiateQualification(ctx context.Context) error {
	if d.url == "" {
		return fmt.Errorf("webhook URL is not configured")
	}

	body, err := json.Marshal(Payload{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Action:        ActionInitiateQualification,
		TriggeredFrom: d.triggeredFrom,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook dispatch failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	d.logger.Info("Qualification webhook dispatched", zap.Int("status", resp.StatusCode))
	return nil
}
