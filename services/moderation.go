package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Verdict is the moderation service's decision for one submission.
type Verdict struct {
	IsAppropriate bool   `json:"isAppropriate"`
	Reason        string `json:"reason,omitempty"`
}

// ModerationGate screens trail radio submissions before they are published.
// Implementations must never default-accept: any failure is a rejection.
type ModerationGate interface {
	Moderate(ctx context.Context, text string) (Verdict, error)
}

// ModerationClient calls the external text-classification endpoint over
// HTTP. The request shape is {"text": ...}, the response shape is
// {"isAppropriate": bool, "reason": string}.
type ModerationClient struct {
	endpoint string
	client   *http.Client
}

func NewModerationClient(endpoint string, timeout time.Duration) *ModerationClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ModerationClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type moderationRequest struct {
	Text string `json:"text"`
}

func (c *ModerationClient) Moderate(ctx context.Context, text string) (Verdict, error) {
	payload, err := json.Marshal(moderationRequest{Text: text})
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to encode moderation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to build moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("moderation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Verdict{}, fmt.Errorf("moderation service returned status %d", resp.StatusCode)
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return Verdict{}, fmt.Errorf("failed to decode moderation response: %w", err)
	}
	return verdict, nil
}
