package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// restClient talks to a PostgREST-style endpoint. The hosted table resolves
// conflicts on the id column, which makes retries idempotent.
type restClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

// NewRESTClient builds the REST transport. baseURL points at the bookings
// table endpoint, e.g. https://example.supabase.co/rest/v1/bookings.
func NewRESTClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) (Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("remote REST base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse remote base URL %s: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &restClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "remote_rest")),
	}, nil
}

func (c *restClient) Upsert(ctx context.Context, booking Booking) error {
	body, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("encode remote booking %s: %w", booking.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?on_conflict=id", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build remote upsert request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote upsert booking %s: %w", booking.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error("Remote upsert rejected",
			zap.String("booking_id", booking.ID),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", detail),
		)
		return fmt.Errorf("remote upsert booking %s: unexpected status %d", booking.ID, resp.StatusCode)
	}

	return nil
}

func (c *restClient) Close() {}
