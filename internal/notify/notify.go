// Package notify sends booking confirmation messages through an external
// messaging endpoint. Delivery is best effort: a failed send never rolls
// back the sync state of the booking it belongs to.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notifier sends a free-text message to a phone number.
type Notifier interface {
	Send(ctx context.Context, to, message string) error
}

type httpNotifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
	log      *zap.Logger
}

// NewHTTPNotifier posts {to, message} payloads to the messaging endpoint.
func NewHTTPNotifier(endpoint, apiKey string, timeout time.Duration, log *zap.Logger) Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpNotifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		log:      log.With(zap.String("client", "notifier")),
	}
}

type payload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (n *httpNotifier) Send(ctx context.Context, to, message string) error {
	if n.endpoint == "" {
		n.log.Debug("Notification endpoint not configured, skipping send")
		return nil
	}

	body, err := json.Marshal(payload{To: to, Message: message})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send notification to %s: unexpected status %d", to, resp.StatusCode)
	}

	return nil
}
