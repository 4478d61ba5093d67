// Package connectivity answers a single question: is the network reachable
// right now. The sync engine consults it once per pass; no retry or backoff
// logic lives here.
package connectivity

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Gate reports network reachability.
type Gate interface {
	Online(ctx context.Context) bool
}

type httpGate struct {
	probeURL string
	client   *http.Client
	log      *zap.Logger
}

// NewHTTPGate probes probeURL with a HEAD request. Any response, including
// an error status, counts as online: the probe measures reachability, not
// the health of the probed service.
func NewHTTPGate(probeURL string, timeout time.Duration, log *zap.Logger) Gate {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &httpGate{
		probeURL: probeURL,
		client:   &http.Client{Timeout: timeout},
		log:      log.With(zap.String("client", "connectivity")),
	}
}

func (g *httpGate) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, g.probeURL, nil)
	if err != nil {
		g.log.Warn("Failed to build connectivity probe", zap.Error(err))
		return false
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Debug("Connectivity probe failed", zap.Error(err))
		return false
	}
	resp.Body.Close()

	return true
}
