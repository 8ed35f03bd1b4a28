// Package collector implements the HTTP report transport: one JSON POST per
// cycle to the collector endpoint.
package collector

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/flood-node/internal/domain"
)

// Client implements report.Transport over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a collector client. insecureTLS disables certificate
// validation toward the endpoint; the trust policy is decided in config, not
// here.
func NewClient(endpoint string, timeout time.Duration, insecureTLS bool, logger *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // deployment trust policy, see config.CollectorInsecureTLS
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// Send posts the report as JSON and returns the collector's status code. Any
// status code counts as a completed send; only transport errors fail.
func (c *Client) Send(ctx context.Context, r domain.Report) (int, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("serialize report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post report: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the body itself is ignored.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	return resp.StatusCode, nil
}
