// Package report delivers the final intelligence report to the external
// collector.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scamtrap/honeypot/domain"
)

// Client posts final reports to the collector endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new report client. An empty endpoint disables delivery.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled reports whether a collector endpoint is configured.
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

// Submit posts the final report. Delivery is best-effort: callers log
// failures and move on, they never roll back session state.
func (c *Client) Submit(ctx context.Context, report *domain.FinalReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to submit report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("collector returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
