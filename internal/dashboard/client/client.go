package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/model"
)

// Client talks to the scraping backend's JSON API. All calls take a
// context and go through the injected *http.Client.
type Client struct {
	Log        *zap.Logger
	BaseURL    string
	HTTPClient *http.Client
}

func New(log *zap.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		Log:        log,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// FetchAnnouncements retrieves the full record set. A response that is
// not a JSON array is treated as an empty result, not an error; the
// store then shows nothing instead of something stale or broken.
func (c *Client) FetchAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	body, err := c.get(ctx, "/api/announcements")
	if err != nil {
		return nil, err
	}

	var records []model.Announcement
	if err := json.Unmarshal(body, &records); err != nil {
		c.Log.Warn("Announcements response is not an array, treating as empty",
			zap.Int("bodySize", len(body)),
			zap.Error(err),
		)
		return []model.Announcement{}, nil
	}
	if records == nil {
		records = []model.Announcement{}
	}
	return records, nil
}

// FetchStats retrieves the backend-computed aggregate snapshot.
func (c *Client) FetchStats(ctx context.Context) (model.StatsSnapshot, error) {
	var stats model.StatsSnapshot
	body, err := c.get(ctx, "/api/stats")
	if err != nil {
		return stats, err
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		return stats, fmt.Errorf("decode stats response: %w", err)
	}
	return stats, nil
}

// SetChecked persists a record's checked flag.
func (c *Client) SetChecked(ctx context.Context, id int64, checked int) error {
	payload := map[string]int{"checked": checked}
	return c.put(ctx, fmt.Sprintf("/api/announcements/%d/check", id), payload)
}

// SaveContact persists a record's contact sub-fields.
func (c *Client) SaveContact(ctx context.Context, id int64, contact model.Contact) error {
	return c.put(ctx, fmt.Sprintf("/api/announcements/%d/contact", id), contact)
}

// StartScrape asks the backend to launch a scrape job.
func (c *Client) StartScrape(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/scrape", nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// ScrapeStatus polls the state of the running scrape job.
func (c *Client) ScrapeStatus(ctx context.Context) (model.ScrapeStatus, error) {
	var status model.ScrapeStatus
	body, err := c.get(ctx, "/api/scrape/status")
	if err != nil {
		return status, err
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return status, fmt.Errorf("decode scrape status: %w", err)
	}
	return status, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) put(ctx context.Context, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("Backend request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.Log.Warn("Failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("Failed to read response body",
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Error("Backend returned error status",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return body, nil
}
