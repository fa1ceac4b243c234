// Package store is a thin client for the app-store bridge API: an opaque
// HTTP collaborator that performs app search and review collection. Only
// its interface is known here.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the app-store bridge.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a bridge client. timeout is in seconds; zero means 30.
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: t,
		},
	}
}

// App is one search hit.
type App struct {
	AppID string  `json:"app_id"`
	Title string  `json:"title"`
	Icon  string  `json:"icon"`
	Score float64 `json:"score"`
}

// Review is one collected review row.
type Review struct {
	ReviewID string `json:"reviewId"`
	Content  string `json:"content"`
	Score    int    `json:"score"`
	Date     string `json:"date"`
	AppID    string `json:"app_id"`
}

// SearchApps looks up apps matching keyword.
func (c *Client) SearchApps(ctx context.Context, keyword string, max int) ([]App, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/apps"

	q := u.Query()
	q.Set("keyword", keyword)
	q.Set("max", strconv.Itoa(max))
	u.RawQuery = q.Encode()

	var resp struct {
		Apps []App `json:"apps"`
	}
	if err := c.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, err
	}
	return resp.Apps, nil
}

// Reviews fetches up to count reviews for one app.
func (c *Client) Reviews(ctx context.Context, appID string, count int) ([]Review, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/reviews"

	q := u.Query()
	q.Set("app_id", appID)
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	var resp struct {
		Reviews []Review `json:"reviews"`
	}
	if err := c.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, err
	}
	// The bridge reports reviews per app; stamp the app id onto each row
	// so merged CSVs keep their provenance.
	for i := range resp.Reviews {
		if resp.Reviews[i].AppID == "" {
			resp.Reviews[i].AppID = appID
		}
	}
	return resp.Reviews, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge api error (status %d): %s", res.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response failed: %w", err)
	}
	return nil
}
