package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// feedPath 与前端通知铃使用的查询一致
const feedPath = "/api/events/feed?upcomingOnly=false&includeCancelled=false"

// FeedItem is the subset of an event the notifier reads from the feed.
type FeedItem struct {
	EventID  uint   `json:"eventId"`
	Title    string `json:"title"`
	ClubName string `json:"clubName"`
	StartAt  string `json:"startAt"`
}

// FeedSource returns the caller's followed-club events.
type FeedSource interface {
	FetchFeed(ctx context.Context) ([]FeedItem, error)
}

// HTTPFeed reads the feed from a running server with a bearer token.
type HTTPFeed struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPFeed(baseURL, token string, timeout time.Duration) *HTTPFeed {
	return &HTTPFeed{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFeed) FetchFeed(ctx context.Context) ([]FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+feedPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	items := []FeedItem{}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if items == nil {
		items = []FeedItem{}
	}
	return items, nil
}
