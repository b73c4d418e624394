package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"review_collector/internal/domain"
)

// googleMaxNum is the Custom Search API page size limit.
const googleMaxNum = 10

type GoogleConfig struct {
	APIKey    string
	EngineID  string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Google queries the Custom Search JSON API.
type Google struct {
	httpClient *http.Client
	cfg        GoogleConfig
}

func NewGoogle(cfg GoogleConfig) *Google {
	return &Google{
		httpClient: newHTTPClient(cfg.Timeout),
		cfg:        cfg,
	}
}

type googleResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (g *Google) Search(ctx context.Context, query string, num int) ([]Hit, error) {
	if g.cfg.APIKey == "" || g.cfg.EngineID == "" {
		return nil, fmt.Errorf("google search: %w", domain.ErrNotConfigured)
	}

	if num > googleMaxNum {
		num = googleMaxNum
	}
	if num < 1 {
		num = 1
	}

	params := url.Values{}
	params.Set("key", g.cfg.APIKey)
	params.Set("cx", g.cfg.EngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))

	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + "/customsearch/v1?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if g.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", g.cfg.UserAgent)
	}

	var resp googleResponse
	if err := doJSON(g.httpClient, req, &resp); err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}

	hits := make([]Hit, 0, len(resp.Items))
	for _, it := range resp.Items {
		hits = append(hits, Hit{Title: it.Title, Link: it.Link, Snippet: it.Snippet})
	}
	return hits, nil
}
