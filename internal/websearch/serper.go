package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"review_collector/internal/domain"
)

type SerperConfig struct {
	APIKey    string
	BaseURL   string
	Country   string
	Locale    string
	UserAgent string
	Timeout   time.Duration
}

// Serper queries google.serper.dev.
type Serper struct {
	httpClient *http.Client
	cfg        SerperConfig
}

func NewSerper(cfg SerperConfig) *Serper {
	return &Serper{
		httpClient: newHTTPClient(cfg.Timeout),
		cfg:        cfg,
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl,omitempty"`
	HL  string `json:"hl,omitempty"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (s *Serper) Search(ctx context.Context, query string, num int) ([]Hit, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("serper: %w", domain.ErrNotConfigured)
	}

	payload, err := json.Marshal(serperRequest{
		Q:   query,
		Num: num,
		GL:  s.cfg.Country,
		HL:  s.cfg.Locale,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	var resp serperResponse
	if err := doJSON(s.httpClient, req, &resp); err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}

	hits := make([]Hit, 0, len(resp.Organic))
	for _, o := range resp.Organic {
		hits = append(hits, Hit{Title: o.Title, Link: o.Link, Snippet: o.Snippet})
	}
	return hits, nil
}
