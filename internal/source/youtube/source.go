// Package youtube searches review videos through the YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"review_collector/internal/domain"
	"review_collector/internal/query"
	"review_collector/internal/urlkey"
)

const (
	SourceID = "youtube"

	// maxPageSize is the search.list maxResults ceiling.
	maxPageSize = 50
)

type Config struct {
	APIKey            string
	BaseURL           string
	RegionCode        string
	RelevanceLanguage string
	Order             string
	UserAgent         string
	Timeout           time.Duration
}

// Source implements collector.Adapter for YouTube.
type Source struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg:    cfg,
		logger: logger.With("source", SourceID),
	}
}

func (s *Source) Name() string {
	return SourceID
}

func (s *Source) Profile() query.Profile {
	return query.Video
}

// Search runs one search.list call and enriches the hits with statistics.
// A failed statistics call leaves popularity at zero.
func (s *Source) Search(ctx context.Context, q string, maxResults int, opts domain.SearchOptions) ([]domain.Record, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube: %w", domain.ErrNotConfigured)
	}
	if maxResults <= 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", q)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(min(maxResults, maxPageSize)))
	params.Set("order", firstNonEmpty(opts.Order, s.cfg.Order, "relevance"))
	params.Set("regionCode", firstNonEmpty(opts.Region, s.cfg.RegionCode))
	params.Set("relevanceLanguage", firstNonEmpty(opts.Language, s.cfg.RelevanceLanguage))
	params.Set("key", s.cfg.APIKey)
	if opts.PublishedAfter != nil {
		params.Set("publishedAfter", opts.PublishedAfter.UTC().Format(time.RFC3339))
	}

	var resp searchResponse
	if err := s.doRequest(ctx, "/search", params, &resp); err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	records := s.transform(resp.Items)
	if len(records) == 0 {
		return records, nil
	}

	stats, err := s.fetchStatistics(ctx, records)
	if err != nil {
		s.logger.Warn("failed to fetch video statistics", "query", q, "error", err)
		return records, nil
	}

	for i := range records {
		st, ok := stats[records[i].Key]
		if !ok {
			continue
		}
		records[i].Popularity = st.Views
		records[i].Extra["view_count"] = st.Views
		records[i].Extra["like_count"] = st.Likes
		records[i].Extra["comment_count"] = st.Comments
	}

	return records, nil
}

func (s *Source) fetchStatistics(ctx context.Context, records []domain.Record) (map[string]statistics, error) {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.Key)
	}

	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", s.cfg.APIKey)

	var resp videosResponse
	if err := s.doRequest(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}

	stats := make(map[string]statistics, len(resp.Items))
	for _, item := range resp.Items {
		stats[item.ID] = statistics{
			Views:    parseCount(item.Statistics.ViewCount),
			Likes:    parseCount(item.Statistics.LikeCount),
			Comments: parseCount(item.Statistics.CommentCount),
		}
	}
	return stats, nil
}

func (s *Source) doRequest(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("unexpected status: %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (s *Source) transform(items []searchItem) []domain.Record {
	records := make([]domain.Record, 0, len(items))

	for _, item := range items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}

		record := domain.Record{
			Key:          id,
			Platform:     urlkey.PlatformYouTube,
			Kind:         urlkey.KindVideo,
			Title:        item.Snippet.Title,
			URL:          WatchURL(id),
			Author:       item.Snippet.ChannelTitle,
			Snippet:      domain.Preview(item.Snippet.Description, domain.ExcerptLimit),
			ThumbnailURL: item.Snippet.Thumbnails.High.URL,
			Extra: map[string]any{
				"video_id":     id,
				"channel_id":   item.Snippet.ChannelID,
				"published_at": item.Snippet.PublishedAt,
			},
		}

		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			record.PublishedAt = &t
		} else if item.Snippet.PublishedAt != "" {
			s.logger.Debug("failed to parse publish date", "video_id", id, "date", item.Snippet.PublishedAt)
		}

		records = append(records, record)
	}

	return records
}

func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
