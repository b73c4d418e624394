// Package twitter searches recent posts through the X API v2 with an
// app-only bearer token.
package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"review_collector/internal/domain"
	"review_collector/internal/query"
	"review_collector/internal/urlkey"
)

const (
	SourceID = "twitter-api"

	previewLimit = 100

	// recent search accepts max_results in [10, 100].
	minPageSize = 10
	maxPageSize = 100
)

var (
	ErrRateLimited = errors.New("rate limited")
	ErrForbidden   = errors.New("forbidden: the API plan does not allow recent search")
)

type Config struct {
	BearerToken string
	BaseURL     string
	Language    string
	UserAgent   string
	Timeout     time.Duration
}

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
	return query.Microblog
}

// Search runs a recent search excluding retweets, ranked by likes.
func (s *Source) Search(ctx context.Context, q string, maxResults int, opts domain.SearchOptions) ([]domain.Record, error) {
	if s.cfg.BearerToken == "" {
		return nil, fmt.Errorf("twitter: %w", domain.ErrNotConfigured)
	}
	if maxResults <= 0 {
		return nil, nil
	}

	full := q
	if lang := firstNonEmpty(opts.Language, s.cfg.Language); lang != "" {
		full += " lang:" + lang
	}
	full += " -is:retweet"

	params := url.Values{}
	params.Set("query", full)
	params.Set("max_results", strconv.Itoa(min(max(maxResults, minPageSize), maxPageSize)))
	params.Set("tweet.fields", "created_at,public_metrics,lang,author_id")
	params.Set("user.fields", "username,name")
	params.Set("expansions", "author_id")

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/2/tweets/search/recent?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.BearerToken)
	req.Header.Set("Accept", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("recent search: %w (reset at %s)", ErrRateLimited, resp.Header.Get("x-rate-limit-reset"))
	case http.StatusForbidden:
		return nil, fmt.Errorf("recent search: %w", ErrForbidden)
	default:
		return nil, fmt.Errorf("recent search: unexpected status: %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := s.transform(body)
	s.logger.Debug("recent search done", "query", full, "tweets", len(records))

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Popularity > records[j].Popularity
	})
	if len(records) > maxResults {
		records = records[:maxResults]
	}
	return records, nil
}

func (s *Source) transform(body searchResponse) []domain.Record {
	users := make(map[string]user, len(body.Includes.Users))
	for _, u := range body.Includes.Users {
		users[u.ID] = u
	}

	records := make([]domain.Record, 0, len(body.Data))
	for _, t := range body.Data {
		u := users[t.AuthorID]
		preview := domain.Preview(t.Text, previewLimit)

		record := domain.Record{
			Key:        t.ID,
			Platform:   urlkey.PlatformTwitter,
			Kind:       urlkey.KindTweet,
			Title:      preview,
			URL:        StatusURL(u.Username, t.ID),
			Snippet:    preview,
			Popularity: t.PublicMetrics.LikeCount,
			Extra: map[string]any{
				"tweet_id":      t.ID,
				"author_name":   u.Name,
				"retweet_count": t.PublicMetrics.RetweetCount,
				"like_count":    t.PublicMetrics.LikeCount,
				"reply_count":   t.PublicMetrics.ReplyCount,
				"quote_count":   t.PublicMetrics.QuoteCount,
				"lang":          t.Lang,
				"via":           "api",
			},
		}
		if u.Username != "" {
			record.Author = "@" + u.Username
		}
		if created, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
			record.PublishedAt = &created
		}

		records = append(records, record)
	}
	return records
}

// StatusURL builds a permalink; without a username the /i/web form is used.
func StatusURL(username, id string) string {
	if username == "" {
		return "https://twitter.com/i/web/status/" + id
	}
	return "https://twitter.com/" + username + "/status/" + id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
