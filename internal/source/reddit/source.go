// Package reddit searches running communities through Reddit's OAuth API
// using application-only credentials.
package reddit

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
	SourceID = "reddit"

	previewLimit  = 200
	deletedAuthor = "[deleted]"
	permalinkBase = "https://www.reddit.com"

	// tokenSkew renews the token a little before reddit expires it.
	tokenSkew = time.Minute
)

type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	AuthURL      string
	BaseURL      string
	Subreddits   []string
	Sort         string
	TimeFilter   string
	Timeout      time.Duration
}

// Source implements collector.Adapter against the native Reddit API.
// It is not safe for concurrent use.
type Source struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger

	token       string
	tokenExpiry time.Time
	now         func() time.Time
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg:    cfg,
		logger: logger.With("source", SourceID, "via", "api"),
		now:    time.Now,
	}
}

func (s *Source) Name() string {
	return SourceID
}

func (s *Source) Profile() query.Profile {
	return query.Community
}

// Search queries every configured subreddit with an even share of
// maxResults and ranks the union by score. A failing subreddit is skipped.
func (s *Source) Search(ctx context.Context, q string, maxResults int, opts domain.SearchOptions) ([]domain.Record, error) {
	if s.cfg.ClientID == "" || s.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("reddit: %w", domain.ErrNotConfigured)
	}
	if maxResults <= 0 || len(s.cfg.Subreddits) == 0 {
		return nil, nil
	}

	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("reddit auth: %w", err)
	}

	limit := max(maxResults/len(s.cfg.Subreddits), 1)
	sortMode := firstNonEmpty(opts.Order, s.cfg.Sort, "top")
	window := firstNonEmpty(opts.TimeWindow, s.cfg.TimeFilter, "year")

	var (
		posts    []post
		failures int
		lastErr  error
	)
	for _, sub := range s.cfg.Subreddits {
		found, err := s.searchSubreddit(ctx, token, sub, q, limit, sortMode, window)
		if err != nil {
			s.logger.Warn("subreddit search failed", "subreddit", sub, "error", err)
			failures++
			lastErr = err
			continue
		}
		posts = append(posts, found...)
	}

	if failures == len(s.cfg.Subreddits) {
		return nil, fmt.Errorf("all subreddits failed: %w", lastErr)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Score > posts[j].Score
	})
	if len(posts) > maxResults {
		posts = posts[:maxResults]
	}

	return transform(posts), nil
}

func (s *Source) searchSubreddit(ctx context.Context, token, sub, q string, limit int, sortMode, window string) ([]post, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("restrict_sr", "1")
	params.Set("sort", sortMode)
	params.Set("t", window)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("raw_json", "1")

	endpoint := fmt.Sprintf("%s/r/%s/search?%s", strings.TrimRight(s.cfg.BaseURL, "/"), url.PathEscape(sub), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+token)

	var resp listing
	if err := s.do(req, &resp); err != nil {
		return nil, err
	}

	posts := make([]post, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

func (s *Source) accessToken(ctx context.Context) (string, error) {
	if s.token != "" && s.now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp tokenResponse
	if err := s.do(req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("empty access token")
	}

	s.token = resp.AccessToken
	s.tokenExpiry = s.now().Add(time.Duration(resp.ExpiresIn)*time.Second - tokenSkew)
	return s.token, nil
}

func (s *Source) do(req *http.Request, out any) error {
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
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func transform(posts []post) []domain.Record {
	records := make([]domain.Record, 0, len(posts))

	for _, p := range posts {
		if p.ID == "" {
			continue
		}

		author := p.Author
		if author == "" {
			author = deletedAuthor
		}

		record := domain.Record{
			Key:        strings.ToLower(p.ID),
			Platform:   urlkey.PlatformReddit,
			Kind:       urlkey.KindRedditPost,
			Title:      p.Title,
			URL:        permalinkBase + p.Permalink,
			Author:     author,
			Snippet:    domain.Preview(p.Selftext, previewLimit),
			Popularity: p.Score,
			Extra: map[string]any{
				"post_id":      p.ID,
				"subreddit":    p.Subreddit,
				"score":        p.Score,
				"num_comments": p.NumComments,
				"link_url":     p.URL,
				"via":          "api",
			},
		}

		if p.CreatedUTC > 0 {
			created := time.Unix(int64(p.CreatedUTC), 0).UTC()
			record.PublishedAt = &created
		}

		records = append(records, record)
	}

	return records
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
